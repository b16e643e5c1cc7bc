package tagging

import "sync"

// pathGuard serializes file writers per path. Pipeline jobs and manual
// edits both acquire it, so a given file has at most one writer at a time.
type pathGuard struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func newPathGuard() *pathGuard {
	return &pathGuard{held: make(map[string]struct{})}
}

func (g *pathGuard) tryAcquire(path string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.held[path]; busy {
		return false
	}
	g.held[path] = struct{}{}
	return true
}

func (g *pathGuard) release(path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.held, path)
}
