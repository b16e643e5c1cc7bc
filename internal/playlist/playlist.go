// Package playlist loads and saves playlist documents as JSON files on disk.
package playlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cesargomez89/icho/internal/domain"
	"github.com/cesargomez89/icho/internal/logger"
	"github.com/cesargomez89/icho/internal/storage"
)

// Document is the on-disk playlist format.
type Document struct {
	Name         string   `json:"name"`
	Tracks       []string `json:"tracks"`
	CurrentIndex int      `json:"current_index"`
}

// Manager reads and writes playlist documents under a base directory.
type Manager struct {
	dir string
	log *logger.Logger
}

func NewManager(dir string, log *logger.Logger) *Manager {
	return &Manager{
		dir: dir,
		log: log.WithComponent("playlist"),
	}
}

// PathFor maps a playlist name to its file path.
func (m *Manager) PathFor(name string) string {
	return filepath.Join(m.dir, storage.Sanitize(name)+".json")
}

// Load reads a playlist by name. Track paths that no longer exist on disk
// are dropped, and the saved position is clamped to the surviving tracks.
func (m *Manager) Load(name string) (*Document, error) {
	data, err := os.ReadFile(m.PathFor(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("playlist %s: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read playlist %s: %w", name, err)
	}

	// A corrupt document loads as an empty playlist rather than failing
	// the caller.
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		m.log.Warn("playlist file is corrupt, loading empty", "playlist", name, "error", err)
		return &Document{Name: name}, nil
	}
	if doc.Name == "" {
		doc.Name = name
	}

	// Later duplicates are dropped and missing files skipped, keeping the
	// saved position on the same surviving entry where possible.
	seen := make(map[string]bool, len(doc.Tracks))
	kept := doc.Tracks[:0]
	dropped := 0
	for i, path := range doc.Tracks {
		_, statErr := os.Stat(path)
		if seen[path] || statErr != nil {
			if statErr != nil {
				dropped++
			}
			if i <= doc.CurrentIndex && doc.CurrentIndex > 0 {
				doc.CurrentIndex--
			}
			continue
		}
		seen[path] = true
		kept = append(kept, path)
	}
	doc.Tracks = kept

	if doc.CurrentIndex >= len(doc.Tracks) {
		doc.CurrentIndex = 0
	}
	if doc.CurrentIndex < 0 {
		doc.CurrentIndex = 0
	}

	if dropped > 0 {
		m.log.Warn("playlist references missing files", "playlist", name, "dropped", dropped)
	}
	return &doc, nil
}

// Save writes a playlist atomically. Duplicate entries are dropped before
// the document hits disk, keeping the first occurrence.
func (m *Manager) Save(doc *Document) error {
	if doc.Name == "" {
		return fmt.Errorf("playlist name cannot be empty")
	}
	if err := storage.EnsureDir(m.dir); err != nil {
		return fmt.Errorf("failed to create playlists dir: %w", err)
	}

	dedupe(doc)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode playlist %s: %w", doc.Name, err)
	}

	path := m.PathFor(doc.Name)
	tmp := storage.TempSibling(path)
	if err := storage.WriteFile(tmp, data); err != nil {
		return fmt.Errorf("failed to write playlist %s: %w", doc.Name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		storage.RemoveFile(tmp)
		return fmt.Errorf("failed to save playlist %s: %w", doc.Name, err)
	}
	return nil
}

// dedupe drops later duplicate tracks in place, keeping the first
// occurrence and shifting the saved position for removed earlier entries.
func dedupe(doc *Document) {
	seen := make(map[string]bool, len(doc.Tracks))
	kept := doc.Tracks[:0]
	for i, path := range doc.Tracks {
		if seen[path] {
			if i <= doc.CurrentIndex && doc.CurrentIndex > 0 {
				doc.CurrentIndex--
			}
			continue
		}
		seen[path] = true
		kept = append(kept, path)
	}
	doc.Tracks = kept
}

// Delete removes a playlist file.
func (m *Manager) Delete(name string) error {
	err := storage.RemoveFile(m.PathFor(name))
	if os.IsNotExist(err) {
		return fmt.Errorf("playlist %s: %w", name, domain.ErrNotFound)
	}
	return err
}

// List returns the names of every playlist in the base directory.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, domain.StemOf(e.Name()))
	}
	return names, nil
}
