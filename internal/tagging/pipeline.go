package tagging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cesargomez89/icho/internal/domain"
	"github.com/cesargomez89/icho/internal/logger"
	"github.com/cesargomez89/icho/internal/store"
)

// Pipeline runs tagging batches with a bounded number of concurrent workers.
// Job state lives in the store so outcomes are visible while a batch runs.
type Pipeline struct {
	resolver *Resolver
	writer   *Writer
	db       *store.DB
	log      *logger.Logger
	workers  int

	mu      sync.Mutex
	batches map[string]context.CancelFunc
	guard   *pathGuard
}

func NewPipeline(resolver *Resolver, writer *Writer, db *store.DB, workers int, log *logger.Logger) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		writer:   writer,
		db:       db,
		workers:  workers,
		log:      log.WithComponent("pipeline"),
		batches:  make(map[string]context.CancelFunc),
		guard:    newPathGuard(),
	}
}

// Start enqueues one job per path and begins processing in the background.
// It returns the batch ID immediately. Paths with a still-active job are
// dropped from the batch rather than tagged twice. Manually edited tracks
// are skipped unless force is set.
func (p *Pipeline) Start(ctx context.Context, paths []string, force bool) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("no files to tag")
	}

	batchID := uuid.NewString()
	var jobs []*domain.TagJob
	for _, path := range paths {
		now := time.Now()
		job := &domain.TagJob{
			ID:        uuid.NewString(),
			BatchID:   batchID,
			Path:      path,
			Status:    domain.JobStatusQueued,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := p.db.CreateTagJob(job); err != nil {
			return "", fmt.Errorf("failed to enqueue job for %s: %w", path, err)
		}
		// The insert is ignored when the path already has an active job.
		if _, err := p.db.GetTagJob(job.ID); err != nil {
			p.log.Warn("file already has an active job", "path", path)
			continue
		}
		jobs = append(jobs, job)
	}
	if len(jobs) == 0 {
		return "", fmt.Errorf("every file already has an active job")
	}

	bctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.batches[batchID] = cancel
	p.mu.Unlock()

	p.log.Info("batch started", "batch_id", batchID, "jobs", len(jobs), "force", force)
	go p.run(bctx, batchID, jobs, force)
	return batchID, nil
}

// Cancel stops a running batch. Queued jobs are marked cancelled at once;
// jobs already in flight stop at their next checkpoint.
func (p *Pipeline) Cancel(batchID string) error {
	p.mu.Lock()
	cancel, ok := p.batches[batchID]
	p.mu.Unlock()
	if !ok {
		return fmt.Errorf("batch %s: %w", batchID, domain.ErrNotFound)
	}

	cancel()
	if _, err := p.db.CancelPendingInBatch(batchID); err != nil {
		return fmt.Errorf("failed to cancel queued jobs: %w", err)
	}
	p.log.Info("batch cancelled", "batch_id", batchID)
	return nil
}

// Summary reports the current outcome counts for a batch.
func (p *Pipeline) Summary(batchID string) (*domain.BatchSummary, error) {
	return p.db.BatchSummary(batchID)
}

// Jobs lists every job in a batch, in enqueue order.
func (p *Pipeline) Jobs(batchID string) ([]*domain.TagJob, error) {
	return p.db.ListTagJobs(batchID)
}

func (p *Pipeline) run(ctx context.Context, batchID string, jobs []*domain.TagJob, force bool) {
	defer func() {
		p.mu.Lock()
		if cancel, ok := p.batches[batchID]; ok {
			cancel()
			delete(p.batches, batchID)
		}
		p.mu.Unlock()
	}()

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(job *domain.TagJob) {
			defer wg.Done()
			defer func() { <-sem }()
			p.process(ctx, job, force)
		}(job)
	}

	wg.Wait()

	if ctx.Err() != nil {
		// Jobs never handed to a worker are still queued.
		if _, err := p.db.CancelPendingInBatch(batchID); err != nil {
			p.log.Error("failed to cancel remaining jobs", "batch_id", batchID, "error", err)
		}
	}
	p.log.Info("batch finished", "batch_id", batchID)
}

// AcquirePath reserves exclusive write access to a file for callers outside
// the pipeline, such as a manual edit. ReleasePath must follow.
func (p *Pipeline) AcquirePath(path string) bool {
	return p.guard.tryAcquire(path)
}

func (p *Pipeline) ReleasePath(path string) {
	p.guard.release(path)
}

func (p *Pipeline) process(ctx context.Context, job *domain.TagJob, force bool) {
	log := p.log.WithJob(job.ID).WithTrack(job.Path)

	if ctx.Err() != nil {
		if err := p.db.UpdateTagJobStatus(job.ID, domain.JobStatusCancelled); err != nil {
			log.Error("failed to mark job cancelled", "error", err)
		}
		return
	}

	if !Supported(job.Path) {
		p.finish(job.ID, domain.JobStatusFailed, "", domain.ErrUnsupported, log)
		return
	}

	if !p.guard.tryAcquire(job.Path) {
		p.finish(job.ID, domain.JobStatusFailed, "", fmt.Errorf("another write is in progress for this file"), log)
		return
	}
	defer p.guard.release(job.Path)

	if !force {
		source, err := p.db.TagSourceOf(job.Path)
		if err != nil {
			p.finish(job.ID, domain.JobStatusFailed, "", err, log)
			return
		}
		if source == domain.TagSourceManual {
			p.finish(job.ID, domain.JobStatusSkipped, string(domain.TagSourceManual), nil, log)
			return
		}
	}

	if err := p.db.UpdateTagJobStatus(job.ID, domain.JobStatusRunning); err != nil {
		log.Error("failed to mark job running", "error", err)
		return
	}

	meta, err := p.resolver.Resolve(ctx, job.Path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			p.finish(job.ID, domain.JobStatusCancelled, "", nil, log)
			return
		}
		p.finish(job.ID, domain.JobStatusFailed, "", err, log)
		return
	}

	if meta.Source == domain.SourceExisting {
		p.finish(job.ID, domain.JobStatusSkipped, string(meta.Source), nil, log)
		return
	}

	// Cancellation checkpoint between the lookup and the write, so a file is
	// either untouched or fully written.
	if ctx.Err() != nil {
		p.finish(job.ID, domain.JobStatusCancelled, "", nil, log)
		return
	}

	if err := p.writer.Write(job.Path, meta); err != nil {
		p.finish(job.ID, domain.JobStatusFailed, string(meta.Source), err, log)
		return
	}

	// Catalog metadata and provenance change only after a successful write.
	err = p.db.UpsertTrackMeta(&store.TrackMeta{
		Path:      job.Path,
		Title:     meta.Title,
		Artist:    meta.Artist,
		Album:     meta.Album,
		TagSource: meta.Source.TagSource(),
	})
	if err != nil {
		log.Error("failed to record track metadata", "error", err)
	}

	p.finish(job.ID, domain.JobStatusSucceeded, string(meta.Source), nil, log)
}

func (p *Pipeline) finish(jobID string, status domain.JobStatus, source string, cause error, log *logger.Logger) {
	var msg *string
	if cause != nil {
		s := cause.Error()
		msg = &s
	}
	if err := p.db.FinishTagJob(jobID, status, source, msg); err != nil {
		log.Error("failed to record job outcome", "error", err)
		return
	}

	switch status {
	case domain.JobStatusFailed:
		log.Warn("job failed", "error", cause)
	default:
		log.Info("job finished", "status", status, "source", source)
	}
}
