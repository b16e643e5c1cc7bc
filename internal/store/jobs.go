package store

import (
	"database/sql"
	"time"

	"github.com/cesargomez89/icho/internal/domain"
)

func (db *DB) CreateTagJob(job *domain.TagJob) error {
	query := `INSERT OR IGNORE INTO tag_jobs (id, batch_id, path, status, created_at, updated_at)
		VALUES (:id, :batch_id, :path, :status, :created_at, :updated_at)`

	_, err := db.NamedExec(query, job)
	return err
}

func (db *DB) GetTagJob(id string) (*domain.TagJob, error) {
	query := `SELECT id, batch_id, path, status, source, error, created_at, updated_at, finished_at FROM tag_jobs WHERE id = ?`

	job := &domain.TagJob{}
	err := db.Get(job, query, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (db *DB) UpdateTagJobStatus(id string, status domain.JobStatus) error {
	now := time.Now()
	if status.Terminal() {
		query := `UPDATE tag_jobs SET status = ?, updated_at = ?, finished_at = ? WHERE id = ?`
		_, err := db.Exec(query, status, now, now, id)
		return err
	}
	query := `UPDATE tag_jobs SET status = ?, updated_at = ? WHERE id = ?`
	_, err := db.Exec(query, status, now, id)
	return err
}

func (db *DB) FinishTagJob(id string, status domain.JobStatus, source string, errorMsg *string) error {
	now := time.Now()
	query := `UPDATE tag_jobs SET status = ?, source = ?, error = ?, updated_at = ?, finished_at = ? WHERE id = ?`
	_, err := db.Exec(query, status, source, errorMsg, now, now, id)
	return err
}

func (db *DB) ListTagJobs(batchID string) ([]*domain.TagJob, error) {
	query := `SELECT id, batch_id, path, status, source, error, created_at, updated_at, finished_at
		FROM tag_jobs WHERE batch_id = ? ORDER BY created_at ASC, id ASC`

	var jobs []*domain.TagJob
	err := db.Select(&jobs, query, batchID)
	return jobs, err
}

func (db *DB) ListRecentTagJobs(limit int) ([]*domain.TagJob, error) {
	query := `SELECT id, batch_id, path, status, source, error, created_at, updated_at, finished_at
		FROM tag_jobs ORDER BY created_at DESC LIMIT ?`

	var jobs []*domain.TagJob
	err := db.Select(&jobs, query, limit)
	return jobs, err
}

// CancelPendingInBatch marks every still-queued job in a batch cancelled and
// returns their IDs. Running jobs are left for their workers to finish.
func (db *DB) CancelPendingInBatch(batchID string) ([]string, error) {
	var ids []string
	err := db.Select(&ids, `SELECT id FROM tag_jobs WHERE batch_id = ? AND status = 'queued'`, batchID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = db.Exec(`UPDATE tag_jobs SET status = ?, updated_at = ?, finished_at = ? WHERE batch_id = ? AND status = 'queued'`,
		domain.JobStatusCancelled, now, now, batchID)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ResetStuckTagJobs requeues jobs left running by an unclean shutdown.
func (db *DB) ResetStuckTagJobs() error {
	query := `UPDATE tag_jobs SET status = ?, updated_at = ? WHERE status = 'running'`
	_, err := db.Exec(query, domain.JobStatusQueued, time.Now())
	return err
}

func (db *DB) BatchSummary(batchID string) (*domain.BatchSummary, error) {
	query := `SELECT
		COUNT(*) as total,
		COALESCE(SUM(CASE WHEN status = 'succeeded' THEN 1 ELSE 0 END), 0) as succeeded,
		COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) as failed,
		COALESCE(SUM(CASE WHEN status = 'skipped' THEN 1 ELSE 0 END), 0) as skipped,
		COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0) as cancelled,
		COALESCE(SUM(CASE WHEN status IN ('queued', 'running') THEN 1 ELSE 0 END), 0) as pending
	FROM tag_jobs
	WHERE batch_id = ?`

	row := struct {
		Total     int `db:"total"`
		Succeeded int `db:"succeeded"`
		Failed    int `db:"failed"`
		Skipped   int `db:"skipped"`
		Cancelled int `db:"cancelled"`
		Pending   int `db:"pending"`
	}{}
	if err := db.Get(&row, query, batchID); err != nil {
		return nil, err
	}
	if row.Total == 0 {
		return nil, domain.ErrNotFound
	}

	return &domain.BatchSummary{
		BatchID:   batchID,
		Total:     row.Total,
		Succeeded: row.Succeeded,
		Failed:    row.Failed,
		Skipped:   row.Skipped,
		Cancelled: row.Cancelled,
		Pending:   row.Pending,
	}, nil
}
