package store

const Schema = `
CREATE TABLE IF NOT EXISTS tag_jobs (
	id TEXT PRIMARY KEY,
	batch_id TEXT NOT NULL,
	path TEXT NOT NULL,
	status TEXT NOT NULL,
	source TEXT,
	error TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	finished_at DATETIME
);

-- Prevent duplicate active jobs for the same file
CREATE UNIQUE INDEX IF NOT EXISTS idx_tag_jobs_active_path ON tag_jobs(path)
WHERE status IN ('queued', 'running');

CREATE INDEX IF NOT EXISTS idx_tag_jobs_batch_id ON tag_jobs(batch_id);
CREATE INDEX IF NOT EXISTS idx_tag_jobs_status ON tag_jobs(status);

CREATE TABLE IF NOT EXISTS tracks (
	path TEXT PRIMARY KEY,
	title TEXT,
	artist TEXT,
	album TEXT,
	tag_source TEXT NOT NULL DEFAULT 'untagged',
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tracks_tag_source ON tracks(tag_source);

CREATE TABLE IF NOT EXISTS playlist_registry (
	path TEXT PRIMARY KEY,
	pinned BOOLEAN NOT NULL DEFAULT 0,
	last_opened_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_playlist_registry_opened ON playlist_registry(last_opened_at);
`
