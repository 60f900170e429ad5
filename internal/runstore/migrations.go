package runstore

// schema is applied on every open; statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	architecture  TEXT NOT NULL,
	depth         INTEGER NOT NULL,
	model_dir     TEXT NOT NULL,
	log_dir       TEXT NOT NULL,
	command       TEXT NOT NULL,
	status        TEXT NOT NULL,
	started_at    TIMESTAMP NOT NULL,
	finished_at   TIMESTAMP,
	elapsed_ms    INTEGER NOT NULL DEFAULT 0,
	exit_code     INTEGER NOT NULL DEFAULT 0,
	error_message TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`
