package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so other tools can read history while a run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id              TEXT PRIMARY KEY,
			timestamp       INTEGER NOT NULL,
			campaign_code   TEXT,
			campaign_name   TEXT,
			step_target     INTEGER,
			total_players   INTEGER,
			fetched_players INTEGER,
			partial         INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS player_statuses (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id               TEXT NOT NULL,
			roster_id            TEXT,
			username             TEXT,
			status               TEXT,
			completed_days       INTEGER,
			required_days        INTEGER,
			total_completed_days INTEGER,
			highest_steps        INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_statuses_run ON player_statuses(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	partial := 0
	if snap.Partial {
		partial = 1
	}
	_, err := r.db.Exec(`INSERT INTO runs
		(id, timestamp, campaign_code, campaign_name, step_target,
		 total_players, fetched_players, partial)
		VALUES (?,?,?,?,?,?,?,?)`,
		snap.RunID, snap.EvaluatedAt.Unix(), snap.CampaignCode, snap.CampaignName,
		snap.StepTarget, snap.TotalPlayers, snap.FetchedPlayers, partial,
	)
	return err
}

func (r *SQLiteRecorder) RecordPlayerStatus(st *PlayerStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO player_statuses
		(run_id, roster_id, username, status,
		 completed_days, required_days, total_completed_days, highest_steps)
		VALUES (?,?,?,?,?,?,?,?)`,
		st.RunID, st.RosterID, st.Username, st.Status.String(),
		st.Status.CompletedDays, st.Status.RequiredDays,
		st.TotalCompletedDays, st.HighestSteps,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
