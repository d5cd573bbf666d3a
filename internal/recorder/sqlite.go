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
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			output_path TEXT,
			total       INTEGER,
			resolved    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS observations (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     INTEGER NOT NULL,
			code       TEXT NOT NULL,
			price      REAL,
			change_pct REAL,
			valid      INTEGER NOT NULL,
			FOREIGN KEY(run_id) REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_obs_run ON observations(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_obs_code ON observations(code)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts the run summary and all per-symbol observations in one
// transaction.
func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	res, err := tx.Exec(`INSERT INTO runs (timestamp, output_path, total, resolved) VALUES (?,?,?,?)`,
		snap.GeneratedAt.Unix(), snap.OutputPath, snap.Total, snap.Resolved)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO observations (run_id, code, price, change_pct, valid) VALUES (?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare observation insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range snap.Observations {
		valid := 0
		var price, pct any
		if o.Valid {
			valid = 1
			price = o.Price
			pct = o.ChangePct
		}
		if _, err := stmt.Exec(runID, o.Code, price, pct, valid); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert observation %s: %w", o.Code, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
