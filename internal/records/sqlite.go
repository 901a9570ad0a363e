package records

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStorage keeps entries in a SQLite database.
type SQLiteStorage struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at path and runs migrations.
func OpenSQLite(path string) (*SQLiteStorage, error) {
	dbPath, err := ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; SSH sessions append through the same handle.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &SQLiteStorage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *SQLiteStorage) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			level_id INTEGER NOT NULL,
			theme TEXT NOT NULL,
			outcome TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			mistakes INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_level ON level_results(level_id, outcome, elapsed_ms);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append inserts one entry.
func (s *SQLiteStorage) Append(e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO level_results (run_id, level_id, theme, outcome, elapsed_ms, attempts, mistakes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.LevelID, e.Theme, e.Outcome, e.Elapsed.Milliseconds(), e.Attempts, e.Mistakes, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save result: %w", err)
	}
	return nil
}

// LoadAll returns every entry in insertion order.
func (s *SQLiteStorage) LoadAll() ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT run_id, level_id, theme, outcome, elapsed_ms, attempts, mistakes, created_at
		 FROM level_results ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var elapsedMs int64
		if err := rows.Scan(&e.RunID, &e.LevelID, &e.Theme, &e.Outcome, &elapsedMs, &e.Attempts, &e.Mistakes, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("storage: cannot scan result: %w", err)
		}
		e.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}
