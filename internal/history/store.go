package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // registers "sqlite" (pure Go)

	"github.com/Aman-CERP/phonebench/internal/bench"
	amerrors "github.com/Aman-CERP/phonebench/internal/errors"
)

// DefaultDriver is the database/sql driver used when none is configured.
const DefaultDriver = "sqlite"

// Run is one recorded benchmark invocation.
type Run struct {
	ID            int64
	StartedAt     time.Time
	Fingerprint   string
	DirectoryPath string
	QueriesPath   string
	Entries       int
	Queries       int
	AbortFactor   int
	Results       []bench.Result
}

// Store persists runs.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the history database at path.
func Open(path, driver string) (*Store, error) {
	if driver == "" {
		driver = DefaultDriver
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, historyError("create history directory", err).WithDetail("path", path)
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, historyError("open history database", err).WithDetail("path", path)
	}
	// One connection keeps SQLite from contending with itself.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, historyError("configure history database", err).WithDetail("path", path)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		directory_path TEXT NOT NULL,
		queries_path TEXT NOT NULL,
		entries INTEGER NOT NULL,
		queries INTEGER NOT NULL,
		abort_factor INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_fingerprint ON runs(fingerprint);

	-- Phase columns are NULL when the strategy has no such phase.
	CREATE TABLE IF NOT EXISTS results (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		strategy TEXT NOT NULL,
		found INTEGER NOT NULL,
		total_ns INTEGER NOT NULL,
		sorting_ns INTEGER,
		searching_ns INTEGER,
		hashing_ns INTEGER,
		aborted INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, strategy)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return historyError("create history schema", err)
	}
	return nil
}

// Record stores run and its results in one transaction and returns the new
// run ID.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, historyError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (started_at, fingerprint, directory_path, queries_path, entries, queries, abort_factor)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.StartedAt.UTC().Format(time.RFC3339Nano), run.Fingerprint, run.DirectoryPath, run.QueriesPath,
		run.Entries, run.Queries, run.AbortFactor)
	if err != nil {
		return 0, historyError("insert run", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, historyError("read run id", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, strategy, found, total_ns, sorting_ns, searching_ns, hashing_ns, aborted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, historyError("prepare result insert", err)
	}
	defer stmt.Close()

	for _, r := range run.Results {
		_, err := stmt.ExecContext(ctx, id, r.Strategy.Key(), r.Info.Found, int64(r.Total),
			phaseValue(r.Info.Sorting), phaseValue(r.Info.Searching), phaseValue(r.Info.Hashing),
			boolValue(r.Info.Aborted))
		if err != nil {
			return 0, historyError("insert result", err).WithDetail("strategy", r.Strategy.Key())
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, historyError("commit transaction", err)
	}
	return id, nil
}

// List returns up to limit runs, newest first, with their results in run
// order. A limit of zero or less returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, fingerprint, directory_path, queries_path, entries, queries, abort_factor
		FROM runs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, historyError("query runs", err)
	}

	var runs []Run
	for rows.Next() {
		var (
			run     Run
			started string
		)
		if err := rows.Scan(&run.ID, &started, &run.Fingerprint, &run.DirectoryPath, &run.QueriesPath,
			&run.Entries, &run.Queries, &run.AbortFactor); err != nil {
			_ = rows.Close()
			return nil, historyError("scan run", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, historyError("iterate runs", err)
	}
	_ = rows.Close()

	// Results are loaded after the runs cursor is closed; the pool has a
	// single connection.
	for i := range runs {
		results, err := s.results(ctx, runs[i].ID, runs[i].Queries)
		if err != nil {
			return nil, err
		}
		runs[i].Results = results
	}
	return runs, nil
}

func (s *Store) results(ctx context.Context, runID int64, queries int) ([]bench.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT strategy, found, total_ns, sorting_ns, searching_ns, hashing_ns, aborted
		FROM results
		WHERE run_id = ?
	`, runID)
	if err != nil {
		return nil, historyError("query results", err)
	}
	defer rows.Close()

	byStrategy := make(map[bench.Strategy]bench.Result)
	for rows.Next() {
		var key string
		var found, aborted int
		var total int64
		var sorting, searching, hashing sql.NullInt64
		if err := rows.Scan(&key, &found, &total, &sorting, &searching, &hashing, &aborted); err != nil {
			return nil, historyError("scan result", err)
		}
		strategy, ok := bench.ParseStrategy(key)
		if !ok {
			continue
		}
		byStrategy[strategy] = bench.Result{
			Strategy: strategy,
			Queries:  queries,
			Total:    time.Duration(total),
			Info: bench.SearchInfo{
				Found:     found,
				Sorting:   phaseFrom(sorting),
				Searching: phaseFrom(searching),
				Hashing:   phaseFrom(hashing),
				Aborted:   aborted != 0,
			},
		}
	}
	if err := rows.Err(); err != nil {
		return nil, historyError("iterate results", err)
	}

	ordered := make([]bench.Result, 0, len(byStrategy))
	for _, s := range bench.Strategies() {
		if r, ok := byStrategy[s]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}

func phaseValue(p bench.Phase) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(p.Elapsed), Valid: p.Measured}
}

func phaseFrom(v sql.NullInt64) bench.Phase {
	if !v.Valid {
		return bench.Phase{}
	}
	return bench.Measured(time.Duration(v.Int64))
}

func boolValue(b bool) int {
	if b {
		return 1
	}
	return 0
}

func historyError(action string, err error) *amerrors.BenchError {
	return amerrors.New(amerrors.ErrCodeHistoryFailed, fmt.Sprintf("history: %s", action), err)
}
