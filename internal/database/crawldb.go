package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vidwalk/vidwalk/internal/model"
)

// dbFileName is the database file created inside the configured directory.
const dbFileName = "vidwalk.db"

// CrawlDB stores crawl runs and their discovered videos in a single
// SQLite file. One file holds all runs, which keeps cross-run queries
// (the history command) trivial.
type CrawlDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures CrawlDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file when missing.
	// The history command sets this false so it can report "no history"
	// instead of creating an empty database.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended; the JSONL sink
	// and the database sink write concurrently with reads during a run.
	EnableWAL bool
}

// DefaultOptions returns the options used by a normal crawl run.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the database under dbDir.
func Open(dbDir string, opts Options) (*CrawlDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	} else {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("check database path: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw / mode=rwc in the DSN to control
	// whether a missing file may be created.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite supports a single writer; one connection avoids lock churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CrawlDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CrawlDB) Close() error {
	return cdb.db.Close()
}

// createTables creates the schema if it does not exist.
func (cdb *CrawlDB) createTables() error {
	schema := `
	-- One row per crawl run.
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		keywords TEXT NOT NULL,
		max_depth INTEGER NOT NULL,
		discovered INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- One row per video discovered in a run.
	CREATE TABLE IF NOT EXISTS videos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		video_id TEXT NOT NULL,
		title TEXT,
		channel TEXT,
		description TEXT,
		depth INTEGER NOT NULL,
		parent_id TEXT,
		discovered_at DATETIME,
		UNIQUE(run_id, video_id)
	);

	CREATE INDEX IF NOT EXISTS idx_videos_run ON videos(run_id);
	CREATE INDEX IF NOT EXISTS idx_videos_depth ON videos(run_id, depth);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// BeginRun inserts a new run row and returns its id.
func (cdb *CrawlDB) BeginRun(ctx context.Context, keywords []string, maxDepth int, startedAt time.Time) (int64, error) {
	// Keywords are stored as a JSON array so the list round-trips
	// without a delimiter convention.
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return 0, fmt.Errorf("serialize keywords: %w", err)
	}

	res, err := cdb.db.ExecContext(ctx,
		`INSERT INTO runs (started_at, keywords, max_depth) VALUES (?, ?, ?)`,
		startedAt.UTC(), string(keywordsJSON), maxDepth,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}
	return id, nil
}

// FinishRun stamps the run with its end time and final counts.
func (cdb *CrawlDB) FinishRun(ctx context.Context, runID int64, summary *model.RunSummary) error {
	_, err := cdb.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, discovered = ?, failed = ? WHERE id = ?`,
		time.Now().UTC(), summary.Discovered, summary.Failed, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// InsertVideo stores one discovered video. A duplicate video id within
// the same run is silently ignored; the walker's visited set already
// guarantees uniqueness, and the constraint just makes the database
// agree with it.
func (cdb *CrawlDB) InsertVideo(ctx context.Context, runID int64, result *model.CrawlResult) error {
	_, err := cdb.db.ExecContext(ctx,
		`INSERT INTO videos (run_id, video_id, title, channel, description, depth, parent_id, discovered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(run_id, video_id) DO NOTHING`,
		runID,
		result.Ref.ID,
		result.Ref.Title,
		result.Ref.Channel,
		result.Ref.Description,
		result.Depth,
		result.Parent,
		result.DiscoveredAt,
	)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	return nil
}

// CountByDepth returns how many videos the run discovered at each depth.
func (cdb *CrawlDB) CountByDepth(ctx context.Context, runID int64) (map[int]int, error) {
	rows, err := cdb.db.QueryContext(ctx,
		`SELECT depth, COUNT(*) FROM videos WHERE run_id = ? GROUP BY depth`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("count by depth: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only result set

	counts := make(map[int]int)
	for rows.Next() {
		var depth, count int
		if err := rows.Scan(&depth, &count); err != nil {
			return nil, fmt.Errorf("scan depth count: %w", err)
		}
		counts[depth] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate depth counts: %w", err)
	}

	return counts, nil
}

// RunRecord is one row of run history.
type RunRecord struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Keywords   []string
	MaxDepth   int
	Discovered int
	Failed     int
}

// ListRuns returns the most recent runs, newest first.
func (cdb *CrawlDB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := cdb.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, keywords, max_depth, discovered, failed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only result set

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var finished sql.NullTime
		var keywordsJSON string
		if err := rows.Scan(&r.ID, &r.StartedAt, &finished, &keywordsJSON, &r.MaxDepth, &r.Discovered, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if finished.Valid {
			r.FinishedAt = finished.Time
		}
		if err := json.Unmarshal([]byte(keywordsJSON), &r.Keywords); err != nil {
			return nil, fmt.Errorf("parse run keywords: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}
