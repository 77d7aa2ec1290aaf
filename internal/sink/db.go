package sink

import (
	"context"

	"github.com/vidwalk/vidwalk/internal/database"
	"github.com/vidwalk/vidwalk/internal/model"
)

// Database records results into the sqlite run-history database under a
// single run id.
type Database struct {
	db    *database.CrawlDB
	runID int64
}

// NewDatabase creates a sink writing to db under runID.
func NewDatabase(db *database.CrawlDB, runID int64) *Database {
	return &Database{db: db, runID: runID}
}

// Record inserts the result; duplicates within the run are ignored at
// the schema level, mirroring the walker's own dedup.
func (s *Database) Record(ctx context.Context, result *model.CrawlResult) error {
	return s.db.InsertVideo(ctx, s.runID, result)
}
