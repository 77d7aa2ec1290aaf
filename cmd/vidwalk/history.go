package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidwalk/vidwalk/internal/config"
	"github.com/vidwalk/vidwalk/internal/database"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past crawl runs recorded in the history database",
		Long: `History lists previous crawl runs stored in the local SQLite database,
newest first. Runs are only recorded when db_dir is set in the
configuration (or --db-dir was passed to crawl).`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dbDir, opts)
	if err != nil {
		return fmt.Errorf("no history database in %s (runs are recorded when db_dir is configured)", dbDir)
	}
	defer db.Close() //nolint:errcheck // Read-only access

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No crawl runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		status := "unfinished"
		if !run.FinishedAt.IsZero() {
			status = run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
		}
		cmd.Printf("#%d  %s  depth=%d  discovered=%d  failed=%d  %s  [%s]\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.MaxDepth,
			run.Discovered,
			run.Failed,
			status,
			strings.Join(run.Keywords, ", "),
		)
	}
	return nil
}
