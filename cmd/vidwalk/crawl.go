package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidwalk/vidwalk/internal/backoff"
	"github.com/vidwalk/vidwalk/internal/config"
	"github.com/vidwalk/vidwalk/internal/crawler"
	"github.com/vidwalk/vidwalk/internal/database"
	"github.com/vidwalk/vidwalk/internal/log"
	"github.com/vidwalk/vidwalk/internal/model"
	"github.com/vidwalk/vidwalk/internal/ratelimit"
	"github.com/vidwalk/vidwalk/internal/report"
	"github.com/vidwalk/vidwalk/internal/sink"
	"github.com/vidwalk/vidwalk/internal/youtube"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Run a keyword-seeded crawl of the related-video graph",
		Long: `Crawl searches YouTube for each configured keyword, then walks outward
along related-video edges breadth-first up to the configured depth.
Every unique video is written once to the output file, with the depth
and parent at which it was discovered.

Individual videos that fail after all retries are logged and skipped;
the run still completes and exits 0. Only a bad configuration or a
rejected API key aborts the run.

Examples:
  # Crawl using .vidwalk from the current or home directory
  vidwalk crawl

  # Use an explicit configuration file
  vidwalk crawl -c myconfig.yaml

  # Override the output file and write a Markdown report
  vidwalk crawl -o videos.jsonl --report report.md`,
		Args: cobra.NoArgs,
		RunE: runCrawlCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .vidwalk in current or home directory)")
	cmd.Flags().StringP("output", "o", "",
		"Output file path, overrides output_file from the configuration")
	cmd.Flags().String("report", "",
		"Write a Markdown run report to the given path")
	cmd.Flags().String("db-dir", "",
		"Run-history database directory, overrides db_dir from the configuration")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildCrawlConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Cancel the run on SIGINT/SIGTERM; results recorded so far are kept.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCrawl(ctx, cfg, logger)
}

// buildCrawlConfig loads the configuration file and applies flag overrides.
func buildCrawlConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	path := config.FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, fmt.Errorf("configuration file not found: %s", configPath)
		}
		return nil, fmt.Errorf("no %s file found (run 'vidwalk init' to create one)", config.DefaultConfigFile)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if output, err := cmd.Flags().GetString("output"); err == nil && output != "" {
		cfg.OutputFile = output
	}
	if reportPath, err := cmd.Flags().GetString("report"); err == nil && reportPath != "" {
		cfg.ReportFile = reportPath
	}
	if dbDir, err := cmd.Flags().GetString("db-dir"); err == nil && dbDir != "" {
		cfg.DBDir = dbDir
	}
	cfg.Verbose = getVerboseFlag(cmd)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runCrawl wires the components together and executes the run.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	limiter := ratelimit.New(cfg.RequestsPerSecond)
	policy := backoff.Policy{
		Base:       cfg.Timeout(),
		MaxRetries: cfg.MaxRetries,
		Jitter:     true,
	}

	// Every API call passes the rate limiter and the retry policy; the
	// keyword expansion strategy sits on top of the gate so its derived
	// searches are metered too.
	base := youtube.NewClient(cfg.APIKey, youtube.WithLogger(logger))
	var client crawler.SearchClient = crawler.NewGatedClient(base, limiter, policy)
	if cfg.RelatedStrategy == config.StrategyKeywords {
		client = youtube.NewKeywordExpander(client,
			youtube.WithMaxKeywords(cfg.MaxRelatedKeywords),
			youtube.WithPerKeywordResults(cfg.MaxResultsPerKeyword),
		)
	}

	jsonl, err := sink.NewJSONL(cfg.OutputFile)
	if err != nil {
		return err
	}
	sinks := []crawler.ResultSink{jsonl}

	var db *database.CrawlDB
	var runID int64
	if cfg.SaveToDB() {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("open history database: %w", err)
		}
		defer db.Close() //nolint:errcheck // Best-effort close on exit

		runID, err = db.BeginRun(ctx, cfg.Keywords, cfg.MaxDepth, time.Now())
		if err != nil {
			return fmt.Errorf("record run start: %w", err)
		}
		sinks = append(sinks, sink.NewDatabase(db, runID))
	}

	results := sink.NewMulti(sinks...)
	defer func() {
		if err := results.Close(); err != nil {
			logger.Warn("closing sinks", "error", err)
		}
	}()

	walker := crawler.New(client, results,
		crawler.WithMaxDepth(cfg.MaxDepth),
		crawler.WithMaxResultsPerKeyword(cfg.MaxResultsPerKeyword),
		crawler.WithWorkers(cfg.Workers),
		crawler.WithLogger(logger),
	)

	summary, runErr := walker.Run(ctx, cfg.Keywords)

	if db != nil {
		// The run context may already be cancelled; finishing the run
		// row is bookkeeping and should still happen.
		if err := db.FinishRun(context.Background(), runID, summary); err != nil {
			logger.Warn("finish run record", "error", err)
		}
	}

	if err := writeReports(cfg, summary); err != nil {
		logger.Warn("write report", "error", err)
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return fmt.Errorf("crawl cancelled (partial results kept in %s)", cfg.OutputFile)
		}
		return runErr
	}
	return nil
}

// writeReports prints the text summary and optionally writes the
// Markdown report file.
func writeReports(cfg *config.Config, summary *model.RunSummary) error {
	if _, err := report.NewTextWriter(os.Stdout).Write(summary); err != nil {
		return err
	}

	if cfg.ReportFile == "" {
		return nil
	}

	f, err := os.Create(cfg.ReportFile) //nolint:gosec // User-chosen report path
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck // Checked via writer error below

	_, err = report.NewMarkdownWriter(f).Write(summary)
	return err
}
