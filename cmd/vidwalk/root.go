package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for vidwalk.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vidwalk",
		Short: "Explore YouTube's related-video graph from keyword searches",
		Long: `vidwalk searches YouTube for a set of configured keywords and then
walks outward along related-video edges, breadth-first, up to a bounded
depth. Discovered videos are appended to a flat JSONL file and,
optionally, to a local run-history database.

All API traffic is metered by a token bucket and protected by
exponential backoff, so a single crawl stays inside the request budget
you configure.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
