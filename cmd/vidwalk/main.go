// Package main provides the entry point for the vidwalk CLI.
//
// vidwalk explores YouTube's content graph from a set of keyword
// searches, following related-video edges up to a bounded depth while
// staying inside a configured request budget.
//
// Usage:
//
//	vidwalk init
//	vidwalk crawl
//	vidwalk crawl -c myconfig.yaml
//
// See --help for all available options.
package main

// main is the entry point for vidwalk.
func main() {
	Execute()
}
