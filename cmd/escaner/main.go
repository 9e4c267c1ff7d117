// Package main is the entry point for the escaner CLI.
//
// The binary scans TCP ports on a target host and classifies each as
// open, closed, or filtered. All functionality lives in the
// internal/cli package, which defines the cobra commands.
package main

import (
	"github.com/mmr-tortoise/escaner/internal/cli"
)

// version, commit, and date are set by GoReleaser at build time via
// ldflags. During development they default to "dev", "none", and
// "unknown".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	rootCmd := cli.NewRootCommand()
	cli.Execute(rootCmd)
}
