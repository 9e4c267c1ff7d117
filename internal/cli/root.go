// Package cli implements the cobra-based commands for escaner.
//
// Each subcommand (scan, services) is defined in its own file. This
// file defines the root command, global flags, and the translation of
// CLIError values into process exit codes.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/escaner/internal/model"
)

// verbose enables detailed progress output on stderr. Bound to the
// persistent --verbose flag, so every subcommand sees it.
var verbose bool

// Version, Commit, and Date are set at build time via ldflags and
// injected from the main package.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command. The
// root performs no action itself; scanning and table listing live in
// subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "escaner",
		Short: "Concurrent TCP port scanner",
		Long: `escaner probes a set of TCP ports on a target host and classifies each
as open, closed, or filtered, using bounded concurrent connection attempts.

Results are rendered as a bordered table, CSV, or JSON.`,

		// Errors are formatted by Execute, not by cobra.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewScanCommand())
	rootCmd.AddCommand(NewServicesCommand())

	return rootCmd
}

// Execute runs the root command and translates failures into exit
// codes. CLIError values carry their own code; anything else exits
// with the general error code.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}
		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError writes a diagnostic line to stderr. Color is applied only
// when stderr is a terminal (fatih/color handles the detection).
func printError(message string, underlying error) {
	errText := color.New(color.FgRed).SprintFunc()
	if underlying != nil {
		fmt.Fprintf(os.Stderr, "%s %s: %v\n", errText("Error:"), message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "%s %s\n", errText("Error:"), message)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is
// enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}
