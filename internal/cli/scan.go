// Package cli — scan.go implements the "escaner scan" command.
//
// The scan command ties the engine together: it expands the port
// specification, validates flags against an optional config file,
// runs the bounded-concurrency scheduler, and renders the result in
// the requested format. Configuration precedence is flag > config
// file > built-in default.
package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/escaner/internal/config"
	"github.com/mmr-tortoise/escaner/internal/model"
	"github.com/mmr-tortoise/escaner/internal/portspec"
	"github.com/mmr-tortoise/escaner/internal/render"
	"github.com/mmr-tortoise/escaner/internal/scan"
)

// Built-in defaults, used when neither a flag nor a config file
// provides a value.
const (
	defaultPorts          = "1-1024"
	defaultTimeoutSeconds = 1.5
	defaultOutput         = "table"
)

// scanFlags holds the flag values for the scan command.
type scanFlags struct {
	ports       string
	timeout     float64
	concurrency int
	output      string
	configPath  string
	noProgress  bool
}

// scanSettings is the fully resolved configuration for one scan
// invocation, after merging flags, config file, and defaults.
type scanSettings struct {
	ports       string
	timeout     time.Duration
	concurrency int
	output      render.Format
}

// NewScanCommand creates the "scan" cobra command.
func NewScanCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan <target>",
		Short: "Scan TCP ports on a target host",
		Long: `Scan probes each port in the requested range with one TCP connect
attempt, classifying it as open, closed, or filtered.

The target is an IPv4 address or a hostname. IPv6 is not supported.

Examples:
  escaner scan 192.168.1.10
  escaner scan example.com -p 20-80 -t 0.5 -o json
  escaner scan 10.0.0.1 -p 443 --config scan.yaml`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.ports, "ports", "p", defaultPorts,
		"Port to scan: a single port (443) or an inclusive range (20-80)")
	cmd.Flags().Float64VarP(&flags.timeout, "timeout", "t", defaultTimeoutSeconds,
		"Per-probe timeout in seconds")
	cmd.Flags().IntVarP(&flags.concurrency, "concurrency", "c", 0,
		"Max probes in flight (default: 4 x available CPUs)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultOutput,
		"Output format: table, json, csv")
	cmd.Flags().StringVar(&flags.configPath, "config", "",
		"Path to a YAML or JSONC file with scan defaults")
	cmd.Flags().BoolVar(&flags.noProgress, "no-progress", false,
		"Disable the progress bar")

	return cmd
}

// resolveSettings merges flag values, the optional config file, and
// built-in defaults into one scanSettings. A flag the user explicitly
// set always wins over the file; file values win over defaults.
// changed reports whether a named flag was set on the command line.
func resolveSettings(flags *scanFlags, file *config.File, changed func(name string) bool) (*scanSettings, error) {
	s := &scanSettings{
		ports:       flags.ports,
		timeout:     time.Duration(flags.timeout * float64(time.Second)),
		concurrency: flags.concurrency,
	}

	if file != nil {
		if file.Ports != "" && !changed("ports") {
			s.ports = file.Ports
		}
		if file.TimeoutSeconds > 0 && !changed("timeout") {
			s.timeout = file.Timeout()
		}
		if file.Concurrency > 0 && !changed("concurrency") {
			s.concurrency = file.Concurrency
		}
		if file.Output != "" && !changed("output") {
			flags.output = file.Output
		}
	}

	if s.timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %vs", flags.timeout)
	}
	if s.concurrency < 0 {
		return nil, fmt.Errorf("concurrency must not be negative, got %d", flags.concurrency)
	}
	if s.concurrency == 0 {
		s.concurrency = model.DefaultConcurrency(runtime.NumCPU())
	}

	format, err := render.ParseFormat(flags.output)
	if err != nil {
		return nil, err
	}
	s.output = format

	return s, nil
}

// runScan is the main logic function for the scan command.
func runScan(cmd *cobra.Command, targetArg string, flags *scanFlags) error {
	// Step 1: Load the config file, if one was given.
	var file *config.File
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to load config", err)
		}
		file = loaded
		VerboseLog("Loaded config defaults from %s", flags.configPath)
	}

	// Step 2: Merge flags, file, and defaults.
	settings, err := resolveSettings(flags, file, cmd.Flags().Changed)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid scan options", err)
	}

	// Step 3: Expand the port specification. This happens before any
	// network activity; a malformed spec aborts the whole invocation.
	ports, err := portspec.Expand(settings.ports)
	if err != nil {
		return model.WrapCLIError(model.ExitInvalidRange, "invalid port specification", err)
	}
	VerboseLog("Scanning %d ports on %s (timeout %v, concurrency %d)",
		len(ports), targetArg, settings.timeout, settings.concurrency)

	cfg := model.ScanConfig{
		Target:      targetArg,
		Ports:       ports,
		Timeout:     settings.timeout,
		Concurrency: settings.concurrency,
	}

	// Step 4: Wire up progress reporting. The bar goes to stderr so
	// stdout stays clean for the rendered result; JSON and CSV runs
	// skip it entirely to keep redirected output noise-free.
	sched := scan.New(nil, nil)
	showProgress := settings.output == render.FormatTable && !flags.noProgress
	openText := color.New(color.FgGreen).SprintfFunc()

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(len(ports),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("escaneando"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
	}
	sched.SetOnCompletion(func(port int, outcome model.ProbeOutcome) {
		if bar != nil {
			_ = bar.Add(1)
		}
		if verbose && outcome.IsOpen() {
			if bar != nil {
				_ = bar.Clear()
			}
			fmt.Fprintln(os.Stderr, openText("[+] %d/tcp %s", port, outcome.Estado()))
		}
	})

	// Step 5: Run the scan. An unvalidatable target fails before any
	// probe is issued.
	start := time.Now()
	result, err := sched.Run(cmd.Context(), cfg)
	if err != nil {
		var targetErr *model.InvalidTargetError
		if errors.As(err, &targetErr) {
			return model.WrapCLIError(model.ExitInvalidTarget, "target validation failed", err)
		}
		return model.WrapCLIError(model.ExitGeneralError, "scan failed", err)
	}
	if bar != nil {
		_ = bar.Finish()
	}
	VerboseLog("Scan finished in %v", time.Since(start).Round(time.Millisecond))

	// Step 6: Render to stdout.
	out, err := render.Render(result, settings.output)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to render result", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
