// Package config loads optional scan defaults from a configuration
// file.
//
// Two syntaxes are supported, selected by file extension: YAML
// (.yaml/.yml, parsed with gopkg.in/yaml.v3) and JSON with comments
// (.json/.jsonc, stripped with github.com/tidwall/jsonc before parsing
// with encoding/json). File values sit between built-in defaults and
// explicit flags: a flag the user sets always wins over the file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/escaner/internal/render"
)

// File holds the scan defaults a configuration file may provide.
// Zero values mean "not set"; the CLI falls through to its built-in
// defaults for those fields.
type File struct {
	// Ports is a port specification string, e.g. "1-1024" or "443".
	Ports string `yaml:"ports" json:"ports,omitempty"`

	// TimeoutSeconds is the per-probe timeout in seconds. Fractional
	// values are allowed (the CLI default is 1.5).
	TimeoutSeconds float64 `yaml:"timeout" json:"timeout,omitempty"`

	// Concurrency is the maximum number of probes in flight.
	Concurrency int `yaml:"concurrency" json:"concurrency,omitempty"`

	// Output is the output format: table, json, or csv.
	Output string `yaml:"output" json:"output,omitempty"`
}

// Timeout converts TimeoutSeconds to a duration. Returns zero when the
// field is unset.
func (f *File) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds * float64(time.Second))
}

// Load reads and parses the configuration file at path. The syntax is
// chosen by extension; anything other than .yaml/.yml/.json/.jsonc is
// rejected rather than guessed.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse YAML config %s: %w", path, err)
		}
	case ".json", ".jsonc":
		// jsonc.ToJSON strips comments and trailing commas, producing
		// plain JSON for the standard decoder.
		if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
			return nil, fmt.Errorf("parse JSON config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config extension %q (supported: .yaml, .yml, .json, .jsonc)", ext)
	}

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &f, nil
}

// validate rejects values that could never be valid regardless of what
// the flags add. Ports syntax is left to the expander, which reports
// the precise reason.
func (f *File) validate() error {
	if f.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", f.TimeoutSeconds)
	}
	if f.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", f.Concurrency)
	}
	if f.Output != "" {
		if _, err := render.ParseFormat(f.Output); err != nil {
			return err
		}
	}
	return nil
}
