// Package render turns a completed ScanResult into one of the three
// output encodings: a bordered text table, CSV, or pretty-printed
// JSON.
//
// The column headers and state strings are the tool's output contract
// (Puerto, Estado, Servicio). Table and CSV rows are sorted ascending
// by port; JSON preserves the result's insertion order. CSV fields are
// comma-joined without quoting — embedded commas are an accepted
// limitation of the format.
package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmr-tortoise/escaner/internal/model"
	"github.com/mmr-tortoise/escaner/internal/service"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// String returns the string representation of Format.
func (f Format) String() string {
	return string(f)
}

// IsValid checks whether the Format value is one of the supported
// encodings.
func (f Format) IsValid() bool {
	switch f {
	case FormatTable, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// ParseFormat converts a string to a Format. Returns an error if the
// string does not match any supported encoding.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	if !format.IsValid() {
		return "", fmt.Errorf("invalid output format: %q (valid: table, json, csv)", s)
	}
	return format, nil
}

// header holds the three column titles shared by table and CSV output.
var header = [3]string{"Puerto", "Estado", "Servicio"}

// Render encodes the result in the requested format.
func Render(result *model.ScanResult, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return JSON(result), nil
	case FormatCSV:
		return CSV(result), nil
	case FormatTable:
		return Table(result), nil
	default:
		return "", fmt.Errorf("invalid output format: %q", format)
	}
}

// annotation returns the Servicio cell for table and CSV rows: the
// conventional name for an open port ("desconocido" when the table has
// no entry), and "-" for any port that is not open.
func annotation(port int, outcome model.ProbeOutcome) string {
	if !outcome.IsOpen() {
		return "-"
	}
	name, ok := service.Lookup(port, "tcp")
	if !ok {
		return service.Unknown
	}
	return name
}

// Table renders a bordered three-column table. Column widths are the
// maximum content width per column, rows are sorted ascending by port,
// and cells are left-justified with one space of padding, matching the
// original tool's layout byte for byte.
func Table(result *model.ScanResult) string {
	type row [3]string
	rows := make([]row, 0, result.Len())
	for _, port := range result.SortedPorts() {
		outcome, _ := result.Outcome(port)
		rows = append(rows, row{
			strconv.Itoa(port),
			outcome.Estado(),
			annotation(port, outcome),
		})
	}

	var widths [3]int
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	separator := strings.Join([]string{
		strings.Repeat("-", widths[0]+2),
		strings.Repeat("-", widths[1]+2),
		strings.Repeat("-", widths[2]+2),
	}, "+")

	formatRow := func(r [3]string) string {
		cells := make([]string, 3)
		for i, cell := range r {
			cells[i] = fmt.Sprintf(" %-*s ", widths[i], cell)
		}
		return strings.Join(cells, "|")
	}

	lines := make([]string, 0, len(rows)+4)
	lines = append(lines, separator)
	lines = append(lines, formatRow(header))
	lines = append(lines, separator)
	for _, r := range rows {
		lines = append(lines, formatRow(r))
	}
	lines = append(lines, separator)
	return strings.Join(lines, "\n")
}

// CSV renders the header line followed by one line per port, sorted
// ascending. Fields are comma-joined with no quoting or escaping.
func CSV(result *model.ScanResult) string {
	var b strings.Builder
	b.WriteString("Puerto,Estado,Servicio\n")
	for _, port := range result.SortedPorts() {
		outcome, _ := result.Outcome(port)
		fmt.Fprintf(&b, "%d,%s,%s\n", port, outcome.Estado(), annotation(port, outcome))
	}
	return b.String()
}

// JSON renders an object keyed by port number as a string, in the
// result's insertion order (completion order, not sorted), with
// 2-space indentation. Each value holds the state text and the service
// annotation: the conventional name for a known open port,
// "desconocido" for an open port missing from the table, and null for
// any port that is not open.
func JSON(result *model.ScanResult) string {
	ports := result.PortsInOrder()
	if len(ports) == 0 {
		return "{}"
	}

	var b strings.Builder
	b.WriteString("{\n")
	for i, port := range ports {
		outcome, _ := result.Outcome(port)

		servicio := "null"
		if outcome.IsOpen() {
			name, ok := service.Lookup(port, "tcp")
			if !ok {
				name = service.Unknown
			}
			servicio = mustMarshalString(name)
		}

		fmt.Fprintf(&b, "  %s: {\n    \"estado\": %s,\n    \"servicio\": %s\n  }",
			mustMarshalString(strconv.Itoa(port)),
			mustMarshalString(outcome.Estado()),
			servicio)
		if i < len(ports)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// mustMarshalString JSON-encodes a string. Marshalling a string cannot
// fail, so the error is discarded.
func mustMarshalString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}
