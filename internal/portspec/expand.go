// Package portspec parses textual port specifications into concrete
// port sets.
//
// Two forms are accepted: a single port ("443") and an inclusive range
// ("20-80"). Comma lists and wildcards are deliberately unsupported.
// All failures are reported as *model.InvalidRangeError before any
// network activity takes place.
package portspec

import (
	"strconv"
	"strings"

	"github.com/mmr-tortoise/escaner/internal/model"
)

const (
	// minPort is the lowest valid TCP port number.
	minPort = 1

	// maxPort is the highest valid TCP port number (2^16 - 1).
	maxPort = 65535
)

// Expand parses a port specification and returns the ordered,
// deduplicated set of port numbers it denotes.
//
// A spec containing a "-" separator is an inclusive range "a-b" with
// a ≤ b and both endpoints in [1, 65535]; it expands to every integer
// a..b ascending. A spec without a separator is a single port in the
// same bounds. Anything else fails with *model.InvalidRangeError.
func Expand(spec string) ([]int, error) {
	trimmed := strings.TrimSpace(spec)
	if trimmed == "" {
		return nil, model.NewInvalidRangeError(spec, "empty specification")
	}

	if strings.Contains(trimmed, "-") {
		return expandRange(spec, trimmed)
	}

	port, err := strconv.Atoi(trimmed)
	if err != nil {
		return nil, model.NewInvalidRangeError(spec, "port is not an integer")
	}
	if port < minPort || port > maxPort {
		return nil, model.NewInvalidRangeError(spec, "port out of range (1-65535)")
	}
	return []int{port}, nil
}

// expandRange handles the "a-b" form. spec is the original user input
// (kept verbatim for error reporting), trimmed the whitespace-stripped
// version that is actually parsed.
func expandRange(spec, trimmed string) ([]int, error) {
	bounds := strings.SplitN(trimmed, "-", 2)
	start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil {
		return nil, model.NewInvalidRangeError(spec, "range start is not an integer")
	}
	end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil {
		return nil, model.NewInvalidRangeError(spec, "range end is not an integer")
	}
	if start < minPort || end > maxPort {
		return nil, model.NewInvalidRangeError(spec, "endpoints out of range (1-65535)")
	}
	if start > end {
		return nil, model.NewInvalidRangeError(spec, "range start greater than end")
	}

	ports := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		ports = append(ports, p)
	}
	return ports, nil
}
