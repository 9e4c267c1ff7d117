package model

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// ScanResult maps each requested port to exactly one ProbeOutcome.
//
// The scheduler owns the result while the scan is running and records
// outcomes in completion order, which is generally not port order.
// Once the scan finishes, ownership transfers to the caller and the
// result is read-only.
//
// Arrival order is remembered because the JSON encoding preserves it,
// while table and CSV output sort ascending by port number.
type ScanResult struct {
	order    []int
	outcomes map[int]ProbeOutcome
}

// NewScanResult creates an empty result sized for n ports.
func NewScanResult(n int) *ScanResult {
	return &ScanResult{
		order:    make([]int, 0, n),
		outcomes: make(map[int]ProbeOutcome, n),
	}
}

// Record inserts the outcome for a port. Ports are unique per scan, so
// recording the same port twice replaces the outcome without changing
// its position in arrival order.
func (r *ScanResult) Record(port int, outcome ProbeOutcome) {
	if _, exists := r.outcomes[port]; !exists {
		r.order = append(r.order, port)
	}
	r.outcomes[port] = outcome
}

// Len returns the number of ports with a recorded outcome.
func (r *ScanResult) Len() int {
	return len(r.outcomes)
}

// Outcome returns the recorded outcome for a port, and whether one
// exists.
func (r *ScanResult) Outcome(port int) (ProbeOutcome, bool) {
	o, ok := r.outcomes[port]
	return o, ok
}

// PortsInOrder returns the ports in arrival order. The returned slice
// is a copy; mutating it does not affect the result.
func (r *ScanResult) PortsInOrder() []int {
	out := make([]int, len(r.order))
	copy(out, r.order)
	return out
}

// SortedPorts returns the ports sorted ascending.
func (r *ScanResult) SortedPorts() []int {
	out := r.PortsInOrder()
	sort.Ints(out)
	return out
}

// MarshalJSON encodes the result as an object keyed by the port number
// as a string, in arrival order. encoding/json would sort map keys, so
// the object is assembled by hand from individually marshalled
// entries.
func (r *ScanResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, port := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(strconv.Itoa(port))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.outcomes[port])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
