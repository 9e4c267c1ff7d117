package model

import (
	"fmt"
	"strings"
	"time"
)

// OutcomeClass is the coarse classification of a single port probe.
// Exactly one class applies to each probed port:
//
//	Open     — the target accepted the TCP connection.
//	Closed   — the target actively refused or reset the connection,
//	           or failed with a recognized OS-level error code.
//	Filtered — no definitive answer within the probe timeout. This is
//	           a heuristic: a firewall drop and a congested network
//	           look identical from the outside.
//	Error    — the probe itself failed unexpectedly (resource
//	           exhaustion, unexpected socket error). Local to the port;
//	           never aborts the scan.
type OutcomeClass string

const (
	ClassOpen     OutcomeClass = "open"
	ClassClosed   OutcomeClass = "closed"
	ClassFiltered OutcomeClass = "filtered"
	ClassError    OutcomeClass = "error"
)

// String returns the string representation of OutcomeClass.
// This satisfies fmt.Stringer for logging and test output.
func (c OutcomeClass) String() string {
	return string(c)
}

// IsValid checks whether the OutcomeClass value is one of the
// predefined classifications.
func (c OutcomeClass) IsValid() bool {
	switch c {
	case ClassOpen, ClassClosed, ClassFiltered, ClassError:
		return true
	default:
		return false
	}
}

// ParseOutcomeClass converts a string to an OutcomeClass.
// Returns an error if the string does not match any valid class.
func ParseOutcomeClass(s string) (OutcomeClass, error) {
	class := OutcomeClass(strings.ToLower(s))
	if !class.IsValid() {
		return "", fmt.Errorf("invalid outcome class: %q (valid: open, closed, filtered, error)", s)
	}
	return class, nil
}

// ProbeOutcome is the tagged result of one TCP connect attempt.
// The Class field selects which of Reason/Message is meaningful:
// Reason carries the canonical reason string for Closed outcomes,
// Message carries the error text for Error outcomes. Both are empty
// for Open and Filtered.
type ProbeOutcome struct {
	// Class is the coarse classification.
	Class OutcomeClass `json:"class"`

	// Reason is the canonical human-readable reason for a Closed
	// outcome, e.g. "connection refused". For an unrecognized OS error
	// code this is the sentinel "cerrado".
	Reason string `json:"reason,omitempty"`

	// Message is the error text for an Error outcome.
	Message string `json:"message,omitempty"`
}

// Open returns the outcome for a port that accepted the connection.
func Open() ProbeOutcome {
	return ProbeOutcome{Class: ClassOpen}
}

// ClosedWithReason returns the outcome for a port that actively
// refused the connection, annotated with the canonical reason string
// for the OS error code that was observed.
func ClosedWithReason(reason string) ProbeOutcome {
	return ProbeOutcome{Class: ClassClosed, Reason: reason}
}

// FilteredTimeout returns the outcome for a probe that exceeded its
// timeout without a definitive answer.
func FilteredTimeout() ProbeOutcome {
	return ProbeOutcome{Class: ClassFiltered}
}

// ErrorOutcome returns the outcome for a probe that failed with an
// unexpected error. The port's probe is abandoned but the scan
// continues.
func ErrorOutcome(message string) ProbeOutcome {
	return ProbeOutcome{Class: ClassError, Message: message}
}

// IsOpen reports whether the port accepted the connection. The
// renderers use this to decide whether a service-name annotation
// applies.
func (o ProbeOutcome) IsOpen() bool {
	return o.Class == ClassOpen
}

// Estado returns the user-facing state text for this outcome. These
// strings are the tool's output contract and are stable across
// releases:
//
//	abierto
//	cerrado (<reason>)
//	filtrado (timeout)
//	error (<message>)
func (o ProbeOutcome) Estado() string {
	switch o.Class {
	case ClassOpen:
		return "abierto"
	case ClassClosed:
		return fmt.Sprintf("cerrado (%s)", o.Reason)
	case ClassFiltered:
		return "filtrado (timeout)"
	case ClassError:
		return fmt.Sprintf("error (%s)", o.Message)
	default:
		return string(o.Class)
	}
}

// String returns the same text as Estado, satisfying fmt.Stringer.
func (o ProbeOutcome) String() string {
	return o.Estado()
}

// DefaultTimeout is the per-probe timeout used when none is configured.
const DefaultTimeout = 1500 * time.Millisecond

// concurrencyFactor is the multiplier applied to the host's available
// parallelism when deriving the default concurrency limit.
const concurrencyFactor = 4

// DefaultConcurrency derives the default probe concurrency limit from
// the host's available parallelism (typically runtime.NumCPU()). The
// parallelism value is passed in explicitly rather than read as
// ambient state, so callers and tests control it.
func DefaultConcurrency(parallelism int) int {
	if parallelism < 1 {
		parallelism = 1
	}
	return parallelism * concurrencyFactor
}

// ScanConfig holds everything the scheduler needs to run one scan.
// It is constructed once, validated, and read-only for the scan's
// duration.
type ScanConfig struct {
	// Target is the host to scan: a dotted IPv4 literal or a hostname.
	Target string `json:"target"`

	// Ports is the ordered, deduplicated set of ports to probe.
	// Every element is in [1, 65535].
	Ports []int `json:"ports"`

	// Timeout is the per-probe connect timeout. Must be positive.
	// There is no whole-scan deadline.
	Timeout time.Duration `json:"timeout"`

	// Concurrency is the maximum number of probes in flight at once.
	// Must be positive.
	Concurrency int `json:"concurrency"`
}

// Validate checks the config invariants that do not require network
// access. Target resolution is the scheduler's job, not Validate's.
func (c *ScanConfig) Validate() error {
	if c.Target == "" {
		return fmt.Errorf("scan config: target must not be empty")
	}
	if len(c.Ports) == 0 {
		return fmt.Errorf("scan config: no ports to scan")
	}
	for _, p := range c.Ports {
		if p < 1 || p > 65535 {
			return fmt.Errorf("scan config: port %d out of range (1-65535)", p)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("scan config: timeout must be positive, got %v", c.Timeout)
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("scan config: concurrency must be positive, got %d", c.Concurrency)
	}
	return nil
}
