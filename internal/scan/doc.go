// Package scan runs port probes under a bounded worker pool and
// aggregates their outcomes into a ScanResult.
//
// The scheduler validates the target before issuing any probe (fail
// fast, zero network activity on a bad target), then feeds every
// requested port through a fixed-size pool of workers. Completions are
// harvested in arrival order, not port order; the join barrier is
// "every port has exactly one outcome", at which point ownership of
// the result transfers to the caller.
//
// There is no mid-scan cancellation path: once issued, a scan runs
// every submitted probe to completion. The only timeout is per-probe.
package scan
