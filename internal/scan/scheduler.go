package scan

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmr-tortoise/escaner/internal/model"
	"github.com/mmr-tortoise/escaner/internal/probe"
	"github.com/mmr-tortoise/escaner/internal/target"
)

// ValidateFunc checks whether a target is scannable. It must not issue
// probes and must not fail with an error; any problem yields false.
type ValidateFunc func(target string) bool

// Scheduler runs one probe per requested port under a concurrency cap
// and collects the outcomes.
//
// Both the target validator and the probe function are injected via
// the constructor, which lets tests substitute synthetic probes and
// instrument in-flight concurrency without touching the network.
type Scheduler struct {
	validate ValidateFunc
	probe    probe.Func

	// onCompletion, when set, is invoked from the collector goroutine
	// once per (port, outcome) pair as it arrives. Used by the CLI to
	// advance the progress bar. Called from a single goroutine, so the
	// callback needs no internal locking.
	onCompletion func(port int, outcome model.ProbeOutcome)
}

// New creates a Scheduler. A nil validate falls back to
// target.Validate and a nil probeFn falls back to probe.TCP.
func New(validate ValidateFunc, probeFn probe.Func) *Scheduler {
	if validate == nil {
		validate = target.Validate
	}
	if probeFn == nil {
		probeFn = probe.TCP
	}
	return &Scheduler{validate: validate, probe: probeFn}
}

// SetOnCompletion registers a callback invoked for every harvested
// (port, outcome) pair, in arrival order. Must be called before Run.
func (s *Scheduler) SetOnCompletion(fn func(port int, outcome model.ProbeOutcome)) {
	s.onCompletion = fn
}

// completion pairs a port with its outcome on the results channel.
type completion struct {
	port    int
	outcome model.ProbeOutcome
}

// Run executes the scan described by cfg and returns the completed
// result: exactly one outcome per requested port, no more, no fewer.
//
// It fails with *model.InvalidTargetError when the target does not
// validate, before any probe is issued. Per-port failures never abort
// the scan; they are recorded as data in the result.
func (s *Scheduler) Run(ctx context.Context, cfg model.ScanConfig) (*model.ScanResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !s.validate(cfg.Target) {
		return nil, model.NewInvalidTargetError(cfg.Target)
	}

	total := len(cfg.Ports)
	jobs := make(chan int, total)
	results := make(chan completion, total)

	// A pool wider than the port set would just idle; trim it.
	workers := cfg.Concurrency
	if workers > total {
		workers = total
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for port := range jobs {
				results <- completion{port: port, outcome: s.probePort(ctx, cfg, port)}
			}
		}()
	}

	// The jobs channel is buffered for the whole port set, so
	// enqueueing never blocks; workers drain it as capacity frees up.
	for _, p := range cfg.Ports {
		jobs <- p
	}
	close(jobs)

	// Close the results channel once every worker has finished, which
	// lets the collector loop below terminate naturally.
	go func() {
		wg.Wait()
		close(results)
	}()

	// Harvest completions in arrival order. Only this goroutine writes
	// to the result, so no locking is needed around Record.
	result := model.NewScanResult(total)
	for c := range results {
		result.Record(c.port, c.outcome)
		if s.onCompletion != nil {
			s.onCompletion(c.port, c.outcome)
		}
	}

	// Every worker exited and every job was consumed, so the count can
	// only diverge if a probe was lost. Treat that as fatal rather
	// than returning a partial result.
	if result.Len() != total {
		return nil, fmt.Errorf("scan incomplete: %d of %d ports have outcomes", result.Len(), total)
	}

	return result, nil
}

// probePort runs one probe, converting a panicking probe into an
// Error outcome so no port is ever silently missing from the result.
func (s *Scheduler) probePort(ctx context.Context, cfg model.ScanConfig, port int) (out model.ProbeOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = model.ErrorOutcome(fmt.Sprintf("probe panic: %v", r))
		}
	}()
	return s.probe(ctx, cfg.Target, port, cfg.Timeout)
}
