package scan

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/escaner/internal/model"
	"github.com/mmr-tortoise/escaner/internal/probe"
)

// alwaysValid is a ValidateFunc stub that accepts any target, so
// scheduler tests never depend on DNS.
func alwaysValid(string) bool { return true }

// stubProbe returns a probe.Func that reports every port with the
// given outcome.
func stubProbe(outcome model.ProbeOutcome) probe.Func {
	return func(context.Context, string, int, time.Duration) model.ProbeOutcome {
		return outcome
	}
}

// testConfig builds a valid ScanConfig for the given ports.
func testConfig(ports []int, concurrency int) model.ScanConfig {
	return model.ScanConfig{
		Target:      "192.0.2.1", // TEST-NET-1, never probed by stubs
		Ports:       ports,
		Timeout:     100 * time.Millisecond,
		Concurrency: concurrency,
	}
}

// TestRun_AllPortsGetExactlyOneOutcome verifies the core contract:
// the result covers exactly the requested port set, regardless of
// completion order.
func TestRun_AllPortsGetExactlyOneOutcome(t *testing.T) {
	ports := make([]int, 0, 50)
	for p := 8000; p < 8050; p++ {
		ports = append(ports, p)
	}

	sched := New(alwaysValid, stubProbe(model.ClosedWithReason("connection refused")))
	result, err := sched.Run(context.Background(), testConfig(ports, 8))
	require.NoError(t, err)

	require.Equal(t, len(ports), result.Len())
	for _, p := range ports {
		outcome, ok := result.Outcome(p)
		require.True(t, ok, "port %d missing from result", p)
		assert.Equal(t, model.ClassClosed, outcome.Class)
	}
}

// TestRun_InvalidTarget verifies fail-fast behavior: an unvalidatable
// target fails with *model.InvalidTargetError and zero probes are
// issued.
func TestRun_InvalidTarget(t *testing.T) {
	var probeCalls atomic.Int64
	counting := func(context.Context, string, int, time.Duration) model.ProbeOutcome {
		probeCalls.Add(1)
		return model.Open()
	}

	sched := New(func(string) bool { return false }, counting)
	result, err := sched.Run(context.Background(), testConfig([]int{80}, 4))

	assert.Nil(t, result)
	require.Error(t, err)

	var targetErr *model.InvalidTargetError
	require.True(t, errors.As(err, &targetErr))
	assert.Equal(t, "192.0.2.1", targetErr.Target)
	assert.Equal(t, int64(0), probeCalls.Load(), "no probe may run for an invalid target")
}

// TestRun_InvalidConfig verifies that config invariant violations are
// rejected before validation or probing.
func TestRun_InvalidConfig(t *testing.T) {
	sched := New(alwaysValid, stubProbe(model.Open()))

	cfg := testConfig([]int{80}, 4)
	cfg.Timeout = 0
	_, err := sched.Run(context.Background(), cfg)
	assert.Error(t, err)

	cfg = testConfig(nil, 4)
	_, err = sched.Run(context.Background(), cfg)
	assert.Error(t, err)
}

// TestRun_ConcurrencyBound instruments the probe to track the maximum
// number of simultaneous in-flight calls and asserts it never exceeds
// the configured limit.
func TestRun_ConcurrencyBound(t *testing.T) {
	const limit = 3

	var mu sync.Mutex
	inFlight := 0
	maxInFlight := 0

	instrumented := func(context.Context, string, int, time.Duration) model.ProbeOutcome {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		// Hold the slot long enough that violations would overlap.
		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return model.FilteredTimeout()
	}

	ports := make([]int, 0, 30)
	for p := 1; p <= 30; p++ {
		ports = append(ports, p)
	}

	sched := New(alwaysValid, instrumented)
	result, err := sched.Run(context.Background(), testConfig(ports, limit))
	require.NoError(t, err)
	require.Equal(t, 30, result.Len())

	assert.LessOrEqual(t, maxInFlight, limit,
		"in-flight probes exceeded the concurrency limit")
	assert.Greater(t, maxInFlight, 0)
}

// TestRun_PanickingProbe verifies that a probe panic is converted into
// an Error outcome for that port instead of losing the port or
// crashing the scan.
func TestRun_PanickingProbe(t *testing.T) {
	panicky := func(_ context.Context, _ string, port int, _ time.Duration) model.ProbeOutcome {
		if port == 81 {
			panic("synthetic fault")
		}
		return model.Open()
	}

	sched := New(alwaysValid, panicky)
	result, err := sched.Run(context.Background(), testConfig([]int{80, 81, 82}, 2))
	require.NoError(t, err)
	require.Equal(t, 3, result.Len())

	outcome, ok := result.Outcome(81)
	require.True(t, ok)
	assert.Equal(t, model.ClassError, outcome.Class)
	assert.Contains(t, outcome.Message, "synthetic fault")

	for _, p := range []int{80, 82} {
		outcome, ok := result.Outcome(p)
		require.True(t, ok)
		assert.Equal(t, model.ClassOpen, outcome.Class)
	}
}

// TestRun_Idempotent verifies that two runs against an always-closed
// synthetic target classify the same port set identically.
func TestRun_Idempotent(t *testing.T) {
	cfg := testConfig([]int{100, 200, 300}, 2)
	sched := New(alwaysValid, stubProbe(model.ClosedWithReason("connection refused")))

	first, err := sched.Run(context.Background(), cfg)
	require.NoError(t, err)
	second, err := sched.Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, first.SortedPorts(), second.SortedPorts())
	for _, p := range cfg.Ports {
		a, _ := first.Outcome(p)
		b, _ := second.Outcome(p)
		assert.Equal(t, a, b)
	}
}

// TestRun_OnCompletionCallback verifies the callback fires exactly
// once per port, in the same order outcomes are recorded.
func TestRun_OnCompletionCallback(t *testing.T) {
	var seen []int
	sched := New(alwaysValid, stubProbe(model.Open()))
	sched.SetOnCompletion(func(port int, _ model.ProbeOutcome) {
		seen = append(seen, port)
	})

	result, err := sched.Run(context.Background(), testConfig([]int{1, 2, 3, 4}, 2))
	require.NoError(t, err)

	assert.Len(t, seen, 4)
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, seen)
	assert.Equal(t, result.PortsInOrder(), seen)
}

// TestRun_LocalListener is the end-to-end scenario from the design
// notes: one port with a live listener and one without, probed with
// the real TCP prober against 127.0.0.1.
func TestRun_LocalListener(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = listener.Close() }()
	openPort := listener.Addr().(*net.TCPAddr).Port

	// Obtain a port that nothing listens on by binding and releasing.
	spare, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	closedPort := spare.Addr().(*net.TCPAddr).Port
	require.NoError(t, spare.Close())

	cfg := model.ScanConfig{
		Target:      "127.0.0.1",
		Ports:       []int{openPort, closedPort},
		Timeout:     time.Second,
		Concurrency: 4,
	}

	sched := New(nil, nil) // real validator, real prober
	result, err := sched.Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 2, result.Len())

	openOutcome, ok := result.Outcome(openPort)
	require.True(t, ok)
	assert.Equal(t, model.ClassOpen, openOutcome.Class)

	closedOutcome, ok := result.Outcome(closedPort)
	require.True(t, ok)
	assert.Equal(t, model.ClassClosed, closedOutcome.Class)
}
