package probe

import (
	"context"
	"errors"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/mmr-tortoise/escaner/internal/model"
)

// Func is the signature of a port probe. The scheduler takes a Func
// rather than calling TCP directly, so tests can substitute synthetic
// outcomes and instrument concurrency.
type Func func(ctx context.Context, target string, port int, timeout time.Duration) model.ProbeOutcome

// unknownReason is the sentinel reason recorded when the OS error code
// is not in the known table. An unrecognized code is still treated as
// closed, not filtered.
const unknownReason = "cerrado"

// reasonByErrno maps recognized OS-level error codes to canonical
// human-readable reason strings. The table is a closed enumeration;
// codes outside it fall back to unknownReason.
var reasonByErrno = map[syscall.Errno]string{
	syscall.ECONNREFUSED:  "connection refused",
	syscall.ECONNRESET:    "connection reset",
	syscall.ECONNABORTED:  "connection aborted",
	syscall.EHOSTUNREACH:  "host unreachable",
	syscall.ENETUNREACH:   "network unreachable",
	syscall.EHOSTDOWN:     "host down",
	syscall.ENETDOWN:      "network down",
	syscall.EADDRNOTAVAIL: "address not available",
	syscall.EACCES:        "permission denied",
	syscall.ETIMEDOUT:     "connection timed out",
}

// TCP attempts one TCP connection to target:port, blocking up to
// timeout, and classifies the result. It satisfies Func.
//
// Exactly one socket is opened per call and it is closed on every exit
// path. KeepAlive is disabled on the dialer because the connection is
// never used after the handshake.
func TCP(ctx context.Context, target string, port int, timeout time.Duration) model.ProbeOutcome {
	dialer := net.Dialer{
		Timeout:   timeout,
		KeepAlive: -1,
	}

	addr := net.JoinHostPort(target, strconv.Itoa(port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err == nil {
		_ = conn.Close()
		return model.Open()
	}
	return Classify(err)
}

// Classify translates a dial error into a ProbeOutcome.
//
// Timeouts are checked first: a probe that produced no definitive
// answer within its window is filtered, even when the underlying errno
// is ETIMEDOUT. Then the errno table decides between a named closed
// reason and the "cerrado" fallback. Errors that carry no errno at all
// (resource exhaustion, unexpected socket failures) become Error
// outcomes and never abort the scan.
func Classify(err error) model.ProbeOutcome {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return model.FilteredTimeout()
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if reason, ok := reasonByErrno[errno]; ok {
			return model.ClosedWithReason(reason)
		}
		return model.ClosedWithReason(unknownReason)
	}

	return model.ErrorOutcome(err.Error())
}
