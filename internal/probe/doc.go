// Package probe performs single TCP connect attempts and classifies
// their outcomes.
//
// One probe opens one socket against one (target, port) pair, blocks
// for at most the configured timeout, and always closes the socket
// before returning, whatever the outcome. Classification is:
//
//	connect succeeded            → open
//	timed out                    → filtered (heuristic: likely firewall drop)
//	recognized OS error code     → closed, with a canonical reason string
//	unrecognized OS error code   → closed, with the sentinel "cerrado"
//	anything else                → error, carrying the message
//
// The errno → reason mapping is a closed table, not a runtime lookup
// into the OS error registry, so output is stable across platforms.
package probe
