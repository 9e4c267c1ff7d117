// Package model defines the domain types for the escaner CLI.
//
// The central type is ProbeOutcome, a tagged classification of one TCP
// connect attempt against one (target, port) pair. A completed scan is
// a ScanResult: a port → ProbeOutcome mapping that remembers arrival
// order, because the JSON renderer preserves insertion order while the
// table and CSV renderers sort by port number.
//
// The package also defines the two fatal configuration errors
// (InvalidRangeError, InvalidTargetError) and the CLIError/ExitCode
// taxonomy used by the cli package to translate failures into process
// exit codes.
package model
