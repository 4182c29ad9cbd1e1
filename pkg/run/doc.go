// Package run tracks individual action invocations. Every invocation gets a
// unique run ID and a record of what happened: which action ran, its output,
// exit code and timing. Records live in memory for the lifetime of the
// process.
package run
