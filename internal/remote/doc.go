// Package remote runs commands and file transfers against single nodes.
//
// Execute retries a failing command with a fixed delay and, once the retry
// budget is spent, returns an *ExecutionError whose Kind tells transport
// failures (exit code 255, usually a wrong user or identity file) apart
// from commands that ran and failed. Transfer is attempted once. Probe is
// a soft reachability check that never returns an error.
package remote
