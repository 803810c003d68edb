// Package async provides utilities for running per-node tasks concurrently.
//
// [RunBounded] waits for every task and reports failures after all of them
// have finished. [RunFailFast] stops scheduling new tasks and cancels
// in-flight ones as soon as one task fails; with a limit of 1 it degenerates
// into a serial loop that stops at the first failure.
package async
