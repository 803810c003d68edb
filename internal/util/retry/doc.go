// Package retry provides backoff retry logic for transient failures.
//
// The [WithExponentialBackoff] function retries an operation with configurable
// max attempts, initial delay, maximum delay and multiplier. A multiplier of 1
// yields a fixed delay, which is how remote command execution is retried.
package retry
