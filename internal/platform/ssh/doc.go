// Package ssh runs commands on and copies files to freshly launched nodes.
//
// Each call opens its own connection, authenticates with a private key and
// reports the remote exit status together with merged stdout/stderr. Transport
// failures (refused connections, handshake or authentication errors) are
// reported as GenericFailureCode, like the OpenSSH client does, so callers
// can tell them apart from commands that ran and failed.
//
// Host keys are not verified and nothing is recorded: the hosts are
// ephemeral and their keys are unknown before first contact.
package ssh
