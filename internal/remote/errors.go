package remote

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by errors.Is on the terminal errors of this package.
var (
	ErrBadCredentials = errors.New("remote connection failed, likely bad credentials or identity file")
	ErrCommandFailed  = errors.New("remote command failed")
	ErrTransferFailed = errors.New("file transfer failed")
)

// Kind classifies a terminal execution failure.
type Kind int

const (
	// KindCommand means the command ran and exited non-zero.
	KindCommand Kind = iota
	// KindTransport means the command could not be run over the transport.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindCommand:
		return "command"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ExecutionError is returned by Execute after the last attempt failed.
type ExecutionError struct {
	Host     string
	Command  string
	ExitCode int
	Output   string
	Attempts int
	Kind     Kind
}

func (e *ExecutionError) Error() string {
	if e.Kind == KindTransport {
		return fmt.Sprintf("%s: %s returned %d after %d attempts; check --user, --identity-file and --key-pair%s",
			ErrBadCredentials, e.Host, e.ExitCode, e.Attempts, outputSuffix(e.Output))
	}
	return fmt.Sprintf("%s on %s with exit code %d after %d attempts%s",
		ErrCommandFailed, e.Host, e.ExitCode, e.Attempts, outputSuffix(e.Output))
}

// Unwrap returns the sentinel for the error's kind.
func (e *ExecutionError) Unwrap() error {
	if e.Kind == KindTransport {
		return ErrBadCredentials
	}
	return ErrCommandFailed
}

// TransferError is returned by Transfer when the copy exited non-zero.
type TransferError struct {
	Host     string
	Path     string
	ExitCode int
	Output   string
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s: copying %s to %s returned %d%s",
		ErrTransferFailed, e.Path, e.Host, e.ExitCode, outputSuffix(e.Output))
}

func (e *TransferError) Unwrap() error {
	return ErrTransferFailed
}

func outputSuffix(output string) string {
	output = strings.TrimSpace(output)
	if output == "" {
		return ""
	}
	return ": " + output
}
