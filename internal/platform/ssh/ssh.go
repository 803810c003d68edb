package ssh

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"al.essio.dev/pkg/shellescape"
	"golang.org/x/crypto/ssh"
)

// GenericFailureCode is the exit code reported when the command could not
// be run at all.
const GenericFailureCode = 255

const (
	defaultPort           = 22
	defaultConnectTimeout = 10 * time.Second
)

// Config holds transport configuration shared by all hosts.
type Config struct {
	User       string
	PrivateKey []byte

	// Port defaults to 22.
	Port int

	// ConnectTimeout bounds TCP connect plus SSH handshake.
	// If zero, defaultConnectTimeout is used.
	ConnectTimeout time.Duration

	// HostKeyCallback handles host key verification.
	// If nil, ssh.InsecureIgnoreHostKey() is used.
	HostKeyCallback ssh.HostKeyCallback
}

// Result is the outcome of one remote invocation.
type Result struct {
	ExitCode int
	Output   string
}

// Success reports whether the remote side exited cleanly.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Transport executes commands over SSH. It parses the private key once and
// opens a connection per call. Safe for concurrent use.
type Transport struct {
	config Config
	signer ssh.Signer
}

// NewTransport validates cfg and parses the private key.
func NewTransport(cfg *Config) (*Transport, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("config user cannot be empty")
	}
	if len(cfg.PrivateKey) == 0 {
		return nil, fmt.Errorf("config private key cannot be empty")
	}

	configCopy := *cfg
	if configCopy.Port == 0 {
		configCopy.Port = defaultPort
	}
	if configCopy.ConnectTimeout == 0 {
		configCopy.ConnectTimeout = defaultConnectTimeout
	}
	if configCopy.HostKeyCallback == nil {
		configCopy.HostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // ephemeral hosts
	}

	signer, err := ssh.ParsePrivateKey(configCopy.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &Transport{config: configCopy, signer: signer}, nil
}

// NewTransportFromFile reads the private key from an identity file.
func NewTransportFromFile(user, identityFile string, connectTimeout time.Duration) (*Transport, error) {
	key, err := os.ReadFile(identityFile) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read identity file: %w", err)
	}
	return NewTransport(&Config{User: user, PrivateKey: key, ConnectTimeout: connectTimeout})
}

// Run executes command on host. The returned error is non-nil only when the
// context ends; remote and transport failures are reported in Result.
func (t *Transport) Run(ctx context.Context, host, command string) (Result, error) {
	return t.RunWithTimeout(ctx, host, command, t.config.ConnectTimeout)
}

// RunWithTimeout is Run with a per-call connect timeout.
func (t *Transport) RunWithTimeout(ctx context.Context, host, command string, connectTimeout time.Duration) (Result, error) {
	return t.exec(ctx, host, command, nil, connectTimeout)
}

// Copy streams a local file into the remote home directory under its base
// name, over a single session.
func (t *Transport) Copy(ctx context.Context, host, localPath string) (Result, error) {
	f, err := os.Open(localPath) // #nosec G304
	if err != nil {
		return Result{}, fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer func() { _ = f.Close() }()

	command := "cat > ~/" + shellescape.Quote(filepath.Base(localPath))
	return t.exec(ctx, host, command, f, t.config.ConnectTimeout)
}

func (t *Transport) exec(ctx context.Context, host, command string, stdin *os.File, connectTimeout time.Duration) (Result, error) {
	client, err := t.connect(ctx, host, connectTimeout)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{ExitCode: GenericFailureCode, Output: err.Error()}, nil
	}
	defer func() { _ = client.Close() }()

	// Closing the client unblocks a running session.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = client.Close()
		case <-done:
		}
	}()

	session, err := client.NewSession()
	if err != nil {
		return Result{ExitCode: GenericFailureCode, Output: fmt.Sprintf("failed to create SSH session on %s: %v", host, err)}, nil
	}
	defer func() { _ = session.Close() }()

	var out lockedBuffer
	session.Stdout = &out
	session.Stderr = &out
	if stdin != nil {
		session.Stdin = stdin
	}

	runErr := session.Run(command)
	if ctx.Err() != nil {
		return Result{}, ctx.Err()
	}

	return Result{ExitCode: exitCode(runErr), Output: out.String()}, nil
}

func (t *Transport) connect(ctx context.Context, host string, timeout time.Duration) (*ssh.Client, error) {
	config := &ssh.ClientConfig{
		User:            t.config.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(t.signer)},
		HostKeyCallback: t.config.HostKeyCallback,
		Timeout:         timeout,
	}

	addr := net.JoinHostPort(host, strconv.Itoa(t.config.Port))
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	// The handshake shares the connect deadline.
	_ = conn.SetDeadline(time.Now().Add(timeout))
	c, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("SSH handshake with %s failed: %w", addr, err)
	}
	_ = conn.SetDeadline(time.Time{})

	return ssh.NewClient(c, chans, reqs), nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ssh.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitStatus()
	}
	return GenericFailureCode
}

// lockedBuffer merges stdout and stderr, which the session writes from
// separate goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
