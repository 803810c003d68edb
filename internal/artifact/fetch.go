package artifact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/pterm/pterm"

	"github.com/imamik/cassandra-ec2/internal/platform/s3"
	"github.com/imamik/cassandra-ec2/internal/util/naming"
)

// ErrDownload marks a failed artifact download.
var ErrDownload = errors.New("artifact download failed")

// ObjectOpener opens S3 objects. *s3.Client implements it.
type ObjectOpener interface {
	Open(ctx context.Context, bucket, key string) (*s3.Object, error)
}

// Fetcher downloads artifacts into a staging directory.
type Fetcher struct {
	HTTP *http.Client
	S3   ObjectOpener

	// Progress receives a progress bar when non-nil.
	Progress io.Writer
	Log      logr.Logger
}

// NewFetcher returns a fetcher using http.DefaultClient.
func NewFetcher(s3Client ObjectOpener, progress io.Writer, log logr.Logger) *Fetcher {
	return &Fetcher{HTTP: http.DefaultClient, S3: s3Client, Progress: progress, Log: log}
}

type source struct {
	body io.ReadCloser
	size int64
}

// Fetch downloads rawURL into stagingDir and returns the local path. A
// staged file of the same size is reused without downloading again.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, stagingDir string) (string, error) {
	name := naming.ArtifactFile(rawURL)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("%w: cannot derive a file name from %q", ErrDownload, rawURL)
	}
	dest := filepath.Join(stagingDir, name)

	src, err := f.open(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer func() { _ = src.body.Close() }()

	if src.size <= 0 {
		return "", fmt.Errorf("%w: failed to determine content length of %s", ErrDownload, rawURL)
	}

	if info, statErr := os.Stat(dest); statErr == nil && info.Size() == src.size {
		f.Log.Info("Reusing staged artifact", "path", dest, "bytes", src.size)
		return dest, nil
	}

	f.Log.Info("Downloading artifact", "url", rawURL, "bytes", src.size)
	if err := os.MkdirAll(stagingDir, 0o750); err != nil {
		return "", fmt.Errorf("%w: creating staging dir: %v", ErrDownload, err)
	}
	if err := f.write(dest, src); err != nil {
		return "", err
	}
	return dest, nil
}

func (f *Fetcher) open(ctx context.Context, rawURL string) (*source, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid URL %q: %v", ErrDownload, rawURL, err)
	}

	switch u.Scheme {
	case "http", "https":
		return f.openHTTP(ctx, rawURL)
	case "s3":
		return f.openS3(ctx, rawURL)
	default:
		return nil, fmt.Errorf("%w: unsupported URL scheme %q", ErrDownload, u.Scheme)
	}
}

func (f *Fetcher) openHTTP(ctx context.Context, rawURL string) (*source, error) {
	client := f.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrDownload, rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: %s", ErrDownload, rawURL, resp.Status)
	}
	return &source{body: resp.Body, size: resp.ContentLength}, nil
}

func (f *Fetcher) openS3(ctx context.Context, rawURL string) (*source, error) {
	if f.S3 == nil {
		return nil, fmt.Errorf("%w: no S3 client configured for %s", ErrDownload, rawURL)
	}
	bucket, key, err := s3.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	obj, err := f.S3.Open(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDownload, err)
	}
	return &source{body: obj.Body, size: obj.Size}, nil
}

// write streams src into dest through a temporary file so an interrupted
// download never looks complete.
func (f *Fetcher) write(dest string, src *source) error {
	tmp := dest + ".part"
	out, err := os.Create(tmp) // #nosec G304
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}

	var reader io.Reader = src.body
	var bar *pterm.ProgressbarPrinter
	if f.Progress != nil {
		bar, err = pterm.DefaultProgressbar.
			WithTotal(int(src.size)).
			WithTitle(filepath.Base(dest)).
			WithWriter(f.Progress).
			Start()
		if err == nil {
			reader = &progressReader{r: src.body, bar: bar}
		}
	}

	n, copyErr := io.Copy(out, reader)
	closeErr := out.Close()
	if bar != nil {
		_, _ = bar.Stop()
	}

	switch {
	case copyErr != nil:
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrDownload, copyErr)
	case closeErr != nil:
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrDownload, closeErr)
	case n != src.size:
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: short read: got %d of %d bytes", ErrDownload, n, src.size)
	}

	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}
	return nil
}

type progressReader struct {
	r   io.Reader
	bar *pterm.ProgressbarPrinter
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.bar.Add(n)
	}
	return n, err
}
