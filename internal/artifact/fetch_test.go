package artifact

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/cassandra-ec2/internal/platform/s3"
)

const payload = "cassandra-release-bytes"

type fakeOpener struct {
	size   int64
	err    error
	opened []string
}

func (f *fakeOpener) Open(_ context.Context, bucket, key string) (*s3.Object, error) {
	f.opened = append(f.opened, bucket+"/"+key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.Object{Body: io.NopCloser(strings.NewReader(payload)), Size: f.size}, nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/dist/apache-cassandra-3.9-bin.tar.gz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", "23")
		_, _ = io.WriteString(w, payload)
	})
	mux.HandleFunc("/chunked.tar.gz", func(w http.ResponseWriter, _ *http.Request) {
		w.(http.Flusher).Flush()
		_, _ = io.WriteString(w, payload)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_HTTP(t *testing.T) {
	t.Parallel()
	srv := newServer(t)
	dir := t.TempDir()

	f := NewFetcher(nil, io.Discard, logr.Discard())

	path, err := f.Fetch(context.Background(), srv.URL+"/dist/apache-cassandra-3.9-bin.tar.gz", dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "apache-cassandra-3.9-bin.tar.gz"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))
	_, err = os.Stat(path + ".part")
	assert.True(t, os.IsNotExist(err))
}

func TestFetch_ReusesStagedFile(t *testing.T) {
	t.Parallel()
	srv := newServer(t)
	dir := t.TempDir()
	staged := filepath.Join(dir, "apache-cassandra-3.9-bin.tar.gz")
	same := strings.Repeat("z", len(payload))
	require.NoError(t, os.WriteFile(staged, []byte(same), 0o600))

	f := NewFetcher(nil, nil, logr.Discard())
	path, err := f.Fetch(context.Background(), srv.URL+"/dist/apache-cassandra-3.9-bin.tar.gz", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, same, string(data))
}

func TestFetch_NotFound(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	f := NewFetcher(nil, nil, logr.Discard())
	_, err := f.Fetch(context.Background(), srv.URL+"/dist/missing.tar.gz", t.TempDir())
	require.ErrorIs(t, err, ErrDownload)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_MissingContentLength(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	f := NewFetcher(nil, nil, logr.Discard())
	_, err := f.Fetch(context.Background(), srv.URL+"/chunked.tar.gz", t.TempDir())
	require.ErrorIs(t, err, ErrDownload)
	assert.Contains(t, err.Error(), "content length")
}

func TestFetch_S3(t *testing.T) {
	t.Parallel()
	opener := &fakeOpener{size: int64(len(payload))}

	f := NewFetcher(opener, nil, logr.Discard())
	path, err := f.Fetch(context.Background(), "s3://releases/3.9/c.tgz", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"releases/3.9/c.tgz"}, opener.opened)
	assert.Equal(t, "c.tgz", filepath.Base(path))
}

func TestFetch_S3Errors(t *testing.T) {
	t.Parallel()

	f := NewFetcher(nil, nil, logr.Discard())
	_, err := f.Fetch(context.Background(), "s3://releases/c.tgz", t.TempDir())
	assert.ErrorContains(t, err, "no S3 client")

	f = NewFetcher(&fakeOpener{err: s3.ErrObjectNotFound}, nil, logr.Discard())
	_, err = f.Fetch(context.Background(), "s3://releases/c.tgz", t.TempDir())
	assert.ErrorIs(t, err, ErrDownload)
	assert.ErrorIs(t, err, s3.ErrObjectNotFound)

	f = NewFetcher(&fakeOpener{size: -1}, nil, logr.Discard())
	_, err = f.Fetch(context.Background(), "s3://releases/c.tgz", t.TempDir())
	assert.ErrorContains(t, err, "content length")
}

func TestFetch_UnsupportedScheme(t *testing.T) {
	t.Parallel()
	f := NewFetcher(nil, nil, logr.Discard())
	_, err := f.Fetch(context.Background(), "ftp://mirror/c.tgz", t.TempDir())
	assert.ErrorContains(t, err, "unsupported URL scheme")
}
