package pipeline

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortclip/shortclip/internal/clipboard"
	"github.com/shortclip/shortclip/internal/uploader"
)

// stubAdapter is a scripted clipboard for pipeline tests.
type stubAdapter struct {
	variant clipboard.Variant
	written []string
}

func (a *stubAdapter) Read() (clipboard.Variant, error) {
	if a.variant == nil {
		return nil, clipboard.ErrEmpty
	}
	return a.variant, nil
}

func (a *stubAdapter) WriteText(text string) error {
	a.written = append(a.written, text)
	return nil
}

type echoServer struct {
	ts          *httptest.Server
	status      int
	location    string
	contentType string
	body        []byte
	requests    int
}

func newEchoServer(t *testing.T) *echoServer {
	t.Helper()
	e := &echoServer{status: http.StatusCreated, location: "http://localhost:3000/abc123def45"}
	e.ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.requests++
		e.contentType = r.Header.Get("Content-Type")
		e.body, _ = io.ReadAll(r.Body)
		if e.location != "" {
			w.Header().Set("Location", e.location)
		}
		w.WriteHeader(e.status)
	}))
	t.Cleanup(e.ts.Close)
	return e
}

func newTestPipeline(adapter clipboard.Adapter, e *echoServer) *Pipeline {
	return New(adapter, uploader.New(e.ts.URL, "tok"))
}

func TestRunURLTextUploadsAsURIList(t *testing.T) {
	e := newEchoServer(t)
	adapter := &stubAdapter{variant: clipboard.Text{Value: "https://a.test/"}}

	p := newTestPipeline(adapter, e)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, "text/uri-list", e.contentType)
	assert.Equal(t, []byte("https://a.test/"), e.body)
	assert.Equal(t, []string{e.location}, adapter.written)
	assert.Equal(t, e.location, p.LastLink())
}

func TestRunImageUploadsAsPNG(t *testing.T) {
	e := newEchoServer(t)
	adapter := &stubAdapter{variant: clipboard.Image{
		Pix:    bytes.Repeat([]byte{128, 64, 32, 255}, 6),
		Width:  3,
		Height: 2,
	}}

	p := newTestPipeline(adapter, e)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, "image/png", e.contentType)
	decoded, err := png.Decode(bytes.NewReader(e.body))
	require.NoError(t, err)
	assert.Equal(t, 3, decoded.Bounds().Dx())
	assert.Equal(t, 2, decoded.Bounds().Dy())
}

func TestRunFileReferenceUploadsFileBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.png")
	payload := []byte("file payload")
	require.NoError(t, os.WriteFile(path, payload, 0600))

	e := newEchoServer(t)
	adapter := &stubAdapter{variant: clipboard.Text{Value: "file://" + path}}

	p := newTestPipeline(adapter, e)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, "image/png", e.contentType)
	assert.Equal(t, payload, e.body)
}

func TestRunUploadFailureLeavesClipboard(t *testing.T) {
	e := newEchoServer(t)
	e.status = http.StatusForbidden
	e.location = ""
	adapter := &stubAdapter{variant: clipboard.Text{Value: "hello"}}

	p := newTestPipeline(adapter, e)
	err := p.Run(context.Background())
	require.Error(t, err)

	assert.Empty(t, adapter.written)
	assert.Empty(t, p.LastLink())
}

func TestRunEmptyClipboardSkipsUpload(t *testing.T) {
	e := newEchoServer(t)
	adapter := &stubAdapter{}

	p := newTestPipeline(adapter, e)
	err := p.Run(context.Background())
	assert.ErrorIs(t, err, clipboard.ErrEmpty)
	assert.Zero(t, e.requests)
	assert.Empty(t, adapter.written)
}
