package uploader

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shortclip/shortclip/internal/clipboard"
)

type recordedRequest struct {
	authorization string
	contentType   string
	body          []byte
}

func TestUploadSuccess(t *testing.T) {
	var got recordedRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = recordedRequest{
			authorization: r.Header.Get("Authorization"),
			contentType:   r.Header.Get("Content-Type"),
			body:          body,
		}
		w.Header().Set("Location", "http://localhost:3000/abc123def45")
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	u := New(ts.URL, "my-token")
	link, err := u.Upload(context.Background(), clipboard.Content{
		MediaType: "text/plain",
		Data:      []byte("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/abc123def45", link)

	// The token is sent verbatim, without a Bearer prefix.
	assert.Equal(t, "my-token", got.authorization)
	assert.Equal(t, "text/plain", got.contentType)
	assert.Equal(t, []byte("hello"), got.body)
}

func TestUploadNon201IsFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	u := New(ts.URL, "wrong")
	_, err := u.Upload(context.Background(), clipboard.Content{MediaType: "text/plain", Data: []byte("x")})
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestUploadMissingLocationIsFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	u := New(ts.URL, "tok")
	_, err := u.Upload(context.Background(), clipboard.Content{MediaType: "text/plain", Data: []byte("x")})
	assert.ErrorIs(t, err, ErrUploadFailed)
}

func TestUploadTransportErrorIsFailure(t *testing.T) {
	u := New("http://127.0.0.1:1", "tok") // nothing listens here
	_, err := u.Upload(context.Background(), clipboard.Content{MediaType: "text/plain", Data: []byte("x")})
	assert.ErrorIs(t, err, ErrUploadFailed)
}
