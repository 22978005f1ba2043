// Package uploader posts normalized clipboard content to the store server.
package uploader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shortclip/shortclip/internal/clipboard"
)

// ErrUploadFailed is returned for any non-201 response or transport error.
var ErrUploadFailed = errors.New("upload failed")

// Uploader issues authenticated uploads against a single host.
type Uploader struct {
	host   string
	token  string
	client *http.Client
}

// New creates an uploader for the configured host and token.
func New(host, token string) *Uploader {
	return &Uploader{
		host:  host,
		token: token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Upload posts the content and returns the short link from the Location
// header. The token is sent as the literal Authorization value; the server
// accepts it with or without a Bearer prefix.
func (u *Uploader) Upload(ctx context.Context, content clipboard.Content) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.host, bytes.NewReader(content.Data))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", u.token)
	req.Header.Set("Content-Type", content.MediaType)

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%w: server returned %s", ErrUploadFailed, resp.Status)
	}

	link := resp.Header.Get("Location")
	if link == "" {
		return "", fmt.Errorf("%w: response missing Location header", ErrUploadFailed)
	}

	return link, nil
}
