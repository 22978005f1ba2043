// Package pipeline runs the clipboard-to-link pass: read, normalize,
// upload, write the short link back.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shortclip/shortclip/internal/clipboard"
	"github.com/shortclip/shortclip/internal/uploader"
)

// Pipeline runs one capture-and-upload pass at a time.
type Pipeline struct {
	adapter  clipboard.Adapter
	uploader *uploader.Uploader

	mu       sync.Mutex
	lastLink string
	lastRun  time.Time
}

// New creates a pipeline over a clipboard adapter and an uploader.
func New(adapter clipboard.Adapter, up *uploader.Uploader) *Pipeline {
	return &Pipeline{
		adapter:  adapter,
		uploader: up,
	}
}

// Run performs a single pass. An empty clipboard is logged and returns
// clipboard.ErrEmpty with no upload attempted; an upload failure leaves
// the clipboard untouched.
func (p *Pipeline) Run(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	variant, err := p.adapter.Read()
	if err != nil {
		if errors.Is(err, clipboard.ErrEmpty) {
			log.Printf("Clipboard empty, nothing to upload")
			return err
		}
		return fmt.Errorf("read clipboard: %w", err)
	}

	content, err := clipboard.Normalize(variant)
	if err != nil {
		if errors.Is(err, clipboard.ErrEmpty) {
			log.Printf("Clipboard empty, nothing to upload")
			return err
		}
		return fmt.Errorf("normalize clipboard: %w", err)
	}

	log.Printf("Uploading %d bytes as %s", len(content.Data), content.MediaType)

	link, err := p.uploader.Upload(ctx, content)
	if err != nil {
		log.Printf("Upload failed: %v", err)
		return err
	}

	if err := p.adapter.WriteText(link); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}

	log.Printf("Clipboard replaced with %s", link)
	p.lastLink = link
	p.lastRun = time.Now()
	return nil
}

// LastLink returns the most recently produced short link.
func (p *Pipeline) LastLink() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastLink
}

// LastRun returns when the last successful pass finished.
func (p *Pipeline) LastRun() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastRun
}
