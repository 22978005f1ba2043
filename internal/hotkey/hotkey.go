// Package hotkey triggers the upload pipeline on a global key combination.
package hotkey

import (
	"context"
	"fmt"
	"log"

	syshk "golang.design/x/hotkey"
)

// Listener invokes a callback on each hotkey activation. Run blocks until
// the context ends; callback errors are logged and do not stop the loop.
type Listener interface {
	Run(ctx context.Context, callback func() error) error
}

// SystemListener registers Ctrl+U as a global hotkey.
type SystemListener struct{}

// NewSystemListener creates the platform hotkey listener.
func NewSystemListener() *SystemListener {
	return &SystemListener{}
}

// Run registers the hotkey and dispatches activations synchronously.
// Each activation runs to completion before the next is handled.
func (l *SystemListener) Run(ctx context.Context, callback func() error) error {
	hk := syshk.New([]syshk.Modifier{syshk.ModCtrl}, syshk.KeyU)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register hotkey: %w", err)
	}
	defer func() { _ = hk.Unregister() }()

	log.Printf("Hotkey registered (Ctrl+U)")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-hk.Keydown():
			if err := callback(); err != nil {
				log.Printf("Hotkey action failed: %v", err)
			}
		}
	}
}
