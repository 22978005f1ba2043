package main

import (
	"context"
	"log"
	"os"

	"github.com/shortclip/shortclip/internal/hotkey"
	"github.com/shortclip/shortclip/internal/pipeline"
	"github.com/shortclip/shortclip/internal/ui"
	"github.com/shortclip/shortclip/internal/update"
)

// trayApp adapts the pipeline to the tray menu.
type trayApp struct {
	pipeline *pipeline.Pipeline
	tray     *ui.Tray
	cancel   context.CancelFunc
}

func (a *trayApp) UploadOnce() error {
	return a.pipeline.Run(context.Background())
}

func (a *trayApp) LastLink() string {
	return a.pipeline.LastLink()
}

func (a *trayApp) Version() string {
	return Version
}

func (a *trayApp) Quit() {
	a.cancel()
	a.tray.Quit()
}

// runWithTray runs the hotkey listener alongside the system tray.
// The tray owns the main goroutine; systray requires it on some platforms.
func runWithTray(ctx context.Context, p *pipeline.Pipeline, listener hotkey.Listener, upload func() error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := &trayApp{pipeline: p, cancel: cancel}
	app.tray = ui.NewTray(app, update.NewChecker(Version))

	go func() {
		if err := listener.Run(ctx, upload); err != nil && ctx.Err() == nil {
			log.Printf("Hotkey listener stopped: %v", err)
			app.tray.Quit()
			os.Exit(1)
		}
	}()

	app.tray.Run()
	return nil
}
