// Package ui provides the optional daemon tray icon.
package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log"
	"os/exec"
	"runtime"
	"time"

	"fyne.io/systray"

	"github.com/shortclip/shortclip/internal/update"
)

// App is what the tray needs from the application.
type App interface {
	UploadOnce() error
	LastLink() string
	Version() string
	Quit()
}

// Tray manages the system tray icon and menu.
type Tray struct {
	app      App
	checker  *update.Checker
	mLast    *systray.MenuItem
	mUpdate  *systray.MenuItem
	update   *update.Info
	quitChan chan struct{}
}

// NewTray creates a tray for the application.
func NewTray(app App, checker *update.Checker) *Tray {
	return &Tray{
		app:      app,
		checker:  checker,
		quitChan: make(chan struct{}),
	}
}

// Run starts the tray loop (blocking).
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit signals the tray to exit.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(linkIcon())
	systray.SetTooltip("shortclip")

	mUpload := systray.AddMenuItem("Upload Clipboard", "Upload the clipboard and copy the link")
	t.mLast = systray.AddMenuItem("Last link: none", "")
	t.mLast.Disable()

	systray.AddSeparator()

	t.mUpdate = systray.AddMenuItem("Update Available!", "A new version is available")
	t.mUpdate.Hide()
	mCheckUpdate := systray.AddMenuItem("Check for Updates", "")
	mVersion := systray.AddMenuItem("Version: "+t.app.Version(), "")
	mVersion.Disable()

	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "")

	go t.updateCheckLoop()

	go func() {
		for {
			select {
			case <-mUpload.ClickedCh:
				if err := t.app.UploadOnce(); err != nil {
					log.Printf("Tray upload failed: %v", err)
					continue
				}
				t.refreshLastLink()

			case <-mCheckUpdate.ClickedCh:
				t.checkForUpdates()

			case <-t.mUpdate.ClickedCh:
				if t.update != nil && t.update.URL != "" {
					openBrowser(t.update.URL)
				}

			case <-mQuit.ClickedCh:
				t.app.Quit()
				return

			case <-t.quitChan:
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	close(t.quitChan)
}

func (t *Tray) refreshLastLink() {
	if link := t.app.LastLink(); link != "" {
		t.mLast.SetTitle("Last link: " + link)
	}
}

func (t *Tray) checkForUpdates() {
	if t.checker == nil {
		return
	}

	info, err := t.checker.Check()
	if err != nil {
		log.Printf("Update check failed: %v", err)
		return
	}

	t.update = info
	if info.Available {
		t.mUpdate.SetTitle("Update Available: " + info.LatestVersion)
		t.mUpdate.Show()
		log.Printf("Update available: %s -> %s", info.CurrentVersion, info.LatestVersion)
	} else {
		t.mUpdate.Hide()
	}
}

func (t *Tray) updateCheckLoop() {
	time.Sleep(5 * time.Second)
	t.checkForUpdates()

	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.checkForUpdates()
		case <-t.quitChan:
			return
		}
	}
}

// linkIcon draws a small chain-link glyph for the tray.
func linkIcon() []byte {
	const size = 22
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	black := color.RGBA{0, 0, 0, 255}

	// Two interlocking rounded rectangles
	box := func(x0, y0, x1, y1 int) {
		for x := x0; x <= x1; x++ {
			for y := y0; y <= y1; y++ {
				if x == x0 || x == x1 || y == y0 || y == y1 {
					img.Set(x, y, black)
				}
			}
		}
	}
	box(3, 7, 12, 14)
	box(9, 7, 18, 14)

	// Connecting bar
	for x := 7; x <= 14; x++ {
		img.Set(x, 10, black)
		img.Set(x, 11, black)
	}

	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		log.Printf("Unsupported platform for opening browser")
		return
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
