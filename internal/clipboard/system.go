package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"time"

	sysclip "golang.design/x/clipboard"
)

// writeDelay keeps the process alive as clipboard owner after a write.
// On X11 the selection is lost if the owner releases it immediately.
const writeDelay = 100 * time.Millisecond

// SystemAdapter reads and writes the OS clipboard. Images are probed
// before text, matching the priority of the normalizer.
type SystemAdapter struct{}

// NewSystemAdapter initializes the OS clipboard access.
func NewSystemAdapter() (*SystemAdapter, error) {
	if err := sysclip.Init(); err != nil {
		return nil, fmt.Errorf("clipboard init: %w", err)
	}
	return &SystemAdapter{}, nil
}

// Read returns the current clipboard content as a Variant.
func (a *SystemAdapter) Read() (Variant, error) {
	if data := sysclip.Read(sysclip.FmtImage); len(data) > 0 {
		// The OS hands us PNG bytes; decode to the raw RGBA buffer the
		// normalizer expects so all PNG encoding happens in one place.
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode clipboard image: %w", err)
		}
		bounds := img.Bounds()
		rgba := image.NewRGBA(bounds)
		draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
		return Image{Pix: rgba.Pix, Width: bounds.Dx(), Height: bounds.Dy()}, nil
	}

	if data := sysclip.Read(sysclip.FmtText); len(data) > 0 {
		return Text{Value: string(data)}, nil
	}

	return nil, ErrEmpty
}

// WriteText replaces the clipboard text and waits briefly before returning
// so the value survives the handoff.
func (a *SystemAdapter) WriteText(text string) error {
	sysclip.Write(sysclip.FmtText, []byte(text))
	time.Sleep(writeDelay)
	return nil
}
