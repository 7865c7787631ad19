package source

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/oshotcore/playcache/internal/frame"
)

// GenerateSequence writes n solid-color PNG frames of size w×h into dir,
// named for consumption by New. It exists so the demo binary and tests can
// produce a playable timeline without a real decoder or test fixtures on
// disk; each frame's color shifts with its index purely so frames are
// visibly distinguishable, not for any correctness reason.
func GenerateSequence(dir string, n, w, h int) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("source: generate sequence: %w", err)
	}

	for i := 1; i <= n; i++ {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		shade := uint8((i * 37) % 256)
		fillColor := color.RGBA{R: shade, G: uint8(255 - int(shade)), B: 128, A: 255}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetRGBA(x, y, fillColor)
			}
		}

		f, err := os.Create(framePath(dir, ".png", frame.Index(i)))
		if err != nil {
			return fmt.Errorf("source: generate sequence: frame %d: %w", i, err)
		}
		err = png.Encode(f, img)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("source: generate sequence: encode frame %d: %w", i, err)
		}
		if closeErr != nil {
			return fmt.Errorf("source: generate sequence: close frame %d: %w", i, closeErr)
		}
	}
	return nil
}
