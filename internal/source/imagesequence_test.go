package source

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/oshotcore/playcache/internal/frame"
)

func writeTestPNG(t *testing.T, dir string, idx frame.Index) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	f, err := os.Create(framePath(dir, ".png", idx))
	if err != nil {
		t.Fatalf("create frame file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func TestImageSequence_NewDeterminesMaxFrame(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := frame.Index(1); i <= 5; i++ {
		writeTestPNG(t, dir, i)
	}

	seq, err := New(dir, ".png", frame.Metadata{Width: 4, Height: 4, FPS: 24}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if max, _ := seq.MaxFrame(context.Background()); max != 5 {
		t.Fatalf("MaxFrame = %d, want 5", max)
	}
}

func TestImageSequence_MissingFirstFrameErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := New(dir, ".png", frame.Metadata{}, nil); err == nil {
		t.Fatal("expected error when frame 1 is missing")
	}
}

func TestImageSequence_GetFrameOutOfBounds(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestPNG(t, dir, 1)

	seq, err := New(dir, ".png", frame.Metadata{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = seq.GetFrame(context.Background(), 0)
	if !errors.Is(err, frame.ErrOutOfBounds) {
		t.Fatalf("GetFrame(0) error = %v, want ErrOutOfBounds", err)
	}

	_, err = seq.GetFrame(context.Background(), 2)
	if !errors.Is(err, frame.ErrOutOfBounds) {
		t.Fatalf("GetFrame(2) error = %v, want ErrOutOfBounds", err)
	}
}

func TestImageSequence_GetFrameReturnsBytes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestPNG(t, dir, 1)

	seq, err := New(dir, ".png", frame.Metadata{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	f, err := seq.GetFrame(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetFrame(1): %v", err)
	}
	if f.Index != 1 || len(f.Data) == 0 {
		t.Fatalf("unexpected frame: %+v", f)
	}
}

func TestGenerateSequence_ProducesDecodableFrames(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := GenerateSequence(dir, 10, 8, 8); err != nil {
		t.Fatalf("GenerateSequence: %v", err)
	}

	seq, err := New(dir, ".png", frame.Metadata{Width: 8, Height: 8, FPS: 24}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if max, _ := seq.MaxFrame(context.Background()); max != 10 {
		t.Fatalf("MaxFrame = %d, want 10", max)
	}

	for i := frame.Index(1); i <= 10; i++ {
		if _, err := seq.GetFrame(context.Background(), i); err != nil {
			t.Errorf("GetFrame(%d): %v", i, err)
		}
	}
}

func TestImageSequence_GetFrameRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestPNG(t, dir, 1)
	if err := os.WriteFile(filepath.Join(dir, "000002.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	// Ensure frame 2 is visible to the max-frame scan.
	seq, err := New(dir, ".png", frame.Metadata{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if max, _ := seq.MaxFrame(context.Background()); max != 2 {
		t.Fatalf("MaxFrame = %d, want 2", max)
	}

	if _, err := seq.GetFrame(context.Background(), 2); err == nil {
		t.Fatal("expected error decoding corrupt image file")
	}
}
