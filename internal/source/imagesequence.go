package source

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder for validation
	_ "image/png"  // register PNG decoder for validation
	"os"
	"path/filepath"

	"github.com/oshotcore/playcache/internal/frame"
)

var _ frame.Source = (*ImageSequence)(nil)

// ImageSequence is a frame.Source reading frames named "%06d<ext>" (e.g.
// "000001.png") from a single directory, numbered contiguously from 1. The
// sequence length is determined once at construction by probing for the
// first missing index; a timeline that grows or shrinks on disk requires
// constructing a new ImageSequence.
type ImageSequence struct {
	dir      string
	ext      string
	meta     frame.Metadata
	fs       frame.Store
	maxFrame frame.Index
}

// New scans dir for a contiguous run of frames named "%06d"+ext starting
// at 1 and returns an ImageSequence bound to fs. It returns an error if
// frame 1 is missing.
func New(dir, ext string, meta frame.Metadata, fs frame.Store) (*ImageSequence, error) {
	if _, err := os.Stat(framePath(dir, ext, 1)); err != nil {
		return nil, fmt.Errorf("source: image sequence %s: frame 1 not found: %w", dir, err)
	}

	max := frame.Index(1)
	for {
		next := max + 1
		if _, err := os.Stat(framePath(dir, ext, next)); err != nil {
			break
		}
		max = next
	}

	return &ImageSequence{dir: dir, ext: ext, meta: meta, fs: fs, maxFrame: max}, nil
}

func framePath(dir, ext string, idx frame.Index) string {
	return filepath.Join(dir, fmt.Sprintf("%06d%s", idx, ext))
}

// GetFrame reads and validates the image file for index, returning its raw
// bytes as Frame.Data. The core never interprets pixel contents; decoding
// here is only a sanity check that the file is a well-formed image.
func (s *ImageSequence) GetFrame(ctx context.Context, index frame.Index) (frame.Frame, error) {
	if index < 1 || index > s.maxFrame {
		return frame.Frame{}, &frame.SourceError{Index: index, Err: frame.ErrOutOfBounds}
	}
	if err := ctx.Err(); err != nil {
		return frame.Frame{}, &frame.SourceError{Index: index, Err: err}
	}

	path := framePath(s.dir, s.ext, index)
	data, err := os.ReadFile(path)
	if err != nil {
		return frame.Frame{}, &frame.SourceError{Index: index, Err: err}
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return frame.Frame{}, &frame.SourceError{Index: index, Err: fmt.Errorf("invalid image: %w", err)}
	}

	return frame.Frame{Index: index, Data: data}, nil
}

// MaxFrame returns the timeline end determined at construction.
func (s *ImageSequence) MaxFrame(context.Context) (frame.Index, error) {
	return s.maxFrame, nil
}

// FrameMetadata returns the configured frame shape.
func (s *ImageSequence) FrameMetadata() frame.Metadata {
	return s.meta
}

// Store returns the FrameStore bound to this source.
func (s *ImageSequence) Store() frame.Store {
	return s.fs
}
