package frame

// Index is a 1-based frame number. Index 0 is never valid.
type Index int64

// Frame is a single decoded video/audio unit, identified by its 1-based
// position in the timeline. Data is opaque to this package; the prefetch
// core never inspects it, only moves it between a [Source] and a
// [github.com/oshotcore/playcache/internal/store.Store].
type Frame struct {
	Index Index
	Data  []byte
}

// Metadata describes the shape of frames a Source produces, used to derive
// a per-frame byte estimate. PreviewWidth/PreviewHeight, when non-zero,
// take precedence over Width/Height — this mirrors a compositor rendering
// at a reduced preview resolution while the timeline's nominal resolution
// stays at project size.
type Metadata struct {
	Width         int
	Height        int
	PreviewWidth  int
	PreviewHeight int
	SampleRate    int
	Channels      int
	FPS           float64
}

// EffectiveWidth returns PreviewWidth if set, else Width.
func (m Metadata) EffectiveWidth() int {
	if m.PreviewWidth != 0 {
		return m.PreviewWidth
	}
	return m.Width
}

// EffectiveHeight returns PreviewHeight if set, else Height.
func (m Metadata) EffectiveHeight() int {
	if m.PreviewHeight != 0 {
		return m.PreviewHeight
	}
	return m.Height
}
