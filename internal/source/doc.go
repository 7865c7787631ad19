// Package source provides ImageSequence, a frame.Source backed by a
// directory of numbered image files. It stands in for a real decoder
// (libopenshot's FFmpegReader/Timeline) in the demo binary and in tests
// that exercise the prefetch worker end to end without a video codec.
package source
