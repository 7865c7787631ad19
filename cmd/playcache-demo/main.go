// Command playcache-demo wires an image-sequence frame source, a
// byte-budgeted memory store, and the prefetch worker together, then drives
// a synthetic playhead through the timeline so the caching window can be
// observed in the logs. This is the same wiring pattern cmd/prism uses for
// its ingest→demux→pipeline→relay chain, stripped to this module's core.
//
// Usage:
//
//	go run ./cmd/playcache-demo --media-dir ./frames --generate 300
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/oshotcore/playcache"
	"github.com/oshotcore/playcache/internal/source"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	mediaDir := flag.String("media-dir", envOr("MEDIA_DIR", "./playcache-demo-frames"), "directory of numbered PNG frames")
	generate := flag.Int("generate", envOrInt("GENERATE", 0), "synthesize this many frames into media-dir if frame 1 is missing")
	width := flag.Int("width", envOrInt("WIDTH", 640), "frame width")
	height := flag.Int("height", envOrInt("HEIGHT", 360), "frame height")
	sampleRate := flag.Int("sample-rate", envOrInt("SAMPLE_RATE", 48000), "audio sample rate")
	channels := flag.Int("channels", envOrInt("CHANNELS", 2), "audio channel count")
	fps := flag.Float64("fps", envOrFloat("FPS", 24), "frames per second")
	maxBytes := flag.Int64("max-bytes", envOrInt64("MAX_BYTES", 200<<20), "frame store byte budget")

	enableCaching := flag.Bool("enable-caching", true, "master switch for the prefetch worker")
	minPreroll := flag.Int64("min-preroll-frames", 4, "frames that must be cached before IsReady")
	hardCap := flag.Int64("max-frames-hard-cap", 500, "absolute ceiling on derived capacity")
	percentAhead := flag.Float64("percent-ahead", 1.0, "fraction of capacity placed ahead of the playhead")

	startFrame := flag.Int64("start-frame", 1, "initial playhead")
	speed := flag.Int32("speed", 1, "initial playback speed; 0 pauses, negative reverses")
	duration := flag.Duration("duration", 10*time.Second, "how long the synthetic driver runs before exiting")

	flag.Parse()

	if *generate > 0 {
		if _, statErr := os.Stat(filepath.Join(*mediaDir, "000001.png")); statErr != nil {
			if err := source.GenerateSequence(*mediaDir, *generate, *width, *height); err != nil {
				slog.Error("failed to generate synthetic sequence", "error", err)
				os.Exit(1)
			}
		}
	}

	fs := playcache.NewMemoryStore(*maxBytes, nil)
	meta := playcache.Metadata{
		Width:      *width,
		Height:     *height,
		SampleRate: *sampleRate,
		Channels:   *channels,
		FPS:        *fps,
	}

	seq, err := source.New(*mediaDir, ".png", meta, fs)
	if err != nil {
		slog.Error("failed to open image sequence", "dir", *mediaDir, "error", err)
		os.Exit(1)
	}

	w := playcache.New(playcache.Tunables{
		EnableCaching:    *enableCaching,
		MinPrerollFrames: *minPreroll,
		MaxFramesHardCap: *hardCap,
		PercentAhead:     *percentAhead,
	}, nil)
	w.AttachSource(seq)
	w.Seek(playcache.Index(*startFrame), true)
	w.SetSpeed(*speed)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	runCtx, runCancel := context.WithTimeout(ctx, *duration)
	defer runCancel()

	g, gctx := errgroup.WithContext(runCtx)

	if !w.Start(gctx) {
		slog.Error("prefetch worker failed to start")
		os.Exit(1)
	}

	g.Go(func() error {
		<-gctx.Done()
		if !w.Stop(5 * time.Second) {
			return fmt.Errorf("prefetch worker did not stop within timeout")
		}
		return nil
	})

	g.Go(func() error {
		return driveSyntheticPlayhead(gctx, w, *startFrame)
	})

	if err := g.Wait(); err != nil {
		slog.Error("demo exited with error", "error", err)
		os.Exit(1)
	}
}

// driveSyntheticPlayhead advances the playhead once per simulated frame
// interval and periodically logs readiness, standing in for a real
// rendering/transport thread pulling frames from the store.
func driveSyntheticPlayhead(ctx context.Context, w *playcache.Worker, start int64) error {
	playhead := start
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			playhead++
			w.Seek(playcache.Index(playhead), false)
			slog.Info("playhead advanced", "frame", playhead, "ready", w.IsReady())
		}
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return def
	}
	return n
}

func envOrInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var n int64
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return def
	}
	return n
}

func envOrFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var f float64
	if _, err := fmt.Sscanf(v, "%f", &f); err != nil {
		return def
	}
	return f
}
