package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/lava-lamp/internal/config"
	"github.com/iburimskiy/lava-lamp/internal/game"
	"github.com/iburimskiy/lava-lamp/internal/lava"
	"github.com/iburimskiy/lava-lamp/internal/scene"
)

const (
	logDir      = "logs"
	logFileName = "lavalamp.log"
)

// setupLogging sends the standard logger to logs/lavalamp.log when debug is
// set and discards it otherwise.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "lavalamp:", err)
	os.Exit(1)
}

func writePNG(ctx context.Context, path string, cfg config.Config, opts config.Options, rnd lava.Rand) error {
	img, err := scene.Headless(ctx, cfg, opts.Width, opts.Height, opts.Frames, rnd)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func main() {
	cfg, opts, err := config.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fatal(err)
	}

	if logFile := setupLogging(opts.Debug); logFile != nil {
		defer logFile.Close()
	}
	log.Printf("starting: %d blobs, speed %d, smoothness %d", cfg.BlobCount, cfg.Speed, cfg.Smoothness)

	var rnd lava.Rand
	if opts.Seed != 0 {
		rnd = rand.New(rand.NewSource(opts.Seed))
	}

	if opts.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := writePNG(ctx, opts.Out, cfg, opts, rnd); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s after %d frames\n", opts.Out, opts.Frames)
		return
	}

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle("Lava Lamp - H: settings, Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := game.New(cfg, opts.Width, opts.Height, rnd)
	err = ebiten.RunGame(g)
	g.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		fatal(err)
	}
}
