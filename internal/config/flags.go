package config

import (
	"flag"
	"fmt"
	"io"
)

// Options are the process-level settings that are not part of a preset.
type Options struct {
	ConfigPath string
	Width      int
	Height     int
	Seed       int64
	Debug      bool

	Headless bool
	Frames   int
	Out      string
}

// RegisterFlags binds command-line overrides for every field of cfg.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.BlobCount, "blobs", cfg.BlobCount, fmt.Sprintf("Number of blobs (%d-%d)", MinBlobs, MaxBlobs))
	fs.IntVar(&cfg.Speed, "speed", cfg.Speed, fmt.Sprintf("Blob speed (%d-%d)", MinSpeed, MaxSpeed))
	fs.IntVar(&cfg.Smoothness, "smoothness", cfg.Smoothness, fmt.Sprintf("Edge smoothness (%d-%d)", MinSmoothness, MaxSmoothness))
	fs.Var(&cfg.GradientStart, "start", "Gradient start color (#RRGGBB)")
	fs.Var(&cfg.GradientEnd, "end", "Gradient end color (#RRGGBB)")
	fs.StringVar(&cfg.Axis, "axis", cfg.Axis, "Gradient direction: diagonal or vertical")
	fs.IntVar(&cfg.Stickiness, "stickiness", cfg.Stickiness, fmt.Sprintf("Pointer repulsion scale (%d-%d)", MinStickiness, MaxStickiness))
	fs.BoolVar(&cfg.ScaleRepulsion, "scale-repulsion", cfg.ScaleRepulsion, "Scale pointer repulsion by stickiness")
	fs.Float64Var(&cfg.GlowBlur, "glow-blur", cfg.GlowBlur, "Glow blur radius in pixels (0 disables)")
}

func registerOptions(fs *flag.FlagSet, o *Options) {
	fs.StringVar(&o.ConfigPath, "config", "", "JSON preset to start from")
	fs.IntVar(&o.Width, "width", WindowWidth, "Window width")
	fs.IntVar(&o.Height, "height", WindowHeight, "Window height")
	fs.Int64Var(&o.Seed, "seed", 0, "Random seed (0 = time based)")
	fs.BoolVar(&o.Debug, "debug", false, "Write a debug log to logs/")
	fs.BoolVar(&o.Headless, "headless", false, "Render without a window and write a PNG")
	fs.IntVar(&o.Frames, "frames", 300, "Frames to simulate in headless mode")
	fs.StringVar(&o.Out, "out", "lavalamp.png", "Output image in headless mode")
}

// Parse reads args into a settings snapshot and process options. Flags
// given explicitly override values loaded from -config.
func Parse(name string, args []string, output io.Writer) (Config, Options, error) {
	var (
		cfg  = Default()
		opts Options
	)
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	RegisterFlags(fs, &cfg)
	registerOptions(fs, &opts)
	if err := fs.Parse(args); err != nil {
		return cfg, opts, err
	}

	if opts.ConfigPath != "" {
		base, err := Load(opts.ConfigPath)
		if err != nil {
			return cfg, opts, err
		}
		over := flag.NewFlagSet(name, flag.ContinueOnError)
		over.SetOutput(io.Discard)
		RegisterFlags(over, &base)
		var setErr error
		fs.Visit(func(f *flag.Flag) {
			if over.Lookup(f.Name) == nil || setErr != nil {
				return
			}
			setErr = over.Set(f.Name, f.Value.String())
		})
		if setErr != nil {
			return cfg, opts, setErr
		}
		cfg = base
	}

	if opts.Width < 1 {
		opts.Width = 1
	}
	if opts.Height < 1 {
		opts.Height = 1
	}
	if opts.Frames < 0 {
		opts.Frames = 0
	}
	cfg.Normalize()
	return cfg, opts, nil
}
