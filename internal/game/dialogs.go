package game

import (
	"context"
	"errors"
	"log"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/lava-lamp/internal/config"
)

// mutation changes game state between frames.
type mutation func(g *Game)

// openDialog runs a native dialog off the frame loop. Its result is queued
// and applied at the start of the next Update. Only one dialog is open at a
// time; further requests are dropped.
func (g *Game) openDialog(name string, run func(ctx context.Context) (mutation, error)) {
	g.dialogs.Go(func(ctx context.Context) (mutation, bool) {
		m, err := run(ctx)
		if err != nil {
			if errors.Is(err, zenity.ErrCanceled) || errors.Is(err, context.Canceled) {
				return nil, false
			}
			log.Printf("%s: %v", name, err)
			return func(g *Game) { g.lastErr = err }, true
		}
		return m, m != nil
	})
}

// pickColor opens a color chooser for one end of the gradient.
func (g *Game) pickColor(title string, initial config.RGB, set func(cfg *config.Config, c config.RGB)) {
	g.openDialog("pick color", func(ctx context.Context) (mutation, error) {
		c, err := zenity.SelectColor(
			zenity.Title(title),
			zenity.Color(initial.Color()),
			zenity.Context(ctx),
		)
		if err != nil {
			return nil, err
		}
		picked := config.FromColor(c)
		return func(g *Game) {
			cfg := g.scene.Config()
			set(&cfg, picked)
			g.apply(cfg)
		}, nil
	})
}

func (g *Game) loadPresetDialog() {
	g.openDialog("load preset", func(ctx context.Context) (mutation, error) {
		path, err := zenity.SelectFile(
			zenity.Title("Load Lava Lamp Preset"),
			zenity.FileFilters{{Name: "Preset", Patterns: []string{"*.json"}}},
			zenity.Context(ctx),
		)
		if err != nil {
			return nil, err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		return func(g *Game) {
			log.Printf("loaded preset %s", path)
			g.apply(cfg)
		}, nil
	})
}

func (g *Game) savePresetDialog() {
	cfg := g.scene.Config()
	g.openDialog("save preset", func(ctx context.Context) (mutation, error) {
		path, err := zenity.SelectFileSave(
			zenity.Title("Save Lava Lamp Preset"),
			zenity.Filename("lavalamp.json"),
			zenity.ConfirmOverwrite(),
			zenity.FileFilters{{Name: "Preset", Patterns: []string{"*.json"}}},
			zenity.Context(ctx),
		)
		if err != nil {
			return nil, err
		}
		if err := config.Save(path, cfg); err != nil {
			return nil, err
		}
		log.Printf("saved preset %s", path)
		return nil, nil
	})
}

func (g *Game) openAudioDialog() {
	g.openDialog("open audio", func(ctx context.Context) (mutation, error) {
		path, err := zenity.SelectFile(
			zenity.Title("Open Audio File"),
			zenity.FileFilters{{
				Name:     "Audio",
				Patterns: []string{"*.wav", "*.mp3", "*.flac"},
			}},
			zenity.Context(ctx),
		)
		if err != nil {
			return nil, err
		}
		return func(g *Game) {
			if err := g.player.load(path); err != nil {
				g.lastErr = err
			}
		}, nil
	})
}
