package game

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/lava-lamp/internal/audio"
	"github.com/iburimskiy/lava-lamp/internal/config"
)

const resampleQuality = 4

// player plays an optional soundtrack whose loudness swells the glow.
type player struct {
	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *audio.Tap
	meter       *audio.Meter

	// speaker sample rate, fixed by the first file
	rate     beep.SampleRate
	initDone bool
	paused   bool
	ended    atomic.Bool
	name     string
}

func newPlayer() *player {
	return &player{meter: audio.NewMeter(config.SmoothingFactor)}
}

func (p *player) loaded() bool { return p.streamer != nil }

// load stops whatever is playing and starts path from the beginning.
func (p *player) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return errors.New("unsupported file type: " + ext)
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	if !p.initDone {
		p.rate = format.SampleRate
		if err := speaker.Init(p.rate, p.rate.N(time.Second/20)); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	}
	p.stop()

	// Prepare audio chain: streamer -> tap -> ctrl, resampled to the speaker rate
	var src beep.Streamer = streamer
	if format.SampleRate != p.rate {
		src = beep.Resample(resampleQuality, format.SampleRate, p.rate, streamer)
	}
	t := audio.NewTap(src, config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: t}

	p.currentFile = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = t
	p.paused = false
	p.name = filepath.Base(path)
	p.ended.Store(false)
	p.meter.Reset()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		// runs on the speaker goroutine; cleanup happens in sync
		p.ended.Store(true)
	})))
	log.Printf("playing %s (%d Hz)", p.name, format.SampleRate)
	return nil
}

// sync releases a finished track. Called once per frame.
func (p *player) sync() {
	if p.ended.Load() && p.loaded() {
		log.Printf("finished %s", p.name)
		p.release()
	}
}

func (p *player) togglePause() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// level returns the smoothed loudness of what was just played.
func (p *player) level() float64 {
	if p.tap == nil || p.paused {
		return p.meter.Update(nil)
	}
	return p.meter.Update(p.tap.Snapshot(config.LevelWindow))
}

// progress returns the playback position and track length.
func (p *player) progress() (time.Duration, time.Duration) {
	if !p.loaded() {
		return 0, 0
	}
	speaker.Lock()
	pos, n := p.streamer.Position(), p.streamer.Len()
	speaker.Unlock()
	return p.format.SampleRate.D(pos), p.format.SampleRate.D(n)
}

func (p *player) stop() {
	if p.initDone {
		speaker.Clear()
	}
	p.release()
}

func (p *player) release() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.currentFile != nil {
		_ = p.currentFile.Close()
		p.currentFile = nil
	}
	p.ctrl = nil
	p.tap = nil
	p.name = ""
}

func (p *player) close() {
	p.stop()
	if p.initDone {
		speaker.Close()
		p.initDone = false
	}
}
