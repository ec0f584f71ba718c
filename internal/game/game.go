package game

import (
	"image"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/lava-lamp/internal/config"
	"github.com/iburimskiy/lava-lamp/internal/lava"
	"github.com/iburimskiy/lava-lamp/internal/mailbox"
	"github.com/iburimskiy/lava-lamp/internal/scene"
)

const pendingSize = 8

// Game drives the lava lamp from ebiten's frame loop.
type Game struct {
	scene  *scene.Scene
	player *player
	frame  *ebiten.Image

	// viewport reported by Layout
	width, height int

	// pointer edge detection
	cursor      image.Point
	cursorMoved bool

	// dialog results waiting for the next frame
	dialogs *mailbox.Box[mutation]

	// panel state
	panelHidden bool
	format      config.ColorFormat
	lastErr     error
	preview     []color.RGBA
	previewFor  [2]config.RGB
	closeOnce   sync.Once
}

func New(cfg config.Config, width, height int, rnd lava.Rand) *Game {
	return &Game{
		scene:   scene.New(cfg, width, height, rnd),
		player:  newPlayer(),
		width:   width,
		height:  height,
		dialogs: mailbox.New[mutation](pendingSize),
	}
}

func (g *Game) Update() error {
	// Apply queued settings before touching the blobs
	g.dialogs.Drain(func(m mutation) { m(g) })
	g.player.sync()

	if g.scene.Resize(g.width, g.height) {
		log.Printf("viewport %dx%d", g.width, g.height)
	}

	g.updatePointer()
	if err := g.handleKeys(); err != nil {
		return err
	}

	g.scene.Step(g.player.level())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	img := g.scene.Image()
	b := img.Rect
	if b.Empty() {
		return
	}
	if g.frame == nil || g.frame.Bounds().Size() != b.Size() {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.frame.WritePixels(img.Pix)
	screen.DrawImage(g.frame, nil)

	if !g.panelHidden {
		g.drawPanel(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = max(outsideWidth, 1), max(outsideHeight, 1)
	return g.width, g.height
}

// Close stops dialogs and audio. Safe to call more than once.
func (g *Game) Close() {
	g.closeOnce.Do(func() {
		g.dialogs.Close()
		g.player.close()
		if g.frame != nil {
			g.frame.Deallocate()
		}
	})
}

func (g *Game) apply(cfg config.Config) {
	if g.scene.Apply(cfg) {
		c := g.scene.Config()
		log.Printf("respawned %d blobs at speed %d", c.BlobCount, c.Speed)
	}
}

// updatePointer stores the cursor once it has moved at least once, so a
// window that never saw the mouse does not repel blobs from the corner.
func (g *Game) updatePointer() {
	x, y := ebiten.CursorPosition()
	p := image.Pt(x, y)
	if p != g.cursor {
		g.cursor = p
		g.cursorMoved = true
	}
	if g.cursorMoved {
		g.scene.SetPointer(float64(x), float64(y))
	}
}

var actionKeys = []struct {
	key    ebiten.Key
	action scene.Action
	repeat bool
}{
	{ebiten.KeyArrowUp, scene.MoreBlobs, true},
	{ebiten.KeyArrowDown, scene.FewerBlobs, true},
	{ebiten.KeyArrowRight, scene.Faster, true},
	{ebiten.KeyArrowLeft, scene.Slower, true},
	{ebiten.KeyBracketRight, scene.Smoother, true},
	{ebiten.KeyBracketLeft, scene.Coarser, true},
	{ebiten.KeyEqual, scene.Stickier, true},
	{ebiten.KeyMinus, scene.LessSticky, true},
	{ebiten.KeyS, scene.ToggleScaling, false},
	{ebiten.KeyG, scene.ToggleAxis, false},
	{ebiten.KeyC, scene.NextColors, false},
	{ebiten.KeyR, scene.ResetDefaults, false},
}

func (g *Game) handleKeys() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	cfg := g.scene.Config()
	changed := false
	for _, ak := range actionKeys {
		pressed := inpututil.IsKeyJustPressed(ak.key)
		if ak.repeat {
			pressed = repeating(ak.key)
		}
		if pressed {
			cfg = ak.action.Apply(cfg)
			changed = true
		}
	}
	if changed {
		g.apply(cfg)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.panelHidden = !g.panelHidden
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.format = g.format.Next()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.player.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		g.pickColor("Gradient Start", cfg.GradientStart, func(c *config.Config, v config.RGB) { c.GradientStart = v })
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		g.pickColor("Gradient End", cfg.GradientEnd, func(c *config.Config, v config.RGB) { c.GradientEnd = v })
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.loadPresetDialog()
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		g.savePresetDialog()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.openAudioDialog()
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		g.lastErr = nil
	}
	return nil
}
