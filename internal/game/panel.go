package game

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/lava-lamp/internal/config"
	"github.com/iburimskiy/lava-lamp/internal/lava"
)

var (
	panelBackground = color.RGBA{R: 0x1A, G: 0x1F, B: 0x2C, A: 210}
	panelBorder     = color.RGBA{R: 60, G: 70, B: 90, A: 255}
	levelBackground = color.RGBA{R: 20, G: 25, B: 35, A: 200}
)

const (
	swatchSize = 12
	previewRow = 8
	// one palette entry per column of the preview strip
	previewSteps = config.PanelWidth - 2*config.PanelMargin
)

// drawPanel renders the settings overlay in the top-left corner.
func (g *Game) drawPanel(screen *ebiten.Image) {
	cfg := g.scene.Config()

	repulsion := "fixed"
	if cfg.ScaleRepulsion {
		repulsion = "scaled"
	}
	lines := []string{
		"LAVA LAMP  (H hides)",
		fmt.Sprintf("Blobs       %3d   Up/Down", cfg.BlobCount),
		fmt.Sprintf("Speed       %3d   Left/Right", cfg.Speed),
		fmt.Sprintf("Smoothness  %3d   [ ]  step %dpx", cfg.Smoothness, cfg.StepSize()),
		fmt.Sprintf("Stickiness  %3d   - =  %s (S)", cfg.Stickiness, repulsion),
		fmt.Sprintf("Gradient    %s (G)", cfg.Axis),
		"    Start " + config.FormatColor(cfg.GradientStart, g.format) + "  (1)",
		"    End   " + config.FormatColor(cfg.GradientEnd, g.format) + "  (2)",
		"",
		"C colors  F format  R reset",
		"L load  K save  O audio",
		fmt.Sprintf("%.0f fps  %d cells", ebiten.ActualFPS(), g.scene.Filled()),
	}
	if g.player.loaded() {
		pos, length := g.player.progress()
		state := "playing"
		if g.player.paused {
			state = "paused"
		}
		lines = append(lines, fmt.Sprintf("%s %s/%s (Space)", state, formatDuration(pos), formatDuration(length)))
	}
	if g.lastErr != nil {
		lines = append(lines, "Error: "+g.lastErr.Error())
	}

	h := len(lines)*config.PanelLine + 2*config.PanelMargin
	if g.player.loaded() {
		h += config.PanelLine
	}
	x, y := float32(config.PanelX), float32(config.PanelY)
	vector.DrawFilledRect(screen, x, y, config.PanelWidth, float32(h), panelBackground, false)
	vector.StrokeRect(screen, x, y, config.PanelWidth, float32(h), 1, panelBorder, false)

	tx := config.PanelX + config.PanelMargin
	ty := config.PanelY + config.PanelMargin
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, tx, ty+i*config.PanelLine)
	}

	// color swatches next to the start/end rows
	sx := float32(config.PanelX + config.PanelWidth - config.PanelMargin - swatchSize)
	for i, c := range []config.RGB{cfg.GradientStart, cfg.GradientEnd} {
		sy := float32(ty + (6+i)*config.PanelLine + 2)
		vector.DrawFilledRect(screen, sx, sy, swatchSize, swatchSize, c.Color(), false)
		vector.StrokeRect(screen, sx, sy, swatchSize, swatchSize, 1, panelBorder, false)
	}

	g.drawPreview(screen, tx, ty+previewRow*config.PanelLine+3, cfg)

	if g.player.loaded() {
		g.drawLevel(screen, tx, ty+len(lines)*config.PanelLine+4, cfg)
	}
}

// drawPreview shows the current gradient as a strip of one-pixel columns.
func (g *Game) drawPreview(screen *ebiten.Image, x, y int, cfg config.Config) {
	key := [2]config.RGB{cfg.GradientStart, cfg.GradientEnd}
	if g.preview == nil || g.previewFor != key {
		g.previewFor = key
		grad := lava.NewGradient(lava.AxisVertical, 1, 1, cfg.GradientStart.Color(), cfg.GradientEnd.Color())
		pal, err := grad.Palette(previewSteps)
		if err != nil {
			log.Printf("gradient preview: %v", err)
			pal = []color.RGBA{}
		}
		g.preview = pal
	}
	barH := float32(config.PanelLine - 6)
	for i, c := range g.preview {
		vector.DrawFilledRect(screen, float32(x+i), float32(y), 1, barH, c, false)
	}
	if len(g.preview) > 0 {
		vector.StrokeRect(screen, float32(x), float32(y), float32(len(g.preview)), barH, 1, panelBorder, false)
	}
}

// drawLevel shows the soundtrack loudness that drives the glow.
func (g *Game) drawLevel(screen *ebiten.Image, x, y int, cfg config.Config) {
	w := float32(config.PanelWidth - 2*config.PanelMargin)
	barH := float32(config.PanelLine - 6)
	vector.DrawFilledRect(screen, float32(x), float32(y), w, barH, levelBackground, false)

	level := float32(g.player.meter.Level())
	fill := cfg.GradientStart.NRGBA(220)
	vector.DrawFilledRect(screen, float32(x), float32(y), w*level, barH, fill, false)
	vector.StrokeRect(screen, float32(x), float32(y), w, barH, 1, panelBorder, false)
}
