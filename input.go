package stagecraft

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Debug font cell size used to size the legend backdrop.
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

// --- Panel bindings ---

type panelToggle struct {
	key    ebiten.Key
	label  string
	target Toggle
}

type panelButton struct {
	key    ebiten.Key
	label  string
	action func()
}

// Panel is a keyboard-driven control panel. Each binding maps a key to a
// Toggle (flipped on press) or a button callback. Its legend is drawn as an
// overlay in the top-left corner.
type Panel struct {
	Title string
	// Hidden suppresses the legend; bindings still respond.
	Hidden bool
	// Backdrop fills the legend area when its alpha is non-zero.
	Backdrop Color

	toggles []panelToggle
	buttons []panelButton

	// justPressed reports key presses. Defaults to inpututil.IsKeyJustPressed.
	justPressed func(ebiten.Key) bool
}

// NewPanel creates an empty panel.
func NewPanel(title string) *Panel {
	return &Panel{Title: title, justPressed: inpututil.IsKeyJustPressed}
}

// AddToggle binds key to flipping t.
func (p *Panel) AddToggle(key ebiten.Key, label string, t Toggle) {
	if t == nil {
		panic("stagecraft: panel toggle is nil")
	}
	p.toggles = append(p.toggles, panelToggle{key: key, label: label, target: t})
}

// AddButton binds key to fn.
func (p *Panel) AddButton(key ebiten.Key, label string, fn func()) {
	if fn == nil {
		panic("stagecraft: panel button callback is nil")
	}
	p.buttons = append(p.buttons, panelButton{key: key, label: label, action: fn})
}

// Update polls the bound keys. Register it as an Updatable.
func (p *Panel) Update(float64) {
	for _, t := range p.toggles {
		if p.justPressed(t.key) {
			t.target.SetVisible(!t.target.Visible())
		}
	}
	for _, b := range p.buttons {
		if p.justPressed(b.key) {
			b.action()
		}
	}
}

// Legend returns the text drawn by Draw.
func (p *Panel) Legend() string {
	var sb strings.Builder
	if p.Title != "" {
		sb.WriteString(p.Title)
		sb.WriteByte('\n')
	}
	for _, t := range p.toggles {
		mark := " "
		if t.target.Visible() {
			mark = "x"
		}
		fmt.Fprintf(&sb, "[%s] %s: %s\n", mark, t.key, t.label)
	}
	for _, b := range p.buttons {
		fmt.Fprintf(&sb, "%s: %s\n", b.key, b.label)
	}
	return sb.String()
}

// Draw prints the legend onto screen.
func (p *Panel) Draw(screen *ebiten.Image) {
	if p.Hidden {
		return
	}
	legend := p.Legend()
	if p.Backdrop.A > 0 {
		lines := strings.Split(strings.TrimRight(legend, "\n"), "\n")
		width := 0
		for _, ln := range lines {
			width = max(width, len(ln))
		}
		vector.DrawFilledRect(screen, 4, 4,
			float32(width*debugGlyphW+8), float32(len(lines)*debugGlyphH+8),
			p.Backdrop.RGBA(), false)
	}
	ebitenutil.DebugPrintAt(screen, legend, 8, 8)
}

// --- FPS overlay ---

// FPSCounter prints the measured FPS and TPS in the top-right corner. The
// text refreshes about twice per second. A loop in debug mode runs one.
type FPSCounter struct {
	sinceRefresh float64
	text         string

	// rates reports FPS and TPS. Defaults to ebiten's measured rates.
	rates func() (fps, tps float64)
}

// NewFPSCounter creates a counter reading ebiten's measured rates.
func NewFPSCounter() *FPSCounter {
	return &FPSCounter{rates: ebitenRates}
}

func ebitenRates() (float64, float64) {
	return ebiten.ActualFPS(), ebiten.ActualTPS()
}

// Update accumulates time and refreshes the text. Register it as an
// Updatable.
func (f *FPSCounter) Update(dt float64) {
	f.sinceRefresh += dt
	if f.text != "" && f.sinceRefresh < 0.5 {
		return
	}
	f.sinceRefresh = 0
	rates := f.rates
	if rates == nil {
		rates = ebitenRates
	}
	fps, tps := rates()
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
}

// Text returns the last refreshed readout.
func (f *FPSCounter) Text() string {
	return f.text
}

// Draw prints the last measured rates.
func (f *FPSCounter) Draw(screen *ebiten.Image) {
	w := screen.Bounds().Dx()
	ebitenutil.DebugPrintAt(screen, f.text, w-100, 8)
}
