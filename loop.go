package stagecraft

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
)

// debugLogInterval is how many frames pass between debug stat lines.
const debugLogInterval = 60

// Overlay draws on top of the rendered scene.
type Overlay interface {
	Draw(screen *ebiten.Image)
}

// Loop is one demo's frame loop. It owns the scene, the renderer, the camera
// rigs and the updatables, and implements ebiten.Game. All of its state is
// touched only from the loop goroutine.
type Loop struct {
	scene      *Scene
	renderer   *Renderer
	cameras    CameraSet
	resizer    *Resizer
	updatables UpdateList
	clock      *Clock
	pending    []*pendingLoad
	overlays   []Overlay
	panels     []*Panel

	theme Theme
	debug bool
	fps   *FPSCounter
	stats debugStats
	frame int
	err   error

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	screenshotQueue []string
	injectQueue     []ebiten.Key
	injected        ebiten.Key
	injectedValid   bool
	script          *ScriptRunner

	keySource   func(ebiten.Key) bool
	deviceScale func() float64
}

// NewLoop creates a loop drawing scene. The renderer starts at the default
// window size; the first Layout call resizes it.
func NewLoop(scene *Scene) *Loop {
	r := NewRenderer(DefaultWidth, DefaultHeight)
	return &Loop{
		scene:         scene,
		renderer:      r,
		resizer:       NewResizer(r),
		clock:         NewClock(),
		theme:         DefaultTheme,
		ScreenshotDir: "screenshots",
		keySource:     inpututil.IsKeyJustPressed,
		deviceScale:   monitorScale,
	}
}

func monitorScale() float64 {
	m := ebiten.Monitor()
	if m == nil {
		return 1
	}
	return m.DeviceScaleFactor()
}

// Scene returns the scene drawn by the loop.
func (l *Loop) Scene() *Scene {
	return l.scene
}

// Renderer returns the loop's renderer.
func (l *Loop) Renderer() *Renderer {
	return l.renderer
}

// Cameras returns the camera rigs.
func (l *Loop) Cameras() *CameraSet {
	return &l.cameras
}

// Resizer returns the viewport resizer.
func (l *Loop) Resizer() *Resizer {
	return l.resizer
}

// Updatables returns the per-frame callback list.
func (l *Loop) Updatables() *UpdateList {
	return &l.updatables
}

// AddCamera registers a camera rig. Its aspect follows the viewport.
func (l *Loop) AddCamera(node *Node, desc string) {
	l.cameras.Add(node, desc)
	l.resizer.AddCamera(node.Camera)
}

// AddUpdatable appends u to the per-frame callbacks.
func (l *Loop) AddUpdatable(u Updatable) {
	l.updatables.Add(u)
}

// AddOverlay appends o to the overlays drawn after the scene.
func (l *Loop) AddOverlay(o Overlay) {
	l.overlays = append(l.overlays, o)
}

// AddPanel wires p to the loop's keyboard state, registers its key polling
// as an updatable and its legend as an overlay.
func (l *Loop) AddPanel(p *Panel) {
	p.justPressed = l.KeyJustPressed
	p.Backdrop = panelBackdrop(l.theme)
	l.panels = append(l.panels, p)
	l.updatables.Add(p.Update)
	l.overlays = append(l.overlays, p)
}

// OnLoad runs fn on the loop goroutine during the first Step after f
// resolves. If f fails, the error is logged in debug mode and fn never runs.
func (l *Loop) OnLoad(f *Future[*Asset], fn func(*Asset)) {
	l.pending = append(l.pending, newPendingLoad(f, fn))
}

// Pending returns how many OnLoad callbacks are still waiting.
func (l *Loop) Pending() int {
	return len(l.pending)
}

// Step advances the loop by dt seconds: completed loads run their callbacks,
// then every updatable runs in registration order.
func (l *Loop) Step(dt float64) {
	if len(l.pending) > 0 {
		kept := l.pending[:0]
		for _, p := range l.pending {
			done, err := p.poll()
			if !done {
				kept = append(kept, p)
				continue
			}
			if err != nil {
				debugf("asset load failed: %v", err)
			}
		}
		for i := len(kept); i < len(l.pending); i++ {
			l.pending[i] = nil
		}
		l.pending = kept
	}
	l.updatables.Run(dt)
}

// Update implements ebiten.Game. It advances the script, measures the frame
// delta and calls Step.
func (l *Loop) Update() error {
	if l.err != nil {
		return l.err
	}
	if l.script != nil {
		if l.script.Done() {
			return ebiten.Termination
		}
		l.script.step(l)
	}
	l.advanceInjected()

	dt := l.clock.Delta()
	var start time.Time
	if l.debug {
		start = time.Now()
	}
	l.Step(dt)
	if l.debug {
		l.fps.Update(dt)
		l.stats.updateTime = time.Since(start)
		l.stats.updatables = l.updatables.Len()
	}
	return l.err
}

// Draw implements ebiten.Game. It renders the active rig, then the overlays.
func (l *Loop) Draw(screen *ebiten.Image) {
	var start time.Time
	if l.debug {
		start = time.Now()
	}

	var cam *Node
	rig, ok := l.cameras.Active()
	if ok {
		cam = rig.Node
	}
	l.renderer.Render(screen, l.scene, cam)
	for _, o := range l.overlays {
		o.Draw(screen)
	}
	if l.debug {
		l.fps.Draw(screen)
	}
	l.flushScreenshots(screen)

	if l.debug {
		l.stats.renderTime = time.Since(start)
		l.stats.triangles, l.stats.lines = l.renderer.Stats()
		l.stats.activeRig = rig.Desc
		if l.frame%debugLogInterval == 0 {
			debugLog(l.stats)
		}
	}
	l.frame++
}

// Layout implements ebiten.Game. The buffer is the layout size scaled by the
// monitor's device scale factor.
func (l *Loop) Layout(outsideWidth, outsideHeight int) (int, int) {
	l.resizer.PixelRatio = l.deviceScale()
	l.resizer.Resize(outsideWidth, outsideHeight)
	return l.renderer.Size()
}

// SetAttribute implements AttributeSetter. The theme attribute recolours the
// backdrop of every panel.
func (l *Loop) SetAttribute(name, value string) {
	if name != ThemeAttribute {
		debugf("ignoring attribute %s=%q", name, value)
		return
	}
	t, err := ParseTheme(value)
	if err != nil {
		debugf("set attribute: %v", err)
		return
	}
	l.theme = t
	for _, p := range l.panels {
		p.Backdrop = panelBackdrop(t)
	}
}

func panelBackdrop(t Theme) Color {
	c := Palette(t).Background
	c.A = 0.8
	return c
}

// Theme returns the last applied theme.
func (l *Loop) Theme() Theme {
	return l.theme
}

// SetDebugMode enables per-frame stats on stderr, the FPS readout and debug
// diagnostics.
func (l *Loop) SetDebugMode(enabled bool) {
	if enabled && l.fps == nil {
		l.fps = NewFPSCounter()
	}
	l.debug = enabled
	globalDebug.Store(enabled)
}

// Stop ends the loop cleanly after the current frame.
func (l *Loop) Stop() {
	if l.err == nil {
		l.err = ebiten.Termination
	}
}

// Fail ends the loop with err, which Run returns.
func (l *Loop) Fail(err error) {
	if l.err == nil && err != nil {
		l.err = err
	}
}

// Run opens a window configured by cfg and drives l until the window closes,
// Stop is called or a script finishes. A panic inside an updatable is not
// recovered.
func Run(l *Loop, cfg *RunConfig) error {
	if cfg == nil {
		cfg = DefaultRunConfig()
	}
	if l.cameras.Len() == 0 {
		return ErrNoCameras
	}
	l.SetDebugMode(cfg.Debug)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if err := ebiten.RunGame(l); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "run")
	}
	return nil
}
