package stagecraft

// SizeSetter is the render target whose pixel buffer follows the display
// size. *Renderer implements it.
type SizeSetter interface {
	SetSize(width, height int)
}

// Resizer keeps a render target's buffer size and the cameras' aspect ratios
// in step with the displayed size. Resize is idempotent: calling it again with
// an unchanged size does nothing.
type Resizer struct {
	target  SizeSetter
	cameras []*PerspectiveCamera

	// PixelRatio scales layout sizes to buffer sizes (device scale factor).
	PixelRatio float64

	width, height int
	resizes       int
}

// NewResizer creates a Resizer for target that updates cameras on change.
func NewResizer(target SizeSetter, cameras ...*PerspectiveCamera) *Resizer {
	return &Resizer{target: target, cameras: cameras, PixelRatio: 1}
}

// AddCamera registers another camera whose aspect follows the buffer size.
func (r *Resizer) AddCamera(cam *PerspectiveCamera) {
	r.cameras = append(r.cameras, cam)
	if r.width > 0 && r.height > 0 {
		cam.Aspect = float64(r.width) / float64(r.height)
		cam.UpdateProjectionMatrix()
	}
}

// Resize compares the layout size (scaled by PixelRatio and truncated) with
// the last applied buffer size. If they differ it resizes the target, sets
// every camera's aspect and recomputes its projection. It reports whether any
// work was done. Non-positive sizes are ignored.
func (r *Resizer) Resize(layoutW, layoutH int) bool {
	ratio := r.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	w := int(float64(layoutW) * ratio)
	h := int(float64(layoutH) * ratio)
	if w <= 0 || h <= 0 {
		return false
	}
	if w == r.width && h == r.height {
		return false
	}
	r.width, r.height = w, h
	r.resizes++
	if r.target != nil {
		r.target.SetSize(w, h)
	}
	aspect := float64(w) / float64(h)
	for _, cam := range r.cameras {
		cam.Aspect = aspect
		cam.UpdateProjectionMatrix()
	}
	return true
}

// Size returns the last applied buffer size.
func (r *Resizer) Size() (width, height int) {
	return r.width, r.height
}

// Resizes returns how many times Resize has done work.
func (r *Resizer) Resizes() int {
	return r.resizes
}
