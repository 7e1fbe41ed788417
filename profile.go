package stagecraft

import "time"

// FrameSample is the CPU cost of one headless frame.
type FrameSample struct {
	Update    time.Duration
	Collect   time.Duration
	Triangles int
	Lines     int
}

// Total is the combined update and collect time.
func (s FrameSample) Total() time.Duration {
	return s.Update + s.Collect
}

// Measure steps the loop by dt and projects the scene through the active rig
// without touching the GPU. With no rig only the update is timed.
func (l *Loop) Measure(dt float64) FrameSample {
	var s FrameSample
	start := time.Now()
	l.Step(dt)
	s.Update = time.Since(start)

	rig, ok := l.cameras.Active()
	if !ok {
		return s
	}
	start = time.Now()
	l.renderer.collect(l.scene, rig.Node)
	s.Collect = time.Since(start)
	s.Triangles, s.Lines = l.renderer.Stats()
	return s
}

// Profile measures frames consecutive frames at a fixed dt.
func (l *Loop) Profile(frames int, dt float64) []FrameSample {
	out := make([]FrameSample, 0, frames)
	for n := 0; n < frames; n++ {
		out = append(out, l.Measure(dt))
	}
	return out
}
