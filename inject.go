package stagecraft

import "github.com/hajimehoshi/ebiten/v2"

// InjectKey queues a synthetic key press. Queued presses are delivered one
// per frame, in order, and are seen by KeyJustPressed exactly like a real
// press during that frame.
func (l *Loop) InjectKey(key ebiten.Key) {
	l.injectQueue = append(l.injectQueue, key)
}

// KeyJustPressed reports whether key went down this frame, either physically
// or through InjectKey.
func (l *Loop) KeyJustPressed(key ebiten.Key) bool {
	if l.injectedValid && l.injected == key {
		return true
	}
	if l.keySource == nil {
		return false
	}
	return l.keySource(key)
}

// advanceInjected moves the next queued key into the current frame.
func (l *Loop) advanceInjected() {
	l.injectedValid = false
	if len(l.injectQueue) == 0 {
		return
	}
	l.injected = l.injectQueue[0]
	l.injectedValid = true
	l.injectQueue = l.injectQueue[1:]
}
