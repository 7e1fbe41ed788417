package stagecraft

// Updatable is a per-frame callback receiving the elapsed time in seconds
// since the previous frame. It mutates scene state and returns nothing.
type Updatable func(dt float64)

// UpdateList is an insertion-ordered collection of updatables. There is no
// removal: once registered, an updatable runs every frame for the lifetime of
// the list.
type UpdateList struct {
	items []Updatable
}

// Add appends u. Panics if u is nil.
func (l *UpdateList) Add(u Updatable) {
	if u == nil {
		panic("stagecraft: cannot register nil updatable")
	}
	l.items = append(l.items, u)
}

// Len returns the number of registered updatables.
func (l *UpdateList) Len() int {
	return len(l.items)
}

// Run invokes every updatable with dt, in registration order. A panic in an
// updatable propagates to the caller.
func (l *UpdateList) Run(dt float64) {
	for _, u := range l.items {
		u(dt)
	}
}
