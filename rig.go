package stagecraft

// CameraRig is a camera node attached somewhere in the scene graph, plus a
// human-readable description of what it shows.
type CameraRig struct {
	Node *Node
	Desc string
}

// CameraSet holds every rig of a demo and the index of the active one. Only
// the active rig is rendered; all rigs receive aspect updates on resize.
type CameraSet struct {
	rigs   []CameraRig
	active int
}

// Add registers a rig. The first rig added becomes active.
// Panics if node is not a camera.
func (s *CameraSet) Add(node *Node, desc string) {
	if node == nil || node.Camera == nil {
		panic("stagecraft: camera rig requires a camera node")
	}
	s.rigs = append(s.rigs, CameraRig{Node: node, Desc: desc})
}

// Len returns the number of rigs.
func (s *CameraSet) Len() int {
	return len(s.rigs)
}

// Select makes the rig at index i (modulo the rig count) active.
// No-op when the set is empty.
func (s *CameraSet) Select(i int) {
	if len(s.rigs) == 0 {
		return
	}
	i %= len(s.rigs)
	if i < 0 {
		i += len(s.rigs)
	}
	s.active = i
}

// ActiveIndex returns the index of the active rig.
func (s *CameraSet) ActiveIndex() int {
	return s.active
}

// Active returns the active rig. ok is false when the set is empty.
func (s *CameraSet) Active() (rig CameraRig, ok bool) {
	if len(s.rigs) == 0 {
		return CameraRig{}, false
	}
	return s.rigs[s.active], true
}

// Rigs returns every rig. The returned slice MUST NOT be mutated.
func (s *CameraSet) Rigs() []CameraRig {
	return s.rigs
}

// Cameras returns the projection state of every rig.
func (s *CameraSet) Cameras() []*PerspectiveCamera {
	out := make([]*PerspectiveCamera, len(s.rigs))
	for i, r := range s.rigs {
		out[i] = r.Node.Camera
	}
	return out
}
