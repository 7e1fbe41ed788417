package stagecraft

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"
)

// globalDebug mirrors the most recently set Loop debug flag so that node
// operations (which lack a Loop pointer) can check it cheaply. Loader
// goroutines read it while the game goroutine may toggle it.
var globalDebug atomic.Bool

const debugMaxTreeDepth = 32

// debugStats holds per-frame timing and draw metrics.
// Only populated when the loop is in debug mode.
type debugStats struct {
	updateTime time.Duration
	renderTime time.Duration
	triangles  int
	lines      int
	updatables int
	activeRig  string
}

// debugLog prints timing and draw stats to stderr.
func debugLog(stats debugStats) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[stagecraft] update: %v | render: %v | updatables: %d\n",
		stats.updateTime, stats.renderTime, stats.updatables)
	_, _ = fmt.Fprintf(os.Stderr,
		"[stagecraft] triangles: %d | lines: %d | camera: %s\n",
		stats.triangles, stats.lines, stats.activeRig)
}

// debugf prints a single debug line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug.Load() {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[stagecraft] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("stagecraft debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns when a node sits deeper than debugMaxTreeDepth.
func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr,
			"[stagecraft] warning: node %q is %d levels deep\n", n.Name, depth)
	}
}

// debugLogError reports a non-fatal failure to stderr regardless of debug
// mode.
func debugLogError(op string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "[stagecraft] %s: %v\n", op, err)
}
