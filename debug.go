package mindpaper

import (
	"io"
	"log"
	"os"
)

// logger receives debug output. Only written to when an editor is in debug
// mode.
var logger = log.New(os.Stderr, "[mindpaper] ", log.Ltime|log.Lmicroseconds)

// SetLogOutput redirects debug output. Passing nil discards it.
func SetLogOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	logger.SetOutput(w)
}

func (e *Editor) debugf(format string, args ...any) {
	if !e.debug {
		return
	}
	logger.Printf(format, args...)
}

// debugMaxTreeDepth is the depth past which debug mode warns.
const debugMaxTreeDepth = 32

// debugMaxChildCount is the fan-out past which debug mode warns.
const debugMaxChildCount = 1000

// debugCheckTree validates t and warns about unusually deep or wide trees.
func debugCheckTree(t FlatTree) {
	if err := t.Validate(); err != nil {
		logger.Printf("warning: invalid tree: %v", err)
		return
	}
	children := make(map[NodeID]int, len(t.nodes))
	for _, n := range t.nodes {
		if n.HasParent {
			children[n.ParentID]++
		}
	}
	for _, n := range t.nodes {
		if c := children[n.ID]; c > debugMaxChildCount {
			logger.Printf("warning: node %d has %d children (threshold %d)", n.ID, c, debugMaxChildCount)
		}
		if depth := len(t.Ancestors(n.ID)) + 1; depth > debugMaxTreeDepth {
			logger.Printf("warning: tree depth %d exceeds %d (node %d)", depth, debugMaxTreeDepth, n.ID)
		}
	}
}
