package grip

import (
	"fmt"
	"io"
	"os"
)

// logf writes one "[grip]" prefixed line to the scene's log output. Only
// active in debug mode.
func (s *Scene) logf(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(s.logOut, "[grip] "+format+"\n", args...)
}

// nodeLabel names a node for log lines.
func nodeLabel(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.Name != "" {
		return fmt.Sprintf("%s#%s", n.Tag, n.Name)
	}
	return fmt.Sprintf("%s(%d)", n.Tag, n.ID)
}

// globalLogOut receives the tree warnings raised from node operations. It
// follows the log output of the Scene that last called SetDebugMode or
// SetLogOutput, the same way globalDebug follows the debug flag.
var globalLogOut io.Writer = os.Stderr

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("grip debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 64

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(globalLogOut, "[grip] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(globalLogOut, "[grip] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
