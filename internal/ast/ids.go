package ast

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// AssignIDs stamps every node reachable from program with a stable NodeID.
// The recipe mirrors a content hash rather than a counter: hash(file |
// span.start | span.end | kind | child-path), so the same tree built twice
// (e.g. once by the parser, once by re-decoding JSON) gets identical IDs —
// which the repair generator's expected_delta back-references depend on.
func AssignIDs(program *Program) {
	Walk(program, func(n Node, childPath []int) {
		n.setID(computeNodeID(n, childPath))
	})
}

func computeNodeID(n Node, childPath []int) NodeID {
	sp := n.Span()
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%d:%d|%d:%d|%s|", sp.File, sp.Start.Line, sp.Start.Column, sp.End.Line, sp.End.Column, n.Kind())
	for _, idx := range childPath {
		fmt.Fprintf(&b, "%d.", idx)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return NodeID(hex.EncodeToString(sum[:])[:16])
}
