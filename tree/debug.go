package tree

import (
	"hammock/utils/debug"
)

// longer character data is cut in dumps, code blocks may be huge
const dumpTextLimit = 256

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable dump of the subtree. It exists solely for
// debugging and debug reports.
func (n *Node) String() string {
	if n == nil {
		return "<nil Node>"
	}
	tw := treeWriter{debug.NewTreeWriter(debug.WithTextLimit(dumpTextLimit))}
	tw.node(0, n)
	return tw.TreeWriter.String()
}

func (tw treeWriter) node(depth int, n *Node) {
	tw.Line(depth, "<%s>", n.Tag)
	for _, a := range n.Attrs {
		tw.Line(depth+1, "@%s=%q", a.Key, a.Value)
	}
	if len(n.Text) > 0 {
		tw.TextBlock(depth+1, "Text", n.Text)
	}
	for _, child := range n.Children {
		tw.node(depth+1, child)
	}
	if len(n.Tail) > 0 {
		tw.TextBlock(depth, "Tail", n.Tail)
	}
}
