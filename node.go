package refpeg

import (
	"fmt"
	"io"
)

// SetPositioner is an optional interface. When action values implement it,
// refpeg will call it with the span of input the value was built from.
type SetPositioner interface {
	SetPosition(start, end int)
}

// Node is the result of a successful match. Terminals have no children,
// sequences and repetitions have one child per element, and an ordered
// choice yields the node of whichever alternative matched.
//
// Nodes are never modified once a rule has returned them; memoized nodes
// are shared between every parent that consumed them.
type Node struct {
	// Rule is the name of the named rule that produced the node, if any.
	Rule string

	// Label is the slot name assigned with Named, if any.
	Label string

	Text     string
	Offset   int
	Children []*Node

	// Value is the result of an Action, Transform, or Capture wrapping the
	// rule. It is nil for plain structural nodes.
	Value interface{}
}

// End returns the offset just past the matched text.
func (n *Node) End() int {
	return n.Offset + len(n.Text)
}

// Empty reports whether the node matched zero characters, such as an
// optional rule that did not match.
func (n *Node) Empty() bool {
	return len(n.Text) == 0
}

// Get returns the i'th child, or nil if there is no such child.
func (n *Node) Get(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}

	return n.Children[i]
}

// Find returns the first direct child carrying the given label.
func (n *Node) Find(label string) *Node {
	return Find(n.Children, label)
}

// Find returns the first node in children carrying the given label. It is
// meant for ActionFuncs, which receive the children but not the node.
func Find(children []*Node, label string) *Node {
	for _, c := range children {
		if c.Label == label {
			return c
		}
	}

	return nil
}

// Walk calls fn on n and every node below it, depth first. If fn returns
// false the children of that node are skipped.
func (n *Node) Walk(fn func(n *Node) bool) {
	if !fn(n) {
		return
	}

	for _, c := range n.Children {
		c.Walk(fn)
	}
}

func (n *Node) relabel(rule, label string) *Node {
	cp := *n
	if rule != "" {
		cp.Rule = rule
	}
	if label != "" {
		cp.Label = label
	}
	return &cp
}

// PrintTree writes n and it's descendants to w, one node per line. Each
// line shows the node's rule (or "_" for anonymous nodes), it's label when
// it has one, and the text it matched.
func PrintTree(w io.Writer, n *Node) {
	printTree(w, n, "", "")
}

func printTree(w io.Writer, n *Node, ruledLine string, childRuledLinePrefix string) {
	if n == nil {
		return
	}

	kind := n.Rule
	if kind == "" {
		kind = "_"
	}
	if n.Label != "" && n.Label != n.Rule {
		kind = n.Label + ":" + kind
	}

	fmt.Fprintf(w, "%v%v %q\n", ruledLine, kind, n.Text)

	num := len(n.Children)
	for i, child := range n.Children {
		line, prefix := "├─ ", "│  "
		if i == num-1 {
			line, prefix = "└─ ", "   "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
