package xref

import (
	"strings"

	"github.com/lab47/refpeg"
)

// Actions is called as each action rule of the grammar matches. Every
// method receives the whole input, the span the rule matched, and the
// children of the rule's node; what it returns becomes the Value of that
// node, which is what the enclosing rule's action sees.
//
// The children of each rule are, by index:
//
//	Root:      reference, ((WS+ "and"|"or" WS+ reference))*, of?
//	Reference: "section", WS+, main_ref, WS*, sub_refs
//	MainRef:   digit, alpha_num_dot*
//	SubRefs:   sub_ref, ((range | WS+ "and"|"or" WS+ | (WS* ","?)*) sub_ref)*
//	Range:     WS+, "to", WS+
//	SubRef:    "(", alpha_num_dot, ")"
//
// Embed NopActions to implement only some of them.
type Actions interface {
	Root(input string, start, end int, children []*refpeg.Node) interface{}
	Reference(input string, start, end int, children []*refpeg.Node) interface{}
	MainRef(input string, start, end int, children []*refpeg.Node) interface{}
	SubRefs(input string, start, end int, children []*refpeg.Node) interface{}
	Range(input string, start, end int, children []*refpeg.Node) interface{}
	SubRef(input string, start, end int, children []*refpeg.Node) interface{}
}

// NopActions leaves every node as the parser built it.
type NopActions struct{}

func (NopActions) Root(string, int, int, []*refpeg.Node) interface{}      { return nil }
func (NopActions) Reference(string, int, int, []*refpeg.Node) interface{} { return nil }
func (NopActions) MainRef(string, int, int, []*refpeg.Node) interface{}   { return nil }
func (NopActions) SubRefs(string, int, int, []*refpeg.Node) interface{}   { return nil }
func (NopActions) Range(string, int, int, []*refpeg.Node) interface{}     { return nil }
func (NopActions) SubRef(string, int, int, []*refpeg.Node) interface{}    { return nil }

// Builder builds the reference AST: a *Root from root, a *Reference from
// each reference, and so on. It holds no state.
type Builder struct{}

var _ Actions = Builder{}

func (Builder) Root(input string, start, end int, children []*refpeg.Node) interface{} {
	root := &Root{
		References: []*Reference{children[0].Value.(*Reference)},
	}

	for _, el := range children[1].Children {
		root.Connectors = append(root.Connectors, el.Get(1).Text)
		root.References = append(root.References, el.Find("reference").Value.(*Reference))
	}

	if of := children[2]; !of.Empty() {
		root.Of = strings.TrimSpace(of.Text)
	}

	return root
}

func (Builder) Reference(input string, start, end int, children []*refpeg.Node) interface{} {
	return &Reference{
		MainRef: refpeg.Find(children, "main_ref").Value.(string),
		SubRefs: refpeg.Find(children, "sub_refs").Value.([]*SubRef),
	}
}

func (Builder) MainRef(input string, start, end int, children []*refpeg.Node) interface{} {
	return input[start:end]
}

func (Builder) SubRefs(input string, start, end int, children []*refpeg.Node) interface{} {
	subs := []*SubRef{children[0].Value.(*SubRef)}

	for _, el := range children[1].Children {
		// Sub-ref values are shared through the memo table, so the
		// connector goes on a copy.
		sub := *el.Get(1).Value.(*SubRef)
		sub.Connector = connector(el.Get(0))

		subs = append(subs, &sub)
	}

	return subs
}

func (Builder) Range(input string, start, end int, children []*refpeg.Node) interface{} {
	return RangeConnector
}

func (Builder) SubRef(input string, start, end int, children []*refpeg.Node) interface{} {
	return &SubRef{Ref: children[1].Text}
}

func connector(sep *refpeg.Node) string {
	if s, ok := sep.Value.(string); ok {
		return s
	}

	c := strings.TrimSpace(sep.Text)
	if strings.Contains(c, ",") {
		return ","
	}

	return c
}
