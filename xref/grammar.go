// Package xref parses legal cross-reference expressions such as
// "Section 3(1)(a) and (b)" or "Section 3(1) and Section 4(2) thereof".
package xref

import (
	"github.com/lab47/refpeg"
	"github.com/lab47/refpeg/toolkit"
)

var ruleOrder = []string{"root", "reference", "main_ref", "sub_refs", "range", "sub_ref", "of"}

// Grammar is the cross-reference grammar bound to one set of Actions. It
// holds no parse state and may be used concurrently.
type Grammar struct {
	root  refpeg.Rule
	rules []refpeg.Ref
}

// NewGrammar builds the grammar, calling actions as rules match. A nil
// actions is the same as NopActions.
func NewGrammar(actions Actions) *Grammar {
	if actions == nil {
		actions = NopActions{}
	}

	var (
		l    = refpeg.Refs()
		conn = toolkit.OneOf("and", "or")
	)

	root := l.Set("root", refpeg.Action(
		refpeg.Seq(
			refpeg.Named("reference", l.Ref("reference")),
			refpeg.Star(refpeg.Seq(
				toolkit.Blank,
				conn,
				toolkit.Blank,
				refpeg.Named("reference", l.Ref("reference")),
			)),
			refpeg.Maybe(l.Ref("of")),
		),
		actions.Root,
	))

	l.Set("reference", refpeg.Action(
		refpeg.Seq(
			toolkit.Keyword("section"),
			toolkit.Blank,
			refpeg.Named("main_ref", l.Ref("main_ref")),
			toolkit.OptBlank,
			refpeg.Named("sub_refs", l.Ref("sub_refs")),
		),
		actions.Reference,
	))

	l.Set("main_ref", refpeg.Action(
		refpeg.Seq(toolkit.Digit, refpeg.Star(toolkit.AlphaNumDot)),
		actions.MainRef,
	))

	l.Set("sub_refs", refpeg.Action(
		refpeg.Seq(
			l.Ref("sub_ref"),
			refpeg.Star(refpeg.Seq(
				refpeg.Or(
					l.Ref("range"),
					toolkit.Padded(conn),
					refpeg.Star(refpeg.Seq(toolkit.OptBlank, refpeg.Maybe(refpeg.S(",")))),
				),
				l.Ref("sub_ref"),
			)),
		),
		actions.SubRefs,
	))

	l.Set("range", refpeg.Action(toolkit.Padded(refpeg.S("to")), actions.Range))

	// A sub-reference is a single character in parentheses; "(12)" does
	// not match.
	l.Set("sub_ref", refpeg.Action(
		refpeg.Seq(refpeg.S("("), toolkit.AlphaNumDot, refpeg.S(")")),
		actions.SubRef,
	))

	// The whitespace after the word is optional so that an expression may
	// end with it.
	l.Set("of", toolkit.After(toolkit.OptBlank)(
		refpeg.Seq(toolkit.Blank, toolkit.OneOf("of", "thereof")),
	))

	g := &Grammar{root: root}

	for _, name := range ruleOrder {
		ref, _ := l.Lookup(name)
		g.rules = append(g.rules, ref)
	}

	g.rules = append(g.rules, toolkit.Digit, toolkit.AlphaNumDot, toolkit.WS)

	return g
}

// Root returns the rule every parse starts from.
func (g *Grammar) Root() refpeg.Rule {
	return g.root
}

// Rules returns every named rule of the grammar, root first.
func (g *Grammar) Rules() []refpeg.Ref {
	return g.rules
}

// Parse parses the whole of input. The result is the Value the root action
// returned, or the root *refpeg.Node when it returned nil. A failure is
// always a *refpeg.SyntaxError.
func (g *Grammar) Parse(input string, opts ...refpeg.Option) (interface{}, error) {
	return refpeg.New(opts...).Parse(g.root, input)
}

// ParseNode parses input and returns the node tree, with action values
// attached to the nodes of the rules that produced them.
func (g *Grammar) ParseNode(input string, opts ...refpeg.Option) (*refpeg.Node, error) {
	return refpeg.New(opts...).ParseNode(g.root, input)
}

// Parse parses input with the given actions. See Grammar.Parse.
func Parse(input string, actions Actions, opts ...refpeg.Option) (interface{}, error) {
	return NewGrammar(actions).Parse(input, opts...)
}

var references = NewGrammar(Builder{})

// ParseReferences parses input into the reference AST.
func ParseReferences(input string, opts ...refpeg.Option) (*Root, error) {
	v, err := references.Parse(input, opts...)
	if err != nil {
		return nil, err
	}

	return v.(*Root), nil
}
