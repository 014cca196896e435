package xref

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lab47/refpeg"
	"github.com/stretchr/testify/require"
)

func subRefs(ref *Reference) (refs, connectors []string) {
	for _, s := range ref.SubRefs {
		refs = append(refs, s.Ref)
		connectors = append(connectors, s.Connector)
	}
	return refs, connectors
}

func syntaxError(t *testing.T, err error) *refpeg.SyntaxError {
	t.Helper()

	var se *refpeg.SyntaxError
	require.True(t, errors.As(err, &se), "expected a syntax error, got %v", err)

	return se
}

func TestParseReferences(t *testing.T) {
	t.Run("parses sub-references joined by a connector", func(t *testing.T) {
		r := require.New(t)

		root, err := ParseReferences("Section 3(1)(a) and (b)")
		r.NoError(err)

		r.Len(root.References, 1)
		r.Empty(root.Connectors)
		r.Empty(root.Of)

		ref := root.References[0]
		r.Equal("3", ref.MainRef)

		refs, conns := subRefs(ref)
		r.Equal([]string{"1", "a", "b"}, refs)
		r.Equal([]string{"", "", "and"}, conns)

		r.Equal(0, ref.Start)
		r.Equal(23, ref.End)
		r.Equal(9, ref.SubRefs[0].Start)
		r.Equal(12, ref.SubRefs[0].End)
		r.Equal(0, root.Start)
		r.Equal(23, root.End)
	})

	t.Run("rejects a range of main references", func(t *testing.T) {
		r := require.New(t)

		_, err := ParseReferences("Section 5 to 9")

		se := syntaxError(t, err)
		r.True(errors.Is(err, refpeg.ErrNoMatch))
		r.Equal(10, se.Offset)
		r.Equal([]refpeg.Expectation{
			{Rule: "WS", Expected: `[ \t]`},
			{Rule: "sub_ref", Expected: `"("`},
		}, se.Expected)
	})

	t.Run("accepts a trailing of or thereof", func(t *testing.T) {
		r := require.New(t)

		for in, of := range map[string]string{
			"Section 3(1) of":      "of",
			"Section 3(1) thereof": "thereof",
			"Section 3(1) of ":     "of",
			"Section 3(1)\tof":     "of",
		} {
			root, err := ParseReferences(in)
			r.NoError(err, "parsing << %s >>", in)
			r.Equal(of, root.Of)
			r.Equal("Section 3(1) "+of, root.String())
		}
	})

	t.Run("requires whitespace after the keyword", func(t *testing.T) {
		r := require.New(t)

		_, err := ParseReferences("Section")

		se := syntaxError(t, err)
		r.Equal(7, se.Offset)
		r.Equal(1, se.Line)
		r.Equal(8, se.Column)
		r.Equal([]refpeg.Expectation{{Rule: "WS", Expected: `[ \t]`}}, se.Expected)

		_, err = ParseReferences("Section ")

		se = syntaxError(t, err)
		r.Equal(8, se.Offset)
		r.Equal([]refpeg.Expectation{
			{Rule: "WS", Expected: `[ \t]`},
			{Rule: "digit", Expected: "[0-9]"},
		}, se.Expected)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		r := require.New(t)

		_, err := ParseReferences("")

		se := syntaxError(t, err)
		r.Equal(0, se.Offset)
		r.Equal([]refpeg.Expectation{{Rule: "reference", Expected: `"section"`}}, se.Expected)
	})

	t.Run("parses references joined by a connector", func(t *testing.T) {
		r := require.New(t)

		root, err := ParseReferences("Section 3(1) and Section 4(2)")
		r.NoError(err)

		r.Len(root.References, 2)
		r.Equal([]string{"and"}, root.Connectors)

		r.Equal("3", root.References[0].MainRef)
		r.Equal("4", root.References[1].MainRef)

		refs, _ := subRefs(root.References[1])
		r.Equal([]string{"2"}, refs)

		r.Equal(17, root.References[1].Start)
	})

	t.Run("whitespace is interchangeable", func(t *testing.T) {
		r := require.New(t)

		for _, in := range []string{
			"Section 3(1) and (b)",
			"Section  3(1)  and  (b)",
			"Section\t3(1)\tand\t(b)",
			"Section 3 (1) and (b)",
		} {
			root, err := ParseReferences(in)
			r.NoError(err, "parsing << %s >>", in)
			r.Equal("Section 3(1) and (b)", root.String())
		}
	})

	t.Run("ignores case in the keyword", func(t *testing.T) {
		r := require.New(t)

		for _, in := range []string{"SECTION 3(1)", "section 3(1)", "sEcTiOn 3(1)"} {
			root, err := ParseReferences(in)
			r.NoError(err, "parsing << %s >>", in)
			r.Equal("3", root.References[0].MainRef)
		}
	})

	t.Run("keeps letters and dots in the main reference", func(t *testing.T) {
		r := require.New(t)

		root, err := ParseReferences("Section 3A.1-b(c)")
		r.NoError(err)
		r.Equal("3A.1-b", root.References[0].MainRef)
	})

	t.Run("parses ranges of sub-references", func(t *testing.T) {
		r := require.New(t)

		root, err := ParseReferences("Section 3(a) to (c)")
		r.NoError(err)

		ref := root.References[0]

		_, conns := subRefs(ref)
		r.Equal([]string{"", RangeConnector}, conns)

		ranges := ref.Ranges()
		r.Len(ranges, 1)
		r.Equal("a", ranges[0][0].Ref)
		r.Equal("c", ranges[0][1].Ref)

		r.Equal("Section 3(a) to (c)", root.String())
	})

	t.Run("parses comma separated sub-references", func(t *testing.T) {
		r := require.New(t)

		root, err := ParseReferences("Section 3(a), (b) or (c)")
		r.NoError(err)

		refs, conns := subRefs(root.References[0])
		r.Equal([]string{"a", "b", "c"}, refs)
		r.Equal([]string{"", ",", "or"}, conns)

		r.Equal("Section 3(a), (b) or (c)", root.String())
	})

	t.Run("only accepts single character sub-references", func(t *testing.T) {
		r := require.New(t)

		_, err := ParseReferences("Section 12(12)")

		se := syntaxError(t, err)
		r.Equal(12, se.Offset)
		r.Equal([]refpeg.Expectation{{Rule: "sub_ref", Expected: `")"`}}, se.Expected)
	})

	t.Run("requires at least one sub-reference", func(t *testing.T) {
		r := require.New(t)

		_, err := ParseReferences("Section 3")

		se := syntaxError(t, err)
		r.Equal(9, se.Offset)
		r.Contains(se.Expected, refpeg.Expectation{Rule: "sub_ref", Expected: `"("`})
	})

	t.Run("rejects trailing input", func(t *testing.T) {
		r := require.New(t)

		_, err := ParseReferences("Section 3(1) foo")

		se := syntaxError(t, err)
		r.True(errors.Is(err, refpeg.ErrInputNotConsumed))
		r.Equal(13, se.Offset)
	})
}

var corpus = []string{
	"Section 3(1)(a) and (b)",
	"Section 5 to 9",
	"Section 3(1) of",
	"Section",
	"Section ",
	"",
	"Section 3(1) and Section 4(2)",
	"Section 3(1) and Section 4(2) thereof",
	"Section 3(a), (b) or (c)",
	"Section 3(a) to (c)",
	"Section 12(12)",
	"Section 3(1) foo",
	"section  7B(x)\t(y)  or  Section 8(z) of",
}

func TestParseIsDeterministic(t *testing.T) {
	r := require.New(t)

	for _, in := range corpus {
		a, errA := ParseReferences(in)
		b, errB := ParseReferences(in)

		r.Empty(cmp.Diff(a, b), "parsing << %s >>", in)

		if errA != nil {
			r.Equal(errA.Error(), errB.Error())
		} else {
			r.NoError(errB)
		}
	}
}

func TestMemoIsTransparent(t *testing.T) {
	t.Run("produces the same tree with and without memoization", func(t *testing.T) {
		r := require.New(t)

		g := NewGrammar(nil)

		for _, in := range corpus {
			on, errOn := g.ParseNode(in)
			off, errOff := g.ParseNode(in, refpeg.WithMemo(false))

			r.Empty(cmp.Diff(on, off), "parsing << %s >>", in)

			if errOn != nil {
				a, b := syntaxError(t, errOn), syntaxError(t, errOff)

				r.Equal(a.Offset, b.Offset)
				r.Empty(cmp.Diff(a.Expected, b.Expected), "parsing << %s >>", in)
				r.Equal(a.Error(), b.Error())
				r.True(errors.Is(errOff, a.Cause))
			} else {
				r.NoError(errOff)
			}
		}
	})

	t.Run("produces the same references with and without memoization", func(t *testing.T) {
		r := require.New(t)

		for _, in := range corpus {
			on, _ := ParseReferences(in)
			off, _ := ParseReferences(in, refpeg.WithMemo(false))

			r.Empty(cmp.Diff(on, off), "parsing << %s >>", in)
		}
	})

	t.Run("evaluates each rule at most once per offset", func(t *testing.T) {
		r := require.New(t)

		for _, in := range corpus {
			var st refpeg.Stats

			ParseReferences(in, refpeg.WithStats(&st))

			var evals int
			for _, n := range st.Evaluations {
				evals += n
			}

			r.Equal(st.MemoMisses, evals, "parsing << %s >>", in)
		}

		var on, off refpeg.Stats

		_, err := ParseReferences("Section 3(1) and Section 4(2)", refpeg.WithStats(&on))
		r.NoError(err)

		_, err = ParseReferences("Section 3(1) and Section 4(2)", refpeg.WithStats(&off), refpeg.WithMemo(false))
		r.NoError(err)

		r.Greater(on.MemoHits, 0)
		r.Less(on.Evaluations["WS"], off.Evaluations["WS"])
	})
}

type collector struct {
	NopActions
	refs []string
}

func (c *collector) SubRef(input string, start, end int, children []*refpeg.Node) interface{} {
	c.refs = append(c.refs, children[1].Text)
	return nil
}

func TestGrammar(t *testing.T) {
	t.Run("returns nodes without actions", func(t *testing.T) {
		r := require.New(t)

		v, err := Parse("Section 3(1)", NopActions{})
		r.NoError(err)

		n, ok := v.(*refpeg.Node)
		r.True(ok)

		r.Equal("root", n.Rule)

		ref := n.Find("reference")
		r.NotNil(ref)
		r.Equal("reference", ref.Rule)
		r.Equal("3", ref.Find("main_ref").Text)
		r.Equal("(1)", ref.Find("sub_refs").Text)
	})

	t.Run("calls custom actions", func(t *testing.T) {
		r := require.New(t)

		c := &collector{}

		_, err := Parse("Section 3(1)(a) or (b)", c)
		r.NoError(err)

		r.Equal([]string{"1", "a", "b"}, c.refs)
	})

	t.Run("lists it's rules", func(t *testing.T) {
		r := require.New(t)

		var names []string
		for _, rule := range NewGrammar(nil).Rules() {
			names = append(names, rule.Name())
		}

		r.Equal([]string{
			"root", "reference", "main_ref", "sub_refs", "range", "sub_ref", "of",
			"digit", "alpha_num_dot", "WS",
		}, names)

		r.Equal("root", NewGrammar(nil).Root().Name())
	})

	t.Run("describes rules", func(t *testing.T) {
		r := require.New(t)

		rules := NewGrammar(nil).Rules()

		r.Equal(`"(" alpha_num_dot ")"`, refpeg.Repr(rules[5]))
		r.Equal("digit alpha_num_dot*", refpeg.Repr(rules[2]))
		r.Equal(`WS+ "to" WS+`, refpeg.Repr(rules[4]))
	})
}

func BenchmarkParseReferences(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ParseReferences("Section 3(1)(a) and (b) and Section 4(2), (c) to (d) thereof")
	}
}
