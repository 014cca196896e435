package xref

import (
	"strings"
)

// Root is a whole cross-reference expression: one or more references
// joined by "and" or "or", optionally followed by "of" or "thereof".
type Root struct {
	References []*Reference `json:"references" yaml:"references"`

	// Connectors[i] joins References[i] and References[i+1].
	Connectors []string `json:"connectors,omitempty" yaml:"connectors,omitempty"`

	// Of is "of" or "thereof" when the expression ends with one.
	Of string `json:"of,omitempty" yaml:"of,omitempty"`

	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

func (r *Root) SetPosition(start, end int) {
	r.Start, r.End = start, end
}

// String renders the expression in canonical spacing.
func (r *Root) String() string {
	var sb strings.Builder

	for i, ref := range r.References {
		if i > 0 {
			sb.WriteString(" " + r.Connectors[i-1] + " ")
		}
		sb.WriteString(ref.String())
	}

	if r.Of != "" {
		sb.WriteString(" " + r.Of)
	}

	return sb.String()
}

// Reference is a single "Section <main_ref><sub_refs>" reference.
type Reference struct {
	MainRef string    `json:"main_ref" yaml:"main_ref"`
	SubRefs []*SubRef `json:"sub_refs" yaml:"sub_refs"`

	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

func (r *Reference) SetPosition(start, end int) {
	r.Start, r.End = start, end
}

func (r *Reference) String() string {
	var sb strings.Builder

	sb.WriteString("Section ")
	sb.WriteString(r.MainRef)

	for _, sub := range r.SubRefs {
		switch sub.Connector {
		case "":
		case ",":
			sb.WriteString(", ")
		default:
			sb.WriteString(" " + sub.Connector + " ")
		}
		sb.WriteString("(" + sub.Ref + ")")
	}

	return sb.String()
}

// Ranges returns the pairs of sub-references joined by "to".
func (r *Reference) Ranges() [][2]*SubRef {
	var out [][2]*SubRef

	for i := 1; i < len(r.SubRefs); i++ {
		if r.SubRefs[i].Connector == RangeConnector {
			out = append(out, [2]*SubRef{r.SubRefs[i-1], r.SubRefs[i]})
		}
	}

	return out
}

// RangeConnector is the Connector of a sub-reference ending a range.
const RangeConnector = "to"

// SubRef is one parenthesized sub-reference, such as the "a" in "(a)".
type SubRef struct {
	Ref string `json:"ref" yaml:"ref"`

	// Connector is what joins this sub-reference to the one before it:
	// "and", "or", ",", "to", or empty when they are simply adjacent. It is
	// always empty for the first sub-reference.
	Connector string `json:"connector,omitempty" yaml:"connector,omitempty"`

	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

func (s *SubRef) SetPosition(start, end int) {
	s.Start, s.End = start, end
}
