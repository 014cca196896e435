package toolkit

import "github.com/lab47/refpeg"

type Rule = refpeg.Rule

// After returns a function that when called, returns a new rule
// that will match the rule passed to the function, then the
// rule passed to After.
// For example:
//    tk := After(OptBlank)
//    of = tk(S("of"))
// The rule of will match "of" on the input stream, then any
// spaces or tabs that follow it.
func After(after Rule) func(r Rule) Rule {
	return func(r Rule) Rule {
		return refpeg.Seq(r, after)
	}
}

// Padded matches r with at least one WS on both sides. The node has
// three children, r being the middle one.
func Padded(r Rule) Rule {
	return refpeg.Seq(Blank, r, Blank)
}

// OneOf is an ordered choice between literal words, tried in the order
// given.
func OneOf(words ...string) Rule {
	var rules []Rule

	for _, w := range words {
		rules = append(rules, refpeg.S(w))
	}

	return refpeg.Or(rules...)
}
