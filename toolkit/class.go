package toolkit

import (
	p "github.com/lab47/refpeg"
)

var (
	// Digit matches one ASCII digit.
	Digit = p.SetRef("digit", p.Range('0', '9'))

	// AlphaNumDot matches one ASCII letter, digit, dot, or hyphen: the
	// characters that make up a reference number such as "3A.1" or "12-b".
	AlphaNumDot = p.SetRef("alpha_num_dot", p.Class("a-zA-Z0-9.-"))
)

// Keyword returns a rule matching word in any letter case.
func Keyword(word string) Rule {
	return p.SI(word)
}
