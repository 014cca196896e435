package toolkit

import (
	p "github.com/lab47/refpeg"
)

var (
	// WS matches a single space or tab. Newlines are not inline whitespace.
	WS = p.SetRef("WS", p.Set(' ', '\t'))

	// Blank matches one or more WS.
	Blank = p.Plus(WS)

	// OptBlank matches any amount of WS, including none.
	OptBlank = p.Star(WS)
)
