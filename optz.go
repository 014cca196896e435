package refpeg

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

type matchScan struct {
	basicRule
	fn func(str string) int
}

func (m *matchScan) match(s *state) result {
	loc := m.fn(s.cur())
	if loc < 0 || loc > len(s.cur()) {
		s.expected(m)
		return result{}
	}

	return s.consume(loc)
}

func (m *matchScan) print() string {
	return "<scan>"
}

// Scan is a manual optimization rule. It returns a Rule that calls
// the given function, passing the current input. The return value
// is how much of the input sequence to consume. If -1 is returned,
// the rule fails, otherwise the requested amount of input is consumed
// and the rule passes.
func Scan(fn func(str string) int) Rule {
	return &matchScan{
		fn: fn,
	}
}

// matchByte is a specialized form of matchString used to match
// just a single byte.
type matchByte struct {
	basicRule
	b byte
}

func (m *matchByte) match(s *state) result {
	if s.pos < s.inputSize && s.input[s.pos] == m.b {
		return s.consume(1)
	}

	s.expected(m)
	return result{}
}

func (m *matchByte) print() string {
	return strconv.Quote(string([]byte{m.b}))
}

type matchPrefixTable struct {
	basicRule
	keys  []byte
	rules map[byte]Rule
}

func (m *matchPrefixTable) match(s *state) result {
	if s.pos < s.inputSize {
		if r, ok := m.rules[s.input[s.pos]]; ok {
			return s.match(r)
		}
	}

	s.expected(m)
	return result{}
}

func (m *matchPrefixTable) leftmost() []Rule {
	var subs []Rule

	for _, k := range m.keys {
		subs = append(subs, m.rules[k])
	}

	return subs
}

func (m *matchPrefixTable) print() string {
	var subs []string

	for _, k := range m.keys {
		subs = append(subs, Print(m.rules[k]))
	}
	return strings.Join(subs, " | ")
}

// PrefixTable is a manual optimization rule. It is used to create a non-ordered
// choice to a set of a rules based on the next byte in the input sequence.
// The detection of the byte does not consume any input, which makes PrefixTable
// the equivalent of using Or(Seq(Check(rune), ...), ...).
// The arguments are alternating pairs of (byte|string, rule). If a string is passed,
// the string must be exactly one byte long.
func PrefixTable(entries ...interface{}) Rule {
	pt := &matchPrefixTable{rules: make(map[byte]Rule)}

	for i := 0; i < len(entries); i += 2 {
		var b byte
		switch sv := entries[i].(type) {
		case byte:
			b = sv
		case string:
			if len(sv) != 1 {
				panic("only accepts a one character string")
			}

			b = sv[0]
		default:
			panic("key must be byte or 1-char string")
		}

		if !slices.Contains(pt.keys, b) {
			pt.keys = append(pt.keys, b)
		}
		pt.rules[b] = entries[i+1].(Rule)
	}

	return pt
}

// matchNotByte is an automatic optimization rule. It's used when detected Not(S("x")), where
// x is anything.
type matchNotByte struct {
	basicRule
	b byte
}

func (m *matchNotByte) match(s *state) result {
	if s.pos < s.inputSize && s.input[s.pos] == m.b {
		s.expected(m)
		return result{}
	}

	return result{matched: true, node: &Node{Offset: s.pos}}
}

func (m *matchNotByte) print() string {
	return "!" + strconv.Quote(string([]byte{m.b}))
}
