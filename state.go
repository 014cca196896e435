package refpeg

import (
	"golang.org/x/exp/slices"
)

// Expectation is a terminal the grammar could have accepted at the offset
// where a parse failed, along with the named rule that tried it.
type Expectation struct {
	Rule     string
	Expected string
}

// failures tracks the furthest offset at which a terminal failed to match,
// and every terminal that failed there.
type failures struct {
	pos      int
	expected []Expectation

	// silent is non-zero while evaluating inside a not-predicate, where
	// a terminal failing is what lets the predicate succeed.
	silent int
}

func (f *failures) record(rule, desc string, pos int) {
	if f.silent > 0 || pos < f.pos {
		return
	}

	if pos > f.pos {
		f.pos = pos
		f.expected = f.expected[:0]
	}

	e := Expectation{Rule: rule, Expected: desc}
	if !slices.Contains(f.expected, e) {
		f.expected = append(f.expected, e)
	}
}

type memoResult struct {
	result
	endPos int
	used   int
}

// memoTable caches the result of each named rule per starting offset.
// Entries are never invalidated during a parse.
type memoTable struct {
	rules map[Rule]map[int]*memoResult
}

func (t *memoTable) lookup(r Rule, pos int) (*memoResult, bool) {
	if t.rules == nil {
		return nil, false
	}

	res, ok := t.rules[r][pos]
	return res, ok
}

func (t *memoTable) store(r Rule, pos int, res result, endPos int) {
	if t.rules == nil {
		t.rules = make(map[Rule]map[int]*memoResult)
	}

	m := t.rules[r]
	if m == nil {
		m = make(map[int]*memoResult)
		t.rules[r] = m
	}

	m[pos] = &memoResult{result: res, endPos: endPos}
}

// Stats reports what happened during a parse.
type Stats struct {
	MemoHits   int
	MemoMisses int

	// Evaluations counts how many times each named rule actually ran,
	// as opposed to being answered from the memo table.
	Evaluations map[string]int

	// MaxPos is the furthest offset any rule consumed input up to.
	MaxPos int
}

// state is everything that changes during a single parse. A new state is
// made for every call to Parse, so a Parser can be used concurrently.
type state struct {
	p         *Parser
	input     string
	inputSize int
	pos       int
	maxPos    int

	memo  memoTable
	fail  failures
	stats Stats

	// names is the stack of named rules currently being evaluated.
	names []string

	match func(r Rule) result
}

func (p *Parser) newState(input string) *state {
	s := &state{
		p:         p,
		input:     input,
		inputSize: len(input),
		stats: Stats{
			Evaluations: make(map[string]int),
		},
	}

	if p.debug {
		s.match = s.matchDebug
	} else {
		s.match = s.matchFast
	}

	return s
}

func (s *state) matchFast(r Rule) result {
	return r.match(s)
}

func (s *state) matchDebug(r Rule) result {
	n := r.Name()
	if n == "" {
		return r.match(s)
	}

	pos := s.pos

	s.p.log.Trace("enter rule", "rule", n, "pos", pos)

	res := r.match(s)

	if res.matched {
		s.p.log.Trace("rule matched", "rule", n, "start", pos, "end", s.pos, "text", res.node.Text)
	} else {
		s.p.log.Trace("rule failed", "rule", n, "pos", pos)
	}

	return res
}

func (s *state) cur() string {
	return s.input[s.pos:]
}

// slice returns input[a:b], clipped to the bounds of the input.
func (s *state) slice(a, b int) string {
	if a < 0 {
		a = 0
	}
	if b > s.inputSize {
		b = s.inputSize
	}
	if a >= b {
		return ""
	}
	return s.input[a:b]
}

func (s *state) peekRune() (rune, int) {
	return runeAt(s.input, s.pos)
}

func (s *state) mark() int {
	return s.pos
}

func (s *state) restore(p int) {
	s.pos = p
}

// consume advances over sz bytes and returns a terminal node for them.
func (s *state) consume(sz int) result {
	start := s.pos
	s.pos += sz

	if s.pos > s.maxPos {
		s.maxPos = s.pos
	}

	return result{
		matched: true,
		node: &Node{
			Text:   s.input[start:s.pos],
			Offset: start,
		},
	}
}

// span returns a successful result covering start up to the current
// offset.
func (s *state) span(start int, children []*Node) result {
	return result{
		matched: true,
		node: &Node{
			Text:     s.slice(start, s.pos),
			Offset:   start,
			Children: children,
		},
	}
}

func (s *state) ruleName() string {
	if len(s.names) == 0 {
		return "<root>"
	}
	return s.names[len(s.names)-1]
}

// expected records that the terminal r failed at the current offset.
func (s *state) expected(r Rule) {
	s.fail.record(s.ruleName(), Print(r), s.pos)
}
