package refpeg

import (
	"github.com/hashicorp/go-hclog"
	"golang.org/x/exp/slices"
)

// Parser is the interface for running a rule against some input. A Parser
// only holds configuration, so one value may be used by many goroutines at
// once (unless WithStats is set, see there).
type Parser struct {
	log     hclog.Logger
	partial bool
	debug   bool
	memo    bool
	stats   *Stats
}

type Option func(p *Parser)

// WithDebug logs every named rule being entered, matched or failed at
// trace level on the parser's logger.
func WithDebug(on bool) Option {
	return func(p *Parser) {
		p.debug = on
	}
}

func WithLogger(log hclog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// WithPartial allows the rule to match a prefix of the input instead of
// requiring the whole input be consumed.
func WithPartial(on bool) Option {
	return func(p *Parser) {
		p.partial = on
	}
}

// WithMemo controls memoization of named rules. It is on by default.
// Turning it off never changes what a parse produces, only how long it
// takes.
func WithMemo(on bool) Option {
	return func(p *Parser) {
		p.memo = on
	}
}

// WithStats copies the statistics of each parse into st. A Parser using it
// must not be shared between goroutines.
func WithStats(st *Stats) Option {
	return func(p *Parser) {
		p.stats = st
	}
}

// New creates a new Parser value
func New(opts ...Option) *Parser {
	p := &Parser{
		log:  hclog.L(),
		memo: true,
	}

	for _, o := range opts {
		o(p)
	}

	return p
}

func (p *Parser) parse(r Rule, input string) (*state, result) {
	s := p.newState(input)

	res := s.match(r)

	if p.stats != nil {
		s.stats.MaxPos = s.maxPos
		*p.stats = s.stats
	}

	return s, res
}

// ParseNode matches the given rule against the input string and returns
// the resulting node. Unless the parser is partial, the rule must consume
// the entire input. Any failure is reported as a *SyntaxError.
func (p *Parser) ParseNode(r Rule, input string) (*Node, error) {
	s, res := p.parse(r, input)

	if res.matched && (p.partial || s.pos == s.inputSize) {
		return res.node, nil
	}

	err := s.syntaxError(r, res.matched)

	p.log.Debug("parse failed",
		"rule", Print(r),
		"offset", err.Offset,
		"line", err.Line,
		"column", err.Column,
		"expected", len(err.Expected),
	)

	return nil, err
}

// Parse attempts to match the given rule against the input string. If
// the rule matches, the Value of the resulting node is returned, or the
// node itself if the rule produced no Value.
func (p *Parser) Parse(r Rule, input string) (interface{}, error) {
	n, err := p.ParseNode(r, input)
	if err != nil {
		return nil, err
	}

	if n.Value != nil {
		return n.Value, nil
	}

	return n, nil
}

func (s *state) syntaxError(r Rule, matched bool) *SyntaxError {
	cause := ErrNoMatch
	if matched {
		cause = ErrInputNotConsumed
	}

	offset := s.fail.pos
	expected := slices.Clone(s.fail.expected)

	// Nothing recorded, or the root stopped short of input past every
	// recorded failure. Report at the final offset.
	if len(expected) == 0 || (matched && s.pos > offset) {
		offset = s.pos
		expected = []Expectation{{Rule: Print(r), Expected: "<EOF>"}}
	}

	line, col := lineCol(s.input, offset)

	return &SyntaxError{
		Input:    s.input,
		Offset:   offset,
		Line:     line,
		Column:   col,
		Expected: expected,
		Cause:    cause,
	}
}
