package refpeg

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// Rule is the currency of refpeg. The parser provides the ability
// to match a Rule against an input string. Rules are created with
// the functions on refpeg, like refpeg.S() to match a literal
// string. Rules hold no per-parse state and may be shared freely.
type Rule interface {
	match(s *state) result
	print() string

	Name() string
	SetName(name string)
}

// leftCornered is implemented by composite rules. It returns the sub-rules
// that may be invoked at the rule's own starting offset.
type leftCornered interface {
	leftmost() []Rule
}

// result is what every evaluator returns. A failed match has matched
// false and a nil node; a zero-width success has a non-nil empty node.
type result struct {
	matched bool
	node    *Node
}

// These are the rules!

type basicRule struct {
	name string
}

func (b *basicRule) Name() string {
	return b.name
}

func (b *basicRule) SetName(name string) {
	b.name = name
}

// N sets the name of the given rule and returns it.
func N(name string, r Rule) Rule {
	r.SetName(name)
	return r
}

type matchAny struct {
	basicRule
}

func (m *matchAny) match(s *state) result {
	if s.pos >= s.inputSize {
		s.expected(m)
		return result{}
	}

	_, sz := s.peekRune()
	return s.consume(sz)
}

func (m *matchAny) print() string {
	return "."
}

// Any returns a rule that will match one rune from the input stream
// of any value. In other words, it only fails if there is no more input.
func Any() Rule {
	return &matchAny{}
}

type matchString struct {
	basicRule
	str string
}

func (m *matchString) match(s *state) result {
	if strings.HasPrefix(s.cur(), m.str) {
		return s.consume(len(m.str))
	}

	s.expected(m)
	return result{}
}

func (m *matchString) print() string {
	return strconv.Quote(m.str)
}

// S returns a Rule that will match a literal string exactly.
func S(str string) Rule {
	if len(str) == 1 {
		return &matchByte{b: str[0]}
	}

	return &matchString{str: str}
}

type matchStringFold struct {
	basicRule
	str string
}

func (m *matchStringFold) match(s *state) result {
	if sz, ok := foldPrefix(s.cur(), m.str); ok {
		return s.consume(sz)
	}

	s.expected(m)
	return result{}
}

// foldPrefix reports whether str starts with prefix under simple case
// folding, and how many bytes of str the match covers. The two can differ,
// "ſ" folds to "s".
func foldPrefix(str, prefix string) (int, bool) {
	n := 0

	for _, pr := range prefix {
		if n >= len(str) {
			return 0, false
		}

		rn, sz := runeAt(str, n)
		if !foldRune(rn, pr) {
			return 0, false
		}

		n += sz
	}

	return n, true
}

func foldRune(a, b rune) bool {
	if a == b {
		return true
	}

	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}

	return false
}

func (m *matchStringFold) print() string {
	return strconv.Quote(m.str)
}

// SI returns a Rule that will match a literal string, ignoring case. Runes
// are compared one at a time using Unicode simple case folding.
func SI(str string) Rule {
	return &matchStringFold{str: str}
}

type matchRegexp struct {
	basicRule
	re  *regexp.Regexp
	str string
}

func (m *matchRegexp) match(s *state) result {
	loc := m.re.FindStringIndex(s.cur())
	if loc == nil {
		s.expected(m)
		return result{}
	}

	return s.consume(loc[1])
}

func (m *matchRegexp) print() string {
	return "/" + m.str + "/"
}

// Re returns a Rule that will match a regexp at the current input
// position. This regexp can only match at the beginning of the input,
// it does not search the input for a match.
func Re(re string) Rule {
	return &matchRegexp{
		str: re,
		re:  regexp.MustCompile(`\A(?:` + re + `)`),
	}
}

type matchCharRange struct {
	basicRule
	start, end rune
}

func (m *matchCharRange) match(s *state) result {
	if s.pos < s.inputSize {
		rn, sz := s.peekRune()
		if rn >= m.start && rn <= m.end {
			return s.consume(sz)
		}
	}

	s.expected(m)
	return result{}
}

func (m *matchCharRange) print() string {
	return "[" + classRune(m.start) + "-" + classRune(m.end) + "]"
}

// Range returns a rule that will match the next rune in the input
// stream as being at least 'start', and at most 'end'. This corresponds
// with the regexp pattern `[A-Z]` but is much faster as it does not require
// any regexp tracking.
func Range(start, end rune) Rule {
	return &matchCharRange{
		start: start,
		end:   end,
	}
}

type matchCharSet struct {
	basicRule
	set []rune
}

func (m *matchCharSet) match(s *state) result {
	if s.pos < s.inputSize {
		rn, sz := s.peekRune()
		if slices.Contains(m.set, rn) {
			return s.consume(sz)
		}
	}

	s.expected(m)
	return result{}
}

func (m *matchCharSet) print() string {
	var sb strings.Builder

	sb.WriteByte('[')
	for _, r := range m.set {
		sb.WriteString(classRune(r))
	}
	sb.WriteByte(']')

	return sb.String()
}

// Set returns a rule that will match the next rune in the input
// stream as one of the given runes. This corresponds
// with the regexp pattern `[abc]`.
func Set(runes ...rune) Rule {
	return &matchCharSet{
		set: runes,
	}
}

type runeSpan struct {
	lo, hi rune
}

type matchClass struct {
	basicRule
	chars string
	spans []runeSpan
}

func (m *matchClass) match(s *state) result {
	if s.pos < s.inputSize {
		rn, sz := s.peekRune()
		for _, sp := range m.spans {
			if rn >= sp.lo && rn <= sp.hi {
				return s.consume(sz)
			}
		}
	}

	s.expected(m)
	return result{}
}

func (m *matchClass) print() string {
	var sb strings.Builder

	sb.WriteByte('[')
	for _, r := range m.chars {
		sb.WriteString(classRune(r))
	}
	sb.WriteByte(']')

	return sb.String()
}

// Class returns a rule matching one rune of a regexp style character
// class, written without the surrounding brackets. "a-zA-Z0-9.-" matches
// ASCII letters, digits, a dot, or a hyphen. A hyphen at either end of the
// class is taken literally. Negation is not supported.
func Class(chars string) Rule {
	rs := []rune(chars)

	var spans []runeSpan

	for i := 0; i < len(rs); i++ {
		if i+2 < len(rs) && rs[i+1] == '-' {
			if rs[i] > rs[i+2] {
				panic(fmt.Sprintf("invalid class range %c-%c", rs[i], rs[i+2]))
			}
			spans = append(spans, runeSpan{rs[i], rs[i+2]})
			i += 2
			continue
		}

		spans = append(spans, runeSpan{rs[i], rs[i]})
	}

	return &matchClass{chars: chars, spans: spans}
}

func classRune(r rune) string {
	switch r {
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\\', ']':
		return `\` + string(r)
	default:
		return string(r)
	}
}

type matchRunePredicate struct {
	basicRule
	fn func(r rune) bool
}

func (m *matchRunePredicate) match(s *state) result {
	if s.pos < s.inputSize {
		rn, sz := s.peekRune()
		if m.fn(rn) {
			return s.consume(sz)
		}
	}

	s.expected(m)
	return result{}
}

func (m *matchRunePredicate) print() string {
	return "<rune check>"
}

// Rune returns a rule that attempts to match the next rune in the
// input stream against a Go function. These are useful for utilizing
// existing logic to match rules (such as logic in the unicode package).
// Give the rule a name with N so syntax errors can describe it.
func Rune(fn func(rune) bool) Rule {
	return &matchRunePredicate{
		fn: fn,
	}
}

type matchOr struct {
	basicRule
	rules []Rule
}

func (m *matchOr) match(s *state) result {
	save := s.mark()

	for _, r := range m.rules {
		res := s.match(r)
		if res.matched {
			return res
		}

		s.restore(save)
	}

	return result{}
}

func (m *matchOr) leftmost() []Rule {
	return m.rules
}

func (m *matchOr) print() string {
	var subs []string

	for _, r := range m.rules {
		subs = append(subs, Print(r))
	}
	return strings.Join(subs, " | ")
}

// Or returns a Rule that will try each of the given rules, completing when
// the first one successfully matches. This corresponds with a PEG's "ordered
// choice" operation. Later alternatives are never consulted once an earlier
// one has matched, even if they would match more input.
//
// The node of the match is the node of the alternative that matched.
func Or(rules ...Rule) Rule {
	if len(rules) == 1 {
		return rules[0]
	}
	return &matchOr{rules: rules}
}

type matchSeq struct {
	basicRule
	rules []Rule
}

func (m *matchSeq) match(s *state) result {
	start := s.mark()

	children := make([]*Node, 0, len(m.rules))

	for _, r := range m.rules {
		res := s.match(r)
		if !res.matched {
			s.restore(start)
			return result{}
		}

		children = append(children, res.node)
	}

	return s.span(start, children)
}

// leftmost includes every rule up to the first that must consume input.
func (m *matchSeq) leftmost() []Rule {
	for i, r := range m.rules {
		if !nullable(r, map[Rule]struct{}{}) {
			return m.rules[:i+1]
		}
	}

	return m.rules
}

func (m *matchSeq) print() string {
	var subs []string

	for _, r := range m.rules {
		subs = append(subs, addParens(r))
	}
	return strings.Join(subs, " ")
}

// Seq returns a rule that will attempt to match each of the given rules
// in order. It only matches successfully if each of it's rules match.
//
// The node of the match has one child per rule, in order. A Seq of a
// single rule is that rule.
func Seq(rules ...Rule) Rule {
	if len(rules) == 1 {
		return rules[0]
	}
	return &matchSeq{rules: rules}
}

type matchMany struct {
	basicRule
	min, max int
	rule     Rule
}

var manyResultsPool = sync.Pool{
	New: func() interface{} {
		val := make([]*Node, 0, 10)
		return &val
	},
}

func (m *matchMany) match(s *state) result {
	pv := manyResultsPool.Get().(*[]*Node)
	defer manyResultsPool.Put(pv)

	results := (*pv)[:0]

	top := s.mark()

	for m.max == -1 || len(results) < m.max {
		mark := s.mark()

		res := s.match(m.rule)
		if !res.matched {
			s.restore(mark)
			break
		}

		results = append(results, res.node)

		// A zero width iteration would match forever at this offset.
		if s.pos == mark {
			break
		}
	}

	*pv = results

	if len(results) < m.min {
		s.restore(top)
		return result{}
	}

	if len(results) == 0 {
		return s.span(top, nil)
	}

	return s.span(top, slices.Clone(results))
}

func (m *matchMany) leftmost() []Rule {
	return []Rule{m.rule}
}

func (m *matchMany) print() string {
	if m.min == 0 && m.max == -1 {
		return addParens(m.rule) + "*"
	}
	if m.min == 1 && m.max == -1 {
		return addParens(m.rule) + "+"
	}

	return fmt.Sprintf("%s[%d,%d]", addParens(m.rule), m.min, m.max)
}

func addParens(r Rule) string {
	if r.Name() != "" {
		return r.Name()
	}

	switch r.(type) {
	case *matchOr, *matchSeq:
		return "(" + Print(r) + ")"
	default:
		return Print(r)
	}
}

// Star returns a rule that will attempt to match it's given rule
// as many times as possible. This rule always matches because it
// allows for zero matches. It corresponds to the star rule ("e*") in most
// PEGs.
//
// The node of the match has one child per iteration.
func Star(rule Rule) Rule {
	return &matchMany{rule: rule, min: 0, max: -1}
}

// Plus returns a rule that attempts to match it's given rule
// as many times as possible. The rule requires that the given
// rule match at least once. It corresponds to the plus rule ("e+") in
// most PEGs.
func Plus(rule Rule) Rule {
	return &matchMany{rule: rule, min: 1, max: -1}
}

// Many returns a rule that will attempt to match it's given rule
// at least `min` times, and at most `max` times. If max is -1, there is no
// maximum. Repetition stops early when an iteration matches without
// consuming input.
//
// This is a general purpose form of Star and Plus.
func Many(rule Rule, min, max int) Rule {
	return &matchMany{rule: rule, min: min, max: max}
}

type matchOptional struct {
	basicRule
	rule Rule
}

func (m *matchOptional) match(s *state) result {
	mark := s.mark()

	res := s.match(m.rule)
	if res.matched {
		return res
	}

	s.restore(mark)
	return s.span(mark, nil)
}

func (m *matchOptional) leftmost() []Rule {
	return []Rule{m.rule}
}

func (m *matchOptional) print() string {
	return addParens(m.rule) + "?"
}

// Maybe returns a rule that will allow it's rule to match, but
// will always return that it's successfully matched, regardless
// of what it's rule does. This corresponds with the question mark
// rule ("e?") in most PEGs.
//
// When the sub-rule does not match, the node is empty and sits at the
// offset where the attempt was made.
func Maybe(rule Rule) Rule {
	return &matchOptional{rule: rule}
}

type matchCheck struct {
	basicRule
	rule Rule
}

func (m *matchCheck) match(s *state) result {
	mark := s.mark()
	defer s.restore(mark)

	if res := s.match(m.rule); !res.matched {
		return res
	}

	return result{matched: true, node: &Node{Offset: mark}}
}

func (m *matchCheck) leftmost() []Rule {
	return []Rule{m.rule}
}

func (m *matchCheck) print() string {
	return "&" + addParens(m.rule)
}

// Check returns a rule that will attempt to match it's given rule
// and returns it's given rules match result, but it does not consume
// an input on the stream. This corresponds with the and-predicate ("&e") in
// most PEGs.
func Check(rule Rule) Rule {
	return &matchCheck{rule: rule}
}

type matchNot struct {
	basicRule
	rule Rule
}

func (m *matchNot) match(s *state) result {
	mark := s.mark()
	defer s.restore(mark)

	s.fail.silent++
	res := s.match(m.rule)
	s.fail.silent--

	if res.matched {
		s.restore(mark)
		s.expected(m)
		return result{}
	}

	return result{matched: true, node: &Node{Offset: mark}}
}

func (m *matchNot) leftmost() []Rule {
	return []Rule{m.rule}
}

func (m *matchNot) print() string {
	return "!" + addParens(m.rule)
}

// Not returns a rule that will attempt to match it's given rule.
// If the rule matches, it returns that it did not match (inverting
// the match result). Regardless of matching, it does not consume any
// input on the stream. This corresponds with the not-predicate ("!e") in
// most PEGs.
func Not(rule Rule) Rule {
	if mb, ok := rule.(*matchByte); ok && mb.name == "" {
		return &matchNotByte{b: mb.b}
	}
	return &matchNot{rule: rule}
}

// Ref is a type that provides a reference to a rule. This allows for creating
// recursive rule sets. Ref rules are memoized, meaning the
// result of the ref's rule and it's position in the stream are saved and
// returned to prevent constantly re-running the same rule on the same input.
// This is a key feature of Packrat parsing as it tames the time complexity
// of infinite backtracking to linear time.
type Ref interface {
	Rule

	// Set assigns the given rule to the ref. When the ref is matched as a rule,
	// it will delegate the matching to this rule. The rule will not be invoked
	// multiple times at the same input position as the Ref caches the result
	// of previous attempts. Thusly it's critical that the rule not depend on
	// state when calculating it's value.
	Set(r Rule)

	// Indicates if this reference has left recursive properties.
	LeftRecursive() bool
}

type matchRef struct {
	basicRule
	rule    Rule
	leftRec bool
}

func (r *matchRef) Set(rule Rule) {
	// Fail because this is almost always a programmer mistake
	// where they used the same name twice on accident.
	if r.rule != nil {
		panic(fmt.Sprintf("rule already set: %s", r.name))
	}

	r.rule = rule

	if rule == Rule(r) || detectLeftRec(rule, r, map[Rule]struct{}{}) {
		r.leftRec = true
		panic(fmt.Sprintf("left recursive rule: %s", r.name))
	}
}

func (r *matchRef) LeftRecursive() bool {
	return r.leftRec
}

func (m *matchRef) match(s *state) result {
	if m.rule == nil {
		panic(fmt.Sprintf("unset ref detected: %s", m.name))
	}

	if m.name != "" {
		s.names = append(s.names, m.name)
		defer func() {
			s.names = s.names[:len(s.names)-1]
		}()
	}

	pos := s.mark()

	if s.p.memo {
		if e, ok := s.memo.lookup(m, pos); ok {
			e.used++
			s.stats.MemoHits++
			s.restore(e.endPos)
			return e.result
		}
		s.stats.MemoMisses++
	}

	if m.name != "" {
		s.stats.Evaluations[m.name]++
	}

	res := s.match(m.rule)
	if res.matched {
		res.node = res.node.relabel(m.name, "")
	} else {
		s.restore(pos)
	}

	// Under a not-predicate failures go unrecorded, so the result can't
	// stand in for a later evaluation that would record them.
	if s.p.memo && s.fail.silent == 0 {
		s.memo.store(m, pos, res, s.mark())
	}

	return res
}

func (m *matchRef) leftmost() []Rule {
	if m.rule == nil {
		return nil
	}
	return []Rule{m.rule}
}

func (m *matchRef) print() string {
	if m.name == "" && m.rule != nil {
		return Print(m.rule)
	}
	return m.name
}

// detectLeftRec reports whether target can be reached from r without
// consuming input, following only the leftmost positions of composites.
func detectLeftRec(r Rule, target Rule, seen map[Rule]struct{}) bool {
	lc, ok := r.(leftCornered)
	if !ok {
		return false
	}

	for _, sub := range lc.leftmost() {
		if sub == target {
			return true
		}

		if _, ok := seen[sub]; ok {
			continue
		}
		seen[sub] = struct{}{}

		if detectLeftRec(sub, target, seen) {
			return true
		}
	}

	return false
}

// nullable reports whether r can match without consuming input. A ref
// already being visited counts as not nullable.
func nullable(r Rule, visiting map[Rule]struct{}) bool {
	switch m := r.(type) {
	case *matchOptional, *matchCheck, *matchNot, *matchNotByte, *matchEOS:
		return true
	case *matchString:
		return m.str == ""
	case *matchStringFold:
		return m.str == ""
	case *matchRegexp:
		return m.re.MatchString("")
	case *matchMany:
		return m.min == 0 || nullable(m.rule, visiting)
	case *matchSeq:
		for _, sub := range m.rules {
			if !nullable(sub, visiting) {
				return false
			}
		}
		return true
	case *matchOr:
		for _, sub := range m.rules {
			if nullable(sub, visiting) {
				return true
			}
		}
		return false
	case *matchPrefixTable:
		for _, sub := range m.leftmost() {
			if nullable(sub, visiting) {
				return true
			}
		}
		return false
	case *matchNamed:
		return nullable(m.rule, visiting)
	case *matchAction:
		return nullable(m.rule, visiting)
	case *matchTransform:
		return nullable(m.rule, visiting)
	case *matchRef:
		if m.rule == nil {
			return false
		}
		if _, ok := visiting[m]; ok {
			return false
		}

		visiting[m] = struct{}{}
		defer delete(visiting, m)

		return nullable(m.rule, visiting)
	default:
		return false
	}
}

// R returns a Ref type. These are used to create recursive rule sets where
// a rule is used before it's definition is created. The name of the ref is
// the rule name used in syntax errors for terminals it contains, and the
// Rule recorded on the nodes it produces.
//
// Left recursive definitions are not supported; Set panics on them.
func R(name string) Ref {
	return &matchRef{
		basicRule: basicRule{
			name: name,
		},
	}
}

// SetRef creates a named ref and assigns it's rule in one step.
func SetRef(name string, rule Rule) Ref {
	r := R(name)
	r.Set(rule)
	return r
}

// Memo creates a rule that perform memoization as part of matching.
// Unlike SetRef, the rule is anonymous and does not change the rule name
// reported for the terminals below it.
func Memo(rule Rule) Rule {
	r := R("")
	r.Set(rule)
	return r
}

type matchNamed struct {
	basicRule
	label string
	rule  Rule
}

func (m *matchNamed) match(s *state) result {
	res := s.match(m.rule)
	if res.matched {
		res.node = res.node.relabel("", m.label)
	}

	return res
}

func (m *matchNamed) leftmost() []Rule {
	return []Rule{m.rule}
}

func (m *matchNamed) print() string {
	return fmt.Sprintf("%s:%s", m.label, addParens(m.rule))
}

// Named labels the node produced by the given rule. Actions can then locate
// the child with Node.Find instead of relying on it's index.
func Named(label string, rule Rule) Rule {
	return &matchNamed{label: label, rule: rule}
}

// ActionFunc is called when the rule it wraps matches. It receives the
// whole input, the matched span, and the children of the matched node.
// The return value becomes the Value of the node.
type ActionFunc func(input string, start, end int, children []*Node) interface{}

type matchAction struct {
	basicRule
	rule Rule
	fn   ActionFunc
}

func (m *matchAction) match(s *state) result {
	pos := s.mark()

	res := s.match(m.rule)
	if !res.matched {
		s.restore(pos)
		return res
	}

	end := s.mark()

	val := m.fn(s.input, pos, end, res.node.Children)
	if sp, ok := val.(SetPositioner); ok {
		sp.SetPosition(pos, end)
	}

	n := *res.node
	n.Value = val

	return result{matched: true, node: &n}
}

func (m *matchAction) leftmost() []Rule {
	return []Rule{m.rule}
}

func (m *matchAction) print() string {
	return Print(m.rule)
}

// Action returns a rule that when it's given rule is matched, the given
// function is called. The return value of the function becomes the Value of
// the resulting node, which is what the parent of the rule sees.
func Action(r Rule, fn ActionFunc) Rule {
	return &matchAction{rule: r, fn: fn}
}

type matchTransform struct {
	basicRule
	rule Rule
	fn   func(str string) interface{}
}

func (m *matchTransform) match(s *state) result {
	pos := s.mark()

	res := s.match(m.rule)
	if !res.matched {
		s.restore(pos)
		return res
	}

	val := m.fn(res.node.Text)
	if sp, ok := val.(SetPositioner); ok {
		sp.SetPosition(pos, s.mark())
	}

	n := *res.node
	n.Value = val

	return result{matched: true, node: &n}
}

func (m *matchTransform) leftmost() []Rule {
	return []Rule{m.rule}
}

func (m *matchTransform) print() string {
	return Print(m.rule)
}

// Transform returns a Rule that invokes it's given rule and if it matches
// calls the given function, passing the section of the input stream that
// was matched. The return value becomes the Value of the node.
func Transform(r Rule, fn func(string) interface{}) Rule {
	return &matchTransform{rule: r, fn: fn}
}

// Capture returns a Rule whose node Value is the text it's given rule
// matched. Said another way, Capture pulls the matched text up as a value.
func Capture(r Rule) Rule {
	return Transform(r, func(str string) interface{} {
		return str
	})
}

type matchEOS struct {
	basicRule
}

func (m *matchEOS) match(s *state) result {
	if s.pos >= s.inputSize {
		return s.span(s.pos, nil)
	}

	s.expected(m)
	return result{}
}

func (m *matchEOS) print() string {
	return "<EOF>"
}

// EOS produces a rule that only matches when the input stream
// has been exhausted.
func EOS() Rule {
	return &matchEOS{}
}

// That's all the rules!

// Labels provides a simple database for named refs. This is used to cleanup rule
// set creation.
type Labels interface {
	// Ref creates or returns a Ref of the given name.
	Ref(name string) Rule

	// Set assigns the given rule to a Ref of the given name.
	Set(name string, rule Rule) Ref

	// Names returns the names of every ref, in the order they were first used.
	Names() []string

	// Lookup returns the ref of the given name, if it exists.
	Lookup(name string) (Ref, bool)
}

// Refs returns a Labels value.
func Refs() Labels {
	return &labels{
		refs: make(map[string]Ref),
	}
}

type labels struct {
	refs  map[string]Ref
	order []string
}

func (l *labels) get(name string) Ref {
	if ref, ok := l.refs[name]; ok {
		return ref
	}

	ref := R(name)

	l.refs[name] = ref
	l.order = append(l.order, name)

	return ref
}

func (l *labels) Ref(name string) Rule {
	return l.get(name)
}

func (l *labels) Set(name string, rule Rule) Ref {
	ref := l.get(name)
	ref.Set(rule)
	return ref
}

func (l *labels) Names() []string {
	return slices.Clone(l.order)
}

func (l *labels) Lookup(name string) (Ref, bool) {
	ref, ok := l.refs[name]
	return ref, ok
}

// Print outputs either the rules name (if it has one) or a description
// of it's operations.
func Print(n Rule) string {
	if n.Name() != "" {
		return n.Name()
	}

	return n.print()
}

// Repr outputs a description of the rules operations. For a named ref,
// that is the description of the rule it delegates to.
func Repr(n Rule) string {
	if ref, ok := n.(*matchRef); ok && ref.rule != nil {
		return ref.rule.print()
	}

	return n.print()
}

func runeAt(str string, pos int) (rune, int) {
	b := str[pos]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}

	return utf8.DecodeRuneInString(str[pos:])
}
