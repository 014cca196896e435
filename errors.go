package refpeg

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNoMatch is the cause of a SyntaxError when the rule did not match.
	ErrNoMatch = errors.New("no match")

	// ErrInputNotConsumed is the cause of a SyntaxError when the rule
	// matched but left input behind.
	ErrInputNotConsumed = errors.New("full input not consumed")
)

// SyntaxError is returned by Parse when the input could not be matched.
// The message lists every terminal that could have been accepted at the
// furthest offset any terminal was tried.
type SyntaxError struct {
	Input  string
	Offset int

	// Line and Column are 1-based. Column counts runes.
	Line   int
	Column int

	Expected []Expectation
	Cause    error
}

func (e *SyntaxError) Error() string {
	return FormatError(e.Input, e.Offset, e.Expected)
}

func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

const gutterWidth = 6

// FormatError renders a multi-line description of a failure at offset:
//
//	Line 1: expected one of:
//
//	    - [0-9] from digit
//
//	     1 | Section x
//	                 ^
func FormatError(input string, offset int, expected []Expectation) string {
	lineNo, line, col := locate(input, offset)

	var sb strings.Builder

	fmt.Fprintf(&sb, "Line %d: expected one of:\n\n", lineNo)

	for _, e := range expected {
		fmt.Fprintf(&sb, "    - %s from %s\n", e.Expected, e.Rule)
	}

	number := fmt.Sprintf("%*d", gutterWidth, lineNo)

	fmt.Fprintf(&sb, "\n%s | %s\n", number, line)
	sb.WriteString(strings.Repeat(" ", len(number)+len(" | ")+utf8.RuneCountInString(line[:col])))
	sb.WriteByte('^')

	return sb.String()
}

// locate walks the lines of input until it passes offset, returning the
// 1-based line number, the text of that line, and the byte column of offset
// within it.
func locate(input string, offset int) (int, string, int) {
	lines := strings.Split(input, "\n")

	lineNo, pos := 0, 0
	for lineNo < len(lines) && pos <= offset {
		pos += len(lines[lineNo]) + 1
		lineNo++
	}

	line := lines[lineNo-1]
	lineStart := pos - len(line) - 1

	col := offset - lineStart
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}

	return lineNo, line, col
}

func lineCol(input string, offset int) (int, int) {
	lineNo, line, col := locate(input, offset)
	return lineNo, utf8.RuneCountInString(line[:col]) + 1
}
