// Package matcher tracks typed input against the expected text.
package matcher

import "unicode"

// Status classifies a position of the expected text.
type Status uint8

// Per-position statuses. Positions at or past the cursor are untyped.
const (
	StatusUntyped Status = iota
	StatusCorrect
	StatusIncorrect
)

// Matcher compares keystrokes against an expected character sequence.
//
// The cursor always stays within [0, len(expected)] and statuses are defined
// exactly on [0, cursor). Out-of-range operations are no-ops rather than
// errors: holding backspace at the start or typing past the end is normal
// user input and must not fail.
type Matcher struct {
	expected []rune
	typed    []rune
	statuses []Status
	cursor   int
}

// New returns a matcher for the given expected character sequence.
func New(expected []rune) *Matcher {
	return &Matcher{
		expected: expected,
		typed:    make([]rune, len(expected)),
		statuses: make([]Status, len(expected)),
	}
}

// TypeRune records r at the cursor and advances it. Comparison is
// case-sensitive and codepoint-exact. Returns false when the text is
// exhausted and the keystroke was ignored.
func (m *Matcher) TypeRune(r rune) bool {
	if m.cursor >= len(m.expected) {
		return false
	}
	m.typed[m.cursor] = r
	if r == m.expected[m.cursor] {
		m.statuses[m.cursor] = StatusCorrect
	} else {
		m.statuses[m.cursor] = StatusIncorrect
	}
	m.cursor++
	return true
}

// DeleteRune steps the cursor back one position, clearing its status.
func (m *Matcher) DeleteRune() {
	if m.cursor == 0 {
		return
	}
	m.cursor--
	m.statuses[m.cursor] = StatusUntyped
	m.typed[m.cursor] = 0
}

// DeleteWord moves the cursor back to the start of the current word,
// clearing every traversed status. Any whitespace immediately before the
// cursor is consumed first, then the word before it, so the cursor lands on
// the character after the previous whitespace run (or at position 0).
func (m *Matcher) DeleteWord() {
	target := m.cursor
	for target > 0 && unicode.IsSpace(m.expected[target-1]) {
		target--
	}
	for target > 0 && !unicode.IsSpace(m.expected[target-1]) {
		target--
	}
	for m.cursor > target {
		m.DeleteRune()
	}
}

// Cursor returns the current cursor position.
func (m *Matcher) Cursor() int {
	return m.cursor
}

// Len returns the length of the expected text.
func (m *Matcher) Len() int {
	return len(m.expected)
}

// Done reports whether the whole expected text has been typed.
func (m *Matcher) Done() bool {
	return m.cursor == len(m.expected)
}

// StatusAt returns the status of position i.
func (m *Matcher) StatusAt(i int) Status {
	if i < 0 || i >= len(m.statuses) {
		return StatusUntyped
	}
	return m.statuses[i]
}

// TypedAt returns the character recorded at position i, or zero if untyped.
func (m *Matcher) TypedAt(i int) rune {
	if i < 0 || i >= m.cursor {
		return 0
	}
	return m.typed[i]
}

// CorrectCount returns the number of correctly typed positions.
func (m *Matcher) CorrectCount() int {
	count := 0
	for i := 0; i < m.cursor; i++ {
		if m.statuses[i] == StatusCorrect {
			count++
		}
	}
	return count
}
