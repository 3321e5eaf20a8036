package lmc

import (
	"unicode"
	"unicode/utf8"
)

// Stream is a forward-only cursor over one line of text. It is the contract
// between the lexer and whatever holds the text.
type Stream interface {
	// Match attempts to match m at the cursor. On success, the matched text
	// is consumed and Match returns true; otherwise nothing is consumed.
	Match(m Matcher) bool
	// SkipToEnd moves the cursor to the end of the line.
	SkipToEnd()
	// EatSpace consumes whitespace at the cursor and reports whether any was
	// consumed.
	EatSpace() bool
	// Next consumes one character. The second return value is false at the
	// end of the line.
	Next() (rune, bool)
	// Column returns the visual column of the cursor, with tabs expanded.
	Column() int
	// Indentation returns the visual width of the leading whitespace of the
	// line, with tabs expanded.
	Indentation() int
	// EOL reports whether the cursor is at the end of the line.
	EOL() bool
	// Pos returns the byte offset of the cursor.
	Pos() int
}

// DefaultTabSize is the tab size used by NewStringStream.
const DefaultTabSize = 4

// StringStream implements Stream over a string.
type StringStream struct {
	line    string
	pos     int
	start   int
	tabSize int
}

var _ Stream = (*StringStream)(nil)

// NewStringStream returns a StringStream at the start of line, using
// DefaultTabSize.
func NewStringStream(line string) *StringStream {
	return NewStringStreamTab(line, DefaultTabSize)
}

// NewStringStreamTab is like NewStringStream, but uses the given tab size.
// Non-positive tab sizes are treated as 1.
func NewStringStreamTab(line string, tabSize int) *StringStream {
	if tabSize < 1 {
		tabSize = 1
	}
	return &StringStream{line: line, tabSize: tabSize}
}

func (s *StringStream) Match(m Matcher) bool {
	n := m(s.line[s.pos:])
	if n <= 0 {
		return false
	}
	s.pos += n
	return true
}

func (s *StringStream) SkipToEnd() { s.pos = len(s.line) }

func (s *StringStream) EatSpace() bool {
	start := s.pos
	for s.pos < len(s.line) {
		r, n := utf8.DecodeRuneInString(s.line[s.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		s.pos += n
	}
	return s.pos > start
}

func (s *StringStream) Next() (rune, bool) {
	if s.pos >= len(s.line) {
		return 0, false
	}
	r, n := utf8.DecodeRuneInString(s.line[s.pos:])
	s.pos += n
	return r, true
}

func (s *StringStream) Column() int { return countColumn(s.line[:s.pos], s.tabSize) }

func (s *StringStream) Indentation() int {
	end := 0
	for end < len(s.line) {
		r, n := utf8.DecodeRuneInString(s.line[end:])
		if !unicode.IsSpace(r) {
			break
		}
		end += n
	}
	return countColumn(s.line[:end], s.tabSize)
}

func (s *StringStream) EOL() bool { return s.pos >= len(s.line) }

func (s *StringStream) Pos() int { return s.pos }

// Start marks the cursor as the start of the next token.
func (s *StringStream) Start() { s.start = s.pos }

// Current returns the text between the last call to Start and the cursor.
func (s *StringStream) Current() string { return s.line[s.start:s.pos] }

func countColumn(s string, tabSize int) int {
	col := 0
	for _, r := range s {
		if r == '\t' {
			col += tabSize - col%tabSize
		} else {
			col++
		}
	}
	return col
}
