// Package lmc implements a lexer for Little Man Computer assembly, suitable
// for syntax highlighting.
//
// The lexer classifies one token per call and keeps a tiny amount of state
// between calls, since the meaning of a bare word depends on the mnemonic
// right before it. It never fails: text it cannot classify is either treated
// as a comment or skipped one character at a time.
package lmc

import (
	"strings"
	"unicode"
)

// State is the lexer state carried between calls to Lexer.Token. At most one
// field is true at any time. The zero value is the start state.
type State struct {
	// The previous token was a branch mnemonic; the next word is a label
	// reference.
	PreviousLinkable bool
	// The previous token was a mnemonic that takes a memory cell; the next
	// word is a variable reference.
	PreviousVariable bool
	// The previous token was DAT; the next number is its value.
	PreviousDat bool
}

// StartState returns the state to use at the start of a document.
func StartState() State { return State{} }

type rule struct {
	// If non-nil, the rule only applies when when returns true. It is called
	// with the state as it was before the current call.
	when  func(prev State, s Stream) bool
	match Matcher
	// If non-nil, called after a successful match to derive the new state.
	set   func(st *State)
	token TokenType
}

// Lexer classifies LMC tokens. A Lexer has no mutable fields and can be shared;
// the mutable part lives in State.
type Lexer struct {
	rules []rule
}

// RulesVersion identifies the rule tables of New. It changes whenever a change
// to the tables can change the tokens of some input.
const RulesVersion = 1

// New returns a Lexer using the standard LMC keyword tables.
func New() *Lexer { return &Lexer{rules: defaultRules} }

var defaultRules = []rule{
	{match: Newline, token: None},
	{when: afterDat, match: Digits, token: Number},
	{match: OneOf(ioKeywords...), token: IOKeyword},
	{match: OneOf(arithmeticKeywords...), set: setVariable, token: Keyword},
	{match: OneOf(branchKeywords...), set: setLinkable, token: Keyword},
	{match: OneOf(variabledKeywords...), set: setVariable, token: Keyword},
	{match: OneOf(otherKeywords...), token: Keyword},
	{match: OneOf(DatDirective), set: setDat, token: Directive},
	{when: atIndentation, match: WordBefore(OneOf(DatDirective)), token: Variable},
	{when: afterVariable, match: Word, token: Variable},
	{when: atIndentation, match: WordBefore(OneOf(labelableKeywords...)), token: Link},
	{when: afterLinkable, match: Word, token: Link},
	{match: NonSpace, token: Comment},
}

func afterDat(prev State, _ Stream) bool      { return prev.PreviousDat }
func afterVariable(prev State, _ Stream) bool { return prev.PreviousVariable }
func afterLinkable(prev State, _ Stream) bool { return prev.PreviousLinkable }

// A word at the indentation column starts a statement.
func atIndentation(_ State, s Stream) bool { return s.Column() == s.Indentation() }

func setVariable(st *State) { st.PreviousVariable = true }
func setLinkable(st *State) { st.PreviousLinkable = true }
func setDat(st *State)      { st.PreviousDat = true }

// Token consumes the next lexical unit from s and returns its type, updating
// st. It returns None for line breaks and for characters no rule matches; in
// the latter case exactly one character is consumed. Comments extend to the
// end of the line. Whitespace after any other token is consumed as well.
//
// Token always advances s unless s is already at the end of the line.
func (lx *Lexer) Token(s Stream, st *State) TokenType {
	prev := *st
	*st = State{}

	if s.EOL() {
		return None
	}
	for i := range lx.rules {
		r := &lx.rules[i]
		if r.when != nil && !r.when(prev, s) {
			continue
		}
		if !s.Match(r.match) {
			continue
		}
		if r.set != nil {
			r.set(st)
		}
		switch r.token {
		case None:
		case Comment:
			s.SkipToEnd()
		default:
			s.EatSpace()
		}
		return r.token
	}
	s.Next()
	return None
}

// Tokenizer wraps the Token method. It is implemented by *Lexer.
type Tokenizer interface {
	Token(s Stream, st *State) TokenType
}

var _ Tokenizer = (*Lexer)(nil)

// Line tokenizes a whole line, calling f with the byte range and type of each
// token other than None. The range excludes trailing whitespace consumed with
// the token. It returns the state at the end of the line.
func Line(tk Tokenizer, line string, tabSize int, st State, f func(from, to int, t TokenType)) State {
	s := NewStringStreamTab(line, tabSize)
	for !s.EOL() {
		from := s.Pos()
		s.Start()
		t := tk.Token(s, &st)
		if t == None {
			continue
		}
		to := from + len(strings.TrimRightFunc(s.Current(), unicode.IsSpace))
		f(from, to, t)
	}
	return st
}
