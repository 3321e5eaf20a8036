package lmc

import (
	"math/rand"
	"strings"
	"testing"

	"src.lmc.sh/pkg/tt"
)

var (
	It   = tt.It
	Args = tt.Args
)

type tok struct {
	Text string
	Type TokenType
}

// Tokenizes each line of code, carrying the state across lines.
func tokens(code string) []tok {
	var toks []tok
	lx := New()
	st := StartState()
	for _, line := range strings.Split(code, "\n") {
		st = Line(lx, line, DefaultTabSize, st, func(from, to int, t TokenType) {
			toks = append(toks, tok{line[from:to], t})
		})
	}
	return toks
}

func TestTokens(t *testing.T) {
	tt.Test(t, tokens,
		Args("").Rets([]tok(nil)),
		It("recognizes a label before a mnemonic").
			Args("LOOP STA COUNTER").Rets([]tok{
			{"LOOP", Link}, {"STA", Keyword}, {"COUNTER", Variable}}),
		It("recognizes an indented statement").
			Args("  ADD ONE").Rets([]tok{
			{"ADD", Keyword}, {"ONE", Variable}}),
		It("recognizes a variable declaration").
			Args("COUNTER DAT 5").Rets([]tok{
			{"COUNTER", Variable}, {"DAT", Directive}, {"5", Number}}),
		It("recognizes a bare I/O mnemonic").
			Args("OUT").Rets([]tok{{"OUT", IOKeyword}}),
		It("treats an unrecognized line as a comment").
			Args("; this is a comment").Rets([]tok{
			{"; this is a comment", Comment}}),
		It("recognizes a branch target").
			Args("BRA LOOP").Rets([]tok{{"BRA", Keyword}, {"LOOP", Link}}),
		It("carries state across lines").
			Args("BRZ\nEND").Rets([]tok{{"BRZ", Keyword}, {"END", Link}}),
		It("is case-insensitive").
			Args("loop lda one").Rets([]tok{
			{"loop", Link}, {"lda", Keyword}, {"one", Variable}}),
		It("recognizes all mnemonics").
			Args("INP\nOTC\nSUB X\nBRP Y\nSTO Z\nHLT").Rets([]tok{
			{"INP", IOKeyword}, {"OTC", IOKeyword},
			{"SUB", Keyword}, {"X", Variable},
			{"BRP", Keyword}, {"Y", Link},
			{"STO", Keyword}, {"Z", Variable},
			{"HLT", Keyword}}),
		It("matches mnemonics as prefixes").
			Args("OUTPUT").Rets([]tok{{"OUT", IOKeyword}, {"PUT", Comment}}),
		It("does not require whitespace before DAT").
			Args("FOODAT 1").Rets([]tok{
			{"FOO", Variable}, {"DAT", Directive}, {"1", Number}}),
		It("allows DAT without a value").
			Args("X DAT").Rets([]tok{{"X", Variable}, {"DAT", Directive}}),
		It("only treats digits as a number after DAT").
			Args("5").Rets([]tok{{"5", Comment}}),
		It("treats a non-numeric DAT operand as a comment").
			Args("DAT X").Rets([]tok{{"DAT", Directive}, {"X", Comment}}),
		It("treats extra operands as comments").
			Args("LDA X Y Z").Rets([]tok{
			{"LDA", Keyword}, {"X", Variable}, {"Y Z", Comment}}),
		It("treats a leading word without a mnemonic as a comment").
			Args("FOO BAR").Rets([]tok{{"FOO BAR", Comment}}),
		It("expands tabs when comparing the indentation").
			Args("\tLOOP LDA X").Rets([]tok{
			{"LOOP", Link}, {"LDA", Keyword}, {"X", Variable}}),
		It("treats a label on an indented line as a label").
			Args("\t BEGIN INP").Rets([]tok{{"BEGIN", Link}, {"INP", IOKeyword}}),
		It("prefers a mnemonic prefix over a label").
			Args("START INP").Rets([]tok{
			{"STA", Keyword}, {"RT", Variable}, {"INP", IOKeyword}}),
		It("loses the flag when skipping leading whitespace").
			Args("BRA\n  LOOP").Rets([]tok{{"BRA", Keyword}, {"LOOP", Comment}}),
		It("treats a trailing comment as a comment").
			Args("HLT // stop").Rets([]tok{{"HLT", Keyword}, {"// stop", Comment}}),
	)
}

func tokenAndState(line string, st State) (TokenType, string, State) {
	s := NewStringStream(line)
	tokType := New().Token(s, &st)
	return tokType, line[:s.Pos()], st
}

func TestToken(t *testing.T) {
	tt.Test(t, tokenAndState,
		Args("STA X", State{}).Rets(Keyword, "STA ", State{PreviousVariable: true}),
		Args("ADD X", State{}).Rets(Keyword, "ADD ", State{PreviousVariable: true}),
		Args("BRA X", State{}).Rets(Keyword, "BRA ", State{PreviousLinkable: true}),
		Args("DAT 1", State{}).Rets(Directive, "DAT ", State{PreviousDat: true}),
		Args("OUT", State{PreviousVariable: true}).Rets(IOKeyword, "OUT", State{}),
		Args("12 3", State{PreviousDat: true}).Rets(Number, "12 ", State{}),
		Args("X", State{PreviousLinkable: true}).Rets(Link, "X", State{}),
		Args("  X", State{PreviousVariable: true}).Rets(None, " ", State{}),
		Args("\nX", State{PreviousDat: true}).Rets(None, "\n", State{}),
		Args("", State{PreviousDat: true}).Rets(None, "", State{}),
		Args("?? !", State{}).Rets(Comment, "?? !", State{}),
	)
}

func TestToken_StreamWithLineBreaks(t *testing.T) {
	s := NewStringStream("OUT\nHLT")
	var st State
	lx := New()
	if got := lx.Token(s, &st); got != IOKeyword {
		t.Errorf("got %v, want %v", got, IOKeyword)
	}
	// Whitespace after a token, including the line break, is consumed.
	if s.Pos() != 4 {
		t.Errorf("got pos %d, want 4", s.Pos())
	}
	if got := lx.Token(s, &st); got != Keyword {
		t.Errorf("got %v, want %v", got, Keyword)
	}
}

var randomAlphabet = []string{
	"STA", "LDA", "BRA", "BRZ", "ADD", "SUB", "INP", "OUT", "HLT", "DAT",
	"sta", "dAt", "X", "loop", "1", "42", " ", "  ", "\t", "\n", ";", "//",
	"é", "\u00a0", "_", "\xff",
}

func randomLine(r *rand.Rand) string {
	var sb strings.Builder
	for n := r.Intn(12); n > 0; n-- {
		sb.WriteString(randomAlphabet[r.Intn(len(randomAlphabet))])
	}
	return sb.String()
}

func randomState(r *rand.Rand) State {
	switch r.Intn(4) {
	case 1:
		return State{PreviousLinkable: true}
	case 2:
		return State{PreviousVariable: true}
	case 3:
		return State{PreviousDat: true}
	}
	return State{}
}

func countFlags(st State) int {
	n := 0
	for _, b := range []bool{st.PreviousLinkable, st.PreviousVariable, st.PreviousDat} {
		if b {
			n++
		}
	}
	return n
}

func TestToken_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	lx := New()
	for i := 0; i < 2000; i++ {
		line := randomLine(r)
		st := randomState(r)
		s := NewStringStream(line)
		for !s.EOL() {
			before := s.Pos()
			stBefore := st

			tokType := lx.Token(s, &st)

			if s.Pos() <= before {
				t.Fatalf("no progress on %q at %d", line, before)
			}
			if n := countFlags(st); n > 1 {
				t.Fatalf("%d flags set after %q at %d", n, line, before)
			}
			// Replay from the same position and state.
			s2 := NewStringStream(line)
			if before > 0 {
				s2.Match(func(string) int { return before })
			}
			st2 := stBefore
			if tokType2 := lx.Token(s2, &st2); tokType2 != tokType || s2.Pos() != s.Pos() || st2 != st {
				t.Fatalf("nondeterministic result on %q at %d", line, before)
			}
		}
	}
}

func TestMnemonicGroupsAreDisjoint(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Mnemonics() {
		if seen[m.Name] {
			t.Errorf("%s appears in more than one group", m.Name)
		}
		seen[m.Name] = true
		if m.Doc == "" {
			t.Errorf("%s has no documentation", m.Name)
		}
	}
	if len(labelableKeywords) != len(seen)-1 {
		t.Errorf("got %d labelable keywords, want %d", len(labelableKeywords), len(seen)-1)
	}
}

func TestLookupMnemonic(t *testing.T) {
	tt.Test(t, LookupMnemonic,
		Args("bra").Rets(Mnemonic{"BRA", GroupBranch, mnemonicDocs["BRA"]}, true),
		Args("DAT").Rets(Mnemonic{"DAT", GroupDirective, mnemonicDocs["DAT"]}, true),
		Args("BRAX").Rets(Mnemonic{}, false),
		Args("").Rets(Mnemonic{}, false),
	)
}

func TestTokenType(t *testing.T) {
	for _, tokType := range append(TokenTypes(), None) {
		parsed, ok := ParseTokenType(tokType.String())
		if !ok || parsed != tokType {
			t.Errorf("ParseTokenType(%q) -> %v, %v", tokType.String(), parsed, ok)
		}
	}
	if s := TokenType(100).String(); s != "invalid" {
		t.Errorf("got %q for invalid token type", s)
	}
	tt.Test(t, TokenType.CSSClass,
		Args(IOKeyword).Rets("string"),
		Args(Directive).Rets("def"),
		Args(Link).Rets("link"),
		Args(None).Rets(""),
		Args(TokenType(-1)).Rets(""),
	)
}
