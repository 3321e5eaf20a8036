package lmc

// TokenType classifies a lexical unit of LMC source.
type TokenType int

// Possible values of TokenType. None is returned when the lexer consumed input
// that should not be styled, such as whitespace or a line break.
const (
	None TokenType = iota
	Keyword
	Link
	Variable
	Number
	Comment
	IOKeyword
	Directive
)

var tokenTypeNames = [...]string{
	None:      "none",
	Keyword:   "keyword",
	Link:      "label-link",
	Variable:  "variable",
	Number:    "number",
	Comment:   "comment",
	IOKeyword: "io-keyword",
	Directive: "directive",
}

// Names used by browser-based editors for the token classes, as in
// "cm-keyword".
var cssClasses = [...]string{
	None:      "",
	Keyword:   "keyword",
	Link:      "link",
	Variable:  "variable",
	Number:    "number",
	Comment:   "comment",
	IOKeyword: "string",
	Directive: "def",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return "invalid"
	}
	return tokenTypeNames[t]
}

// CSSClass returns the editor style class for the token type, or "" for None
// and invalid values.
func (t TokenType) CSSClass() string {
	if t < 0 || int(t) >= len(cssClasses) {
		return ""
	}
	return cssClasses[t]
}

// TokenTypes returns all token types except None, in declaration order.
func TokenTypes() []TokenType {
	return []TokenType{Keyword, Link, Variable, Number, Comment, IOKeyword, Directive}
}

// ParseTokenType parses the output of TokenType.String. The second return
// value is false if the name is unknown.
func ParseTokenType(name string) (TokenType, bool) {
	for i, s := range tokenTypeNames {
		if s == name {
			return TokenType(i), true
		}
	}
	return None, false
}
