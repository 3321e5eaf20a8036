package lmc

import (
	"unicode"
	"unicode/utf8"
)

// Matcher reports the length in bytes of the text it matches at the start of
// rest, or 0 if it does not match. Matchers never match the empty string.
type Matcher func(rest string) int

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isDigitByte(b byte) bool { return '0' <= b && b <= '9' }

func countLeading(s string, pred func(byte) bool) int {
	n := 0
	for n < len(s) && pred(s[n]) {
		n++
	}
	return n
}

// Word matches one or more ASCII letters, digits or underscores.
func Word(rest string) int { return countLeading(rest, isWordByte) }

// Digits matches one or more ASCII digits.
func Digits(rest string) int { return countLeading(rest, isDigitByte) }

// Newline matches a line feed.
func Newline(rest string) int {
	if len(rest) > 0 && rest[0] == '\n' {
		return 1
	}
	return 0
}

// NonSpace matches one or more non-whitespace characters.
func NonSpace(rest string) int {
	n := 0
	for n < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[n:])
		if unicode.IsSpace(r) {
			break
		}
		n += size
	}
	return n
}

// OneOf returns a Matcher that matches the first of words that is an ASCII
// case-insensitive prefix of the input. It does not require a word boundary
// after the match.
func OneOf(words ...string) Matcher {
	return func(rest string) int {
		for _, w := range words {
			if hasPrefixFold(rest, w) {
				return len(w)
			}
		}
		return 0
	}
}

// WordBefore returns a Matcher that matches a Word only when it is followed by
// optional whitespace and then something next matches. The text matched by
// next is not consumed. Like a backtracking regular expression, the longest
// word prefix satisfying the lookahead wins.
func WordBefore(next Matcher) Matcher {
	return func(rest string) int {
		for n := Word(rest); n > 0; n-- {
			if next(trimLeftSpace(rest[n:])) > 0 {
				return n
			}
		}
		return 0
	}
}

func hasPrefixFold(s, prefix string) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if lowerASCII(s[i]) != lowerASCII(prefix[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}

func trimLeftSpace(s string) string {
	for len(s) > 0 {
		r, n := utf8.DecodeRuneInString(s)
		if !unicode.IsSpace(r) {
			break
		}
		s = s[n:]
	}
	return s
}
