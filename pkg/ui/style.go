package ui

import (
	"strings"
)

// NoColor can be set to true to suppress foreground and background colors when
// rendering text. It is typically set when the output is not a terminal, or
// when the user asks for no color.
var NoColor bool = false

// Style specifies how something (mostly a string) shall be displayed.
type Style struct {
	Fg         Color
	Bg         Color
	Bold       bool
	Dim        bool
	Italic     bool
	Underlined bool
	Blink      bool
	Inverse    bool
}

// SGRValues returns an array of the individual SGR values for the style.
func (s Style) SGRValues() []string {
	var sgr []string

	addIf := func(b bool, code string) {
		if b {
			sgr = append(sgr, code)
		}
	}
	addIf(s.Bold, "1")
	addIf(s.Dim, "2")
	addIf(s.Italic, "3")
	addIf(s.Underlined, "4")
	addIf(s.Blink, "5")
	addIf(s.Inverse, "7")
	if s.Fg != nil && !NoColor {
		sgr = append(sgr, s.Fg.fgSGR())
	}
	if s.Bg != nil && !NoColor {
		sgr = append(sgr, s.Bg.bgSGR())
	}
	return sgr
}

// SGR returns, for the Style, a string that can be included in an ANSI X3.64
// SGR sequence.
func (s Style) SGR() string {
	return strings.Join(s.SGRValues(), ";")
}

// CSS returns the Style as an inline CSS declaration list.
func (s Style) CSS() string {
	var decls []string
	add := func(b bool, decl string) {
		if b {
			decls = append(decls, decl)
		}
	}
	if s.Fg != nil {
		decls = append(decls, "color: "+s.Fg.CSS())
	}
	if s.Bg != nil {
		decls = append(decls, "background-color: "+s.Bg.CSS())
	}
	add(s.Bold, "font-weight: bold")
	add(s.Dim, "opacity: 0.7")
	add(s.Italic, "font-style: italic")
	add(s.Underlined, "text-decoration: underline")
	add(s.Inverse, "filter: invert(100%)")
	return strings.Join(decls, "; ")
}
