package ui

import (
	"testing"

	"src.lmc.sh/pkg/tt"
)

var Args = tt.Args

func TestStyleText(t *testing.T) {
	tt.Test(t, StyleText,
		// Foreground color
		Args(T("foo"), FgRed).
			Rets(Text{&Segment{Style{Fg: Red}, "foo"}}),
		// Override existing foreground
		Args(Text{&Segment{Style{Fg: Green}, "foo"}}, FgRed).
			Rets(Text{&Segment{Style{Fg: Red}, "foo"}}),
		// Multiple segments
		Args(Text{
			&Segment{Style{}, "foo"},
			&Segment{Style{Fg: Green}, "bar"}}, FgRed).
			Rets(Text{
				&Segment{Style{Fg: Red}, "foo"},
				&Segment{Style{Fg: Red}, "bar"},
			}),
		// Background color
		Args(T("foo"), BgRed).
			Rets(Text{&Segment{Style{Bg: Red}, "foo"}}),
		// Bold, false -> true
		Args(T("foo"), Bold).
			Rets(Text{&Segment{Style{Bold: true}, "foo"}}),
		// No Bold, true -> false
		Args(Text{&Segment{Style{Bold: true}, "foo"}}, NoBold).
			Rets(Text{&Segment{Style{}, "foo"}}),
		// Joint styling
		Args(T("foo"), Stylings(Italic, FgBlue)).
			Rets(Text{&Segment{Style{Fg: Blue, Italic: true}, "foo"}}),
		// Nil styling is ignored
		Args(T("foo"), nil).Rets(T("foo")),
	)
}

func applyParsedStyling(s string) (Style, bool) {
	styling := ParseStyling(s)
	if styling == nil {
		return Style{}, false
	}
	return ApplyStyling(Style{Dim: true}, styling), true
}

func TestParseStyling(t *testing.T) {
	tt.Test(t, applyParsedStyling,
		Args("bold").Rets(Style{Dim: true, Bold: true}, true),
		Args("no-dim").Rets(Style{}, true),
		Args("no-italic dim").Rets(Style{Dim: true}, true),
		Args("red").Rets(Style{Dim: true, Fg: Red}, true),
		Args("fg-bright-cyan").Rets(Style{Dim: true, Fg: BrightCyan}, true),
		Args("bg-color42").Rets(Style{Dim: true, Bg: XTerm256Color(42)}, true),
		Args("fg-#102030").Rets(Style{Dim: true, Fg: TrueColor(0x10, 0x20, 0x30)}, true),
		Args("default").Rets(Style{Dim: true}, true),
		Args("bg-default").Rets(Style{Dim: true}, true),
		Args("fg-yellow  bold\titalic").Rets(Style{Dim: true, Fg: Yellow, Bold: true, Italic: true}, true),
		Args("fg-nope").Rets(Style{}, false),
		Args("no-such").Rets(Style{}, false),
		Args("no-red").Rets(Style{}, false),
		Args("bg-bold").Rets(Style{}, false),
		Args(" \t ").Rets(Style{}, false),
		Args("bold nope").Rets(Style{}, false),
		Args("").Rets(Style{}, false),
	)
}

func TestStyleCSS(t *testing.T) {
	tt.Test(t, Style.CSS,
		Args(Style{}).Rets(""),
		Args(Style{Fg: Green, Bg: Black, Bold: true, Italic: true}).Rets(
			"color: #00aa00; background-color: #000000; font-weight: bold; font-style: italic"),
		Args(Style{Underlined: true, Dim: true, Inverse: true}).Rets(
			"opacity: 0.7; text-decoration: underline; filter: invert(100%)"),
	)
}
