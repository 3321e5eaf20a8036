package ui

import "strings"

// Styling changes a Style. Themes are made of stylings, and StyleRegions
// applies them to the regions of a string.
type Styling interface{ transform(*Style) }

// StyleText returns a copy of t with the stylings applied to every segment.
func StyleText(t Text, ts ...Styling) Text {
	newt := make(Text, len(t))
	for i, seg := range t {
		newt[i] = StyleSegment(seg, ts...)
	}
	return newt
}

// StyleSegment returns a copy of seg with the stylings applied.
func StyleSegment(seg *Segment, ts ...Styling) *Segment {
	return &Segment{Text: seg.Text, Style: ApplyStyling(seg.Style, ts...)}
}

// ApplyStyling returns s with the stylings applied in order. Nil stylings are
// skipped.
func ApplyStyling(s Style, ts ...Styling) Style {
	for _, t := range ts {
		if t != nil {
			t.transform(&s)
		}
	}
	return s
}

// Stylings joins several stylings into one.
func Stylings(ts ...Styling) Styling { return jointStyling(ts) }

// Fg returns a Styling that sets the foreground color.
func Fg(c Color) Styling { return setFg{c} }

// Bg returns a Styling that sets the background color.
func Bg(c Color) Styling { return setBg{c} }

var (
	FgDefault Styling = setFg{nil}

	FgBlack   = Fg(Black)
	FgRed     = Fg(Red)
	FgGreen   = Fg(Green)
	FgYellow  = Fg(Yellow)
	FgBlue    = Fg(Blue)
	FgMagenta = Fg(Magenta)
	FgCyan    = Fg(Cyan)
	FgWhite   = Fg(White)

	FgBrightBlack = Fg(BrightBlack)

	BgDefault Styling = setBg{nil}

	BgBlack   = Bg(Black)
	BgRed     = Bg(Red)
	BgGreen   = Bg(Green)
	BgYellow  = Bg(Yellow)
	BgBlue    = Bg(Blue)
	BgMagenta = Bg(Magenta)
	BgCyan    = Bg(Cyan)
	BgWhite   = Bg(White)

	Bold       Styling = setAttr{bold, true}
	Dim        Styling = setAttr{dim, true}
	Italic     Styling = setAttr{italic, true}
	Underlined Styling = setAttr{underlined, true}
	Blink      Styling = setAttr{blink, true}
	Inverse    Styling = setAttr{inverse, true}

	NoBold       Styling = setAttr{bold, false}
	NoDim        Styling = setAttr{dim, false}
	NoItalic     Styling = setAttr{italic, false}
	NoUnderlined Styling = setAttr{underlined, false}
	NoBlink      Styling = setAttr{blink, false}
	NoInverse    Styling = setAttr{inverse, false}
)

type attr int

const (
	bold attr = iota
	dim
	italic
	underlined
	blink
	inverse
)

var attrNames = map[string]attr{
	"bold": bold, "dim": dim, "italic": italic,
	"underlined": underlined, "blink": blink, "inverse": inverse,
}

func (a attr) field(s *Style) *bool {
	switch a {
	case bold:
		return &s.Bold
	case dim:
		return &s.Dim
	case italic:
		return &s.Italic
	case underlined:
		return &s.Underlined
	case blink:
		return &s.Blink
	default:
		return &s.Inverse
	}
}

type setFg struct{ c Color }
type setBg struct{ c Color }
type setAttr struct {
	a  attr
	on bool
}
type jointStyling []Styling

func (t setFg) transform(s *Style)   { s.Fg = t.c }
func (t setBg) transform(s *Style)   { s.Bg = t.c }
func (t setAttr) transform(s *Style) { *t.a.field(s) = t.on }

func (t jointStyling) transform(s *Style) {
	for _, t := range t {
		t.transform(s)
	}
}

// ParseStyling parses the names used in theme files. A name is an attribute
// ("bold"), a negated attribute ("no-bold"), a color ("red" or "fg-red"), a
// background color ("bg-red") or "default". Colors also accept "colorN" and
// "#rrggbb". Several names separated by whitespace are joined.
//
// ParseStyling returns nil if any name is invalid.
func ParseStyling(s string) Styling {
	names := strings.Fields(s)
	if len(names) == 1 {
		return parseOneStyling(names[0])
	}
	var joint jointStyling
	for _, name := range names {
		parsed := parseOneStyling(name)
		if parsed == nil {
			return nil
		}
		joint = append(joint, parsed)
	}
	if joint == nil {
		return nil
	}
	return joint
}

func parseOneStyling(name string) Styling {
	if a, ok := attrNames[name]; ok {
		return setAttr{a, true}
	}
	switch name {
	case "default", "fg-default":
		return FgDefault
	case "bg-default":
		return BgDefault
	}
	if rest, ok := strings.CutPrefix(name, "no-"); ok {
		if a, ok := attrNames[rest]; ok {
			return setAttr{a, false}
		}
		return nil
	}
	if rest, ok := strings.CutPrefix(name, "bg-"); ok {
		if c := parseColor(rest); c != nil {
			return setBg{c}
		}
		return nil
	}
	if c := parseColor(strings.TrimPrefix(name, "fg-")); c != nil {
		return setFg{c}
	}
	return nil
}
