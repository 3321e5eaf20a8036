// Package ui contains types that may be used by different editor frontends.
package ui

import (
	"fmt"
	"html"
	"strings"
)

// Segment is a string that has some style applied to it.
type Segment struct {
	Style
	Text string
}

// Clone returns a copy of the Segment.
func (s *Segment) Clone() *Segment {
	value := *s
	return &value
}

// String returns a string representation of the styled segment. This now always
// assumes VT-style terminal output.
func (s *Segment) String() string {
	return s.VTString()
}

// VTString renders the styled segment using VT-style escape sequences. Any
// existing SGR state will be cleared.
func (s *Segment) VTString() string {
	sgr := s.SGR()
	if sgr == "" {
		return "\033[m" + s.Text
	}
	return fmt.Sprintf("\033[;%sm%s\033[m", sgr, s.Text)
}

// Text contains of a list of styled Segments.
//
// When only functions in this package are used to manipulate Text's, they are
// guaranteed to be in canonical form: no adjacent Segments have the same
// style, and no Segment has empty text.
type Text []*Segment

// T constructs a new Text with the given content and the given Styling's
// applied.
func T(s string, ts ...Styling) Text {
	return StyleText(Text{&Segment{Text: s}}, ts...)
}

// Concat concatenates multiple Text's into one.
func Concat(texts ...Text) Text {
	var ret Text
	for _, text := range texts {
		ret = append(ret, text...)
	}
	return normalize(ret)
}

// Clone returns a deep copy of Text.
func (t Text) Clone() Text {
	newt := make(Text, len(t))
	for i, seg := range t {
		newt[i] = seg.Clone()
	}
	return newt
}

// String returns a string representation of the styled text. This now always
// assumes VT-style terminal output.
func (t Text) String() string {
	return t.VTString()
}

// VTString renders the styled text using VT-style escape sequences. Any
// existing SGR state will be cleared.
func (t Text) VTString() string {
	var sb strings.Builder
	clean := false
	for _, seg := range t {
		sgr := seg.SGR()
		if sgr == "" {
			if !clean {
				sb.WriteString("\033[m")
			}
			clean = true
		} else {
			if clean {
				sb.WriteString("\033[" + sgr + "m")
			} else {
				sb.WriteString("\033[;" + sgr + "m")
			}
			clean = false
		}
		sb.WriteString(seg.Text)
	}
	if !clean {
		sb.WriteString("\033[m")
	}
	return sb.String()
}

// PlainString renders the text without any styling.
func (t Text) PlainString() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// HTMLString renders the text as HTML, using class to determine the class
// attribute of each styled segment. Unstyled segments and segments for which
// class returns "" are rendered with inline CSS instead, or as plain text if
// they have no style either.
func (t Text) HTMLString(class func(*Segment) string) string {
	var sb strings.Builder
	for _, seg := range t {
		text := html.EscapeString(seg.Text)
		if class != nil {
			if c := class(seg); c != "" {
				fmt.Fprintf(&sb, `<span class="%s">%s</span>`, html.EscapeString(c), text)
				continue
			}
		}
		if css := seg.CSS(); css != "" {
			fmt.Fprintf(&sb, `<span style="%s">%s</span>`, css, text)
		} else {
			sb.WriteString(text)
		}
	}
	return sb.String()
}

func normalize(t Text) Text {
	var ret Text
	for _, seg := range t {
		if seg.Text == "" {
			continue
		}
		if len(ret) > 0 && ret[len(ret)-1].Style == seg.Style {
			last := ret[len(ret)-1].Clone()
			last.Text += seg.Text
			ret[len(ret)-1] = last
			continue
		}
		ret = append(ret, seg)
	}
	return ret
}
