// Package highlight provides a syntax highlighter for LMC assembly.
package highlight

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"src.lmc.sh/pkg/diag"
	"src.lmc.sh/pkg/lmc"
	"src.lmc.sh/pkg/lmc/mode"
	"src.lmc.sh/pkg/logutil"
	"src.lmc.sh/pkg/store"
	"src.lmc.sh/pkg/store/storedefs"
	"src.lmc.sh/pkg/ui"
)

var logger = logutil.GetLogger("[highlight] ")

// Config keeps configuration for highlighting code.
type Config struct {
	// Registry used to resolve mode names. Required.
	Registry *mode.Registry
	// Theme used by Get. If nil, DefaultTheme is used.
	Theme Theme
	// Tab size of the code. If zero, lmc.DefaultTabSize is used.
	TabSize int
	// If non-nil, spans are loaded from and saved to Cache.
	Cache storedefs.TokenCache
}

// Span is a token in a piece of code. The range is in bytes and relative to
// the whole code.
type Span struct {
	diag.Ranging
	// 0-based line number.
	Line int
	Type lmc.TokenType
}

// Spans tokenizes code with m, carrying the lexer state from each line to
// the next. Lines are separated by "\n"; a "\r" before it is not part of the
// line.
func Spans(m *mode.Mode, code string, tabSize int) []Span {
	st := lmc.StartState()
	if m.StartState != nil {
		st = m.StartState()
	}
	var spans []Span
	lineStart := 0
	for i, line := range strings.Split(code, "\n") {
		offset := lineStart
		lineStart += len(line) + 1
		line = strings.TrimSuffix(line, "\r")
		st = lmc.Line(m.Lexer, line, tabSize, st, func(from, to int, t lmc.TokenType) {
			r := diag.Ranging{From: from, To: to}
			spans = append(spans, Span{r.Shift(offset), i, t})
		})
	}
	return spans
}

// Spans resolves the named mode and tokenizes code with it, consulting the
// configured cache first.
func (hl *Highlighter) Spans(modeName, code string) ([]Span, error) {
	m, owner, err := hl.cfg.Registry.LookupOwner(modeName)
	if err != nil {
		return nil, err
	}
	return hl.spans(m, owner, modeName, code), nil
}

func (hl *Highlighter) spans(m *mode.Mode, owner, modeName, code string) []Span {
	if hl.cfg.Cache == nil {
		return Spans(m, code, hl.tabSize())
	}
	key := store.CacheKey(owner, modeName, m.Version, code)
	cached, err := hl.cfg.Cache.Spans(key)
	if err == nil {
		spans, err := fromCached(cached, code)
		if err == nil {
			return spans
		}
		logger.Printf("discarding cached spans for %s: %v", modeName, err)
	} else if !errors.Is(err, storedefs.ErrNoCache) {
		logger.Printf("failed to load spans for %s: %v", modeName, err)
	}
	spans := Spans(m, code, hl.tabSize())
	if err := hl.cfg.Cache.PutSpans(key, toCached(spans)); err != nil {
		logger.Printf("failed to save spans for %s: %v", modeName, err)
	}
	return spans
}

func (hl *Highlighter) tabSize() int {
	if hl.cfg.TabSize == 0 {
		return lmc.DefaultTabSize
	}
	return hl.cfg.TabSize
}

func (hl *Highlighter) theme() Theme {
	if hl.cfg.Theme == nil {
		return DefaultTheme
	}
	return hl.cfg.Theme
}

// Highlights code, which has been tokenized into spans.
func highlight(code string, spans []Span, theme Theme) ui.Text {
	regions := make([]ui.StylingRegion, 0, len(spans))
	for _, span := range spans {
		regions = append(regions, ui.StylingRegion{
			Ranging: span.Ranging, Styling: theme[span.Type]})
	}
	return ui.StyleRegions(code, regions)
}

// HTML renders code as HTML. Each token is wrapped in a span element whose
// class is "cm-" followed by the CSS class of the token type.
func (hl *Highlighter) HTML(modeName, code string) (string, error) {
	spans, err := hl.Spans(modeName, code)
	if err != nil {
		return "", err
	}
	var text ui.Text
	classes := make(map[*ui.Segment]string)
	lastTo := 0
	for _, span := range spans {
		if span.From > lastTo {
			text = append(text, &ui.Segment{Text: code[lastTo:span.From]})
		}
		seg := &ui.Segment{Text: span.Text(code)}
		if c := span.Type.CSSClass(); c != "" {
			classes[seg] = "cm-" + c
		}
		text = append(text, seg)
		lastTo = span.To
	}
	if len(code) > lastTo {
		text = append(text, &ui.Segment{Text: code[lastTo:]})
	}
	return text.HTMLString(func(seg *ui.Segment) string { return classes[seg] }), nil
}

func toCached(spans []Span) []storedefs.CachedSpan {
	cached := make([]storedefs.CachedSpan, len(spans))
	for i, span := range spans {
		cached[i] = storedefs.CachedSpan{
			Line: span.Line, From: span.From, To: span.To, Type: int(span.Type)}
	}
	return cached
}

// Converts cached spans back, checking that they fit code.
func fromCached(cached []storedefs.CachedSpan, code string) ([]Span, error) {
	lineStarts := []int{0}
	for i := 0; i < len(code); i++ {
		if code[i] == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	spans := make([]Span, len(cached))
	for i, c := range cached {
		if c.Line < 0 || c.Line >= len(lineStarts) {
			return nil, fmt.Errorf("span %d: line %d out of range", i, c.Line)
		}
		lineEnd := len(code)
		if c.Line+1 < len(lineStarts) {
			lineEnd = lineStarts[c.Line+1] - 1
		}
		if c.From < lineStarts[c.Line] || c.From > c.To || c.To > lineEnd {
			return nil, fmt.Errorf("span %d: range %d-%d outside line %d", i, c.From, c.To, c.Line)
		}
		t := lmc.TokenType(c.Type)
		if !slices.Contains(lmc.TokenTypes(), t) {
			return nil, fmt.Errorf("span %d: invalid token type %d", i, c.Type)
		}
		spans[i] = Span{diag.Ranging{From: c.From, To: c.To}, c.Line, t}
	}
	return spans, nil
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d %s", s.Line, s.From, s.To, s.Type)
}
