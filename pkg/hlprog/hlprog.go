// Package hlprog is the highlighting subprogram of lmchl. It reads LMC
// assembly from files or stdin and writes it highlighted for a terminal, as
// HTML or as a token stream.
package hlprog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"src.lmc.sh/pkg/errutil"
	"src.lmc.sh/pkg/highlight"
	"src.lmc.sh/pkg/highlight/theme"
	"src.lmc.sh/pkg/lmc/mode"
	"src.lmc.sh/pkg/lmc/plugin"
	"src.lmc.sh/pkg/logutil"
	"src.lmc.sh/pkg/prog"
	"src.lmc.sh/pkg/store"
	"src.lmc.sh/pkg/sys"
)

var logger = logutil.GetLogger("[hlprog] ")

// Program is the highlighting subprogram. It runs when no other subprogram
// claims the invocation.
type Program struct {
	mode    string
	color   string
	theme   string
	cache   string
	tabSize int
	tokens  bool
	html    bool
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.StringVar(&p.mode, "mode", mode.LMCNames[0], "Name of the highlighting mode")
	fs.StringVar(&p.color, "color", "auto",
		"When to use terminal colors: auto, always or never")
	fs.StringVar(&p.theme, "theme", "", "Path to a YAML or TOML theme file")
	fs.StringVar(&p.cache, "cache", "", "Path to a token cache database")
	fs.IntVar(&p.tabSize, "tabsize", 0, "Tab size of the input; 0 means the default")
	fs.BoolVar(&p.tokens, "tokens", false, "Output tokens as JSON lines")
	fs.BoolVar(&p.html, "html", false, "Output HTML")
}

// A piece of input. Name is empty for stdin.
type source struct {
	name string
	code string
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if p.tokens && p.html {
		return prog.BadUsage("-tokens and -html cannot be used together")
	}
	var color bool
	switch p.color {
	case "auto":
		color = sys.IsFileATTY(fds[1])
	case "always":
		color = true
	case "never":
	default:
		return prog.BadUsage(fmt.Sprintf("invalid -color value %q", p.color))
	}
	if p.tabSize < 0 {
		return prog.BadUsage("-tabsize must not be negative")
	}

	registry := mode.NewRegistry()
	if err := (&plugin.Plugin{Registry: registry}).Load(); err != nil {
		return err
	}
	if _, err := registry.Lookup(p.mode); err != nil {
		return err
	}
	cfg := highlight.Config{Registry: registry, TabSize: p.tabSize}
	if p.theme != "" {
		t, err := theme.Load(p.theme)
		if err != nil {
			return err
		}
		cfg.Theme = t
	}
	if p.cache != "" {
		st, err := store.Open(p.cache)
		if err != nil {
			return err
		}
		defer st.Close()
		cfg.Cache = st
	}
	hl := highlight.NewHighlighter(cfg)

	sources, readErr := readSources(fds[0], args)
	var writeErrs []error
	for _, src := range sources {
		logger.Printf("highlighting %q (%d bytes)", src.name, len(src.code))
		var err error
		switch {
		case p.tokens:
			err = p.writeTokens(fds[1], hl, src)
		case p.html:
			err = p.writeHTML(fds[1], hl, src)
		default:
			err = p.writeText(fds[1], hl, src, color)
		}
		writeErrs = append(writeErrs, err)
	}
	return errutil.Multi(append([]error{readErr}, writeErrs...)...)
}

func readSources(stdin *os.File, files []string) ([]source, error) {
	if len(files) == 0 {
		code, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []source{{"", string(code)}}, nil
	}
	var sources []source
	var errs []error
	for _, name := range files {
		code, err := os.ReadFile(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sources = append(sources, source{name, string(code)})
	}
	return sources, errutil.Multi(errs...)
}

func (p *Program) writeText(w io.Writer, hl *highlight.Highlighter, src source, color bool) error {
	text, err := hl.Get(p.mode, src.code)
	if err != nil {
		return err
	}
	if color {
		_, err = io.WriteString(w, text.VTString())
	} else {
		_, err = io.WriteString(w, text.PlainString())
	}
	return err
}

func (p *Program) writeHTML(w io.Writer, hl *highlight.Highlighter, src source) error {
	html, err := hl.HTML(p.mode, src.code)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "<pre class=\"cm-s-lmc\">%s</pre>\n", html)
	return err
}

// A token in the output of -tokens. From and To are byte offsets within the
// line.
type jsonToken struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line"`
	From int    `json:"from"`
	To   int    `json:"to"`
	Type string `json:"type"`
	Text string `json:"text"`
}

func (p *Program) writeTokens(w io.Writer, hl *highlight.Highlighter, src source) error {
	spans, err := hl.Spans(p.mode, src.code)
	if err != nil {
		return err
	}
	lineStarts := []int{0}
	for i := 0; i < len(src.code); i++ {
		if src.code[i] == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	enc := json.NewEncoder(w)
	for _, span := range spans {
		r := span.Shift(-lineStarts[span.Line])
		err := enc.Encode(jsonToken{
			File: src.name,
			Line: span.Line,
			From: r.From,
			To:   r.To,
			Type: span.Type.String(),
			Text: span.Text(src.code),
		})
		if err != nil {
			return err
		}
	}
	return nil
}
