package lsp

import (
	"sort"

	lsp "github.com/sourcegraph/go-lsp"
	"src.lmc.sh/pkg/highlight"
	"src.lmc.sh/pkg/lmc"
	"src.lmc.sh/pkg/lmc/mode"
)

// An open document. It implements plugin.View.
type document struct {
	registry *mode.Registry
	uri      lsp.DocumentURI
	mode     string
	content  string

	// Spans of content, computed lazily. Reset when the content or the mode
	// changes.
	spansCache []highlight.Span
	spansValid bool
}

func (d *document) Mode() string { return d.mode }

func (d *document) SetMode(name string) {
	d.mode = name
	d.spansCache, d.spansValid = nil, false
}

func (d *document) setContent(content string) {
	d.content = content
	d.spansCache, d.spansValid = nil, false
}

// Returns the spans of the document, or nil if its mode is not registered.
func (d *document) spans() []highlight.Span {
	if !d.spansValid {
		d.spansCache = nil
		if m, err := d.registry.Lookup(d.mode); err == nil {
			d.spansCache = highlight.Spans(m, d.content, lmc.DefaultTabSize)
		}
		d.spansValid = true
	}
	return d.spansCache
}

type symbol struct {
	name   string
	kind   lsp.CompletionItemKind
	detail string
}

// Returns the labels and memory cells the document defines, sorted by name.
// A name defined both ways is reported as a label.
func (d *document) symbols() []symbol {
	kinds := make(map[string]lmc.TokenType)
	for _, span := range d.spans() {
		if span.Type != lmc.Link && span.Type != lmc.Variable {
			continue
		}
		name := span.Text(d.content)
		if kinds[name] != lmc.Link {
			kinds[name] = span.Type
		}
	}
	syms := make([]symbol, 0, len(kinds))
	for name, t := range kinds {
		if t == lmc.Link {
			syms = append(syms, symbol{name, lsp.CIKReference, "label"})
		} else {
			syms = append(syms, symbol{name, lsp.CIKVariable, "memory cell"})
		}
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].name < syms[j].name })
	return syms
}
