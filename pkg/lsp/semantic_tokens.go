package lsp

import (
	lsp "github.com/sourcegraph/go-lsp"
	"src.lmc.sh/pkg/highlight"
	"src.lmc.sh/pkg/lmc"
)

// Protocol types missing from go-lsp.

type initializeParams struct {
	Capabilities struct {
		Workspace struct {
			SemanticTokens struct {
				RefreshSupport bool `json:"refreshSupport"`
			} `json:"semanticTokens"`
		} `json:"workspace"`
	} `json:"capabilities"`
}

type initializeResult struct {
	Capabilities serverCapabilities `json:"capabilities"`
}

type serverCapabilities struct {
	lsp.ServerCapabilities
	SemanticTokensProvider *semanticTokensOptions `json:"semanticTokensProvider,omitempty"`
}

type semanticTokensOptions struct {
	Legend semanticTokensLegend `json:"legend"`
	Full   bool                 `json:"full"`
}

type semanticTokensLegend struct {
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}

type semanticTokensParams struct {
	TextDocument lsp.TextDocumentIdentifier `json:"textDocument"`
}

type semanticTokens struct {
	Data []uint32 `json:"data"`
}

// Standard semantic token types for each token type. The legend lists them in
// the order of lmc.TokenTypes.
var semanticTokenType = map[lmc.TokenType]string{
	lmc.Keyword:   "keyword",
	lmc.Link:      "label",
	lmc.Variable:  "variable",
	lmc.Number:    "number",
	lmc.Comment:   "comment",
	lmc.IOKeyword: "function",
	lmc.Directive: "macro",
}

func semanticTokenTypeNames() []string {
	types := lmc.TokenTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = semanticTokenType[t]
	}
	return names
}

func semanticTokenIndex(t lmc.TokenType) uint32 {
	for i, t2 := range lmc.TokenTypes() {
		if t == t2 {
			return uint32(i)
		}
	}
	return 0
}

// Encodes spans in the relative format of textDocument/semanticTokens: five
// integers per token, namely the line delta, the start delta (relative to the
// previous token if on the same line), the length, the type index and the
// modifier bitset. Positions and lengths are in UTF-16 code units. The spans
// must be sorted; spans crossing a line break are dropped.
func encodeSemanticTokens(content string, spans []highlight.Span) []uint32 {
	data := make([]uint32, 0, len(spans)*5)
	var prev lsp.Position
	i := 0
	// Position of the start of the span being processed.
	var start lsp.Position
	walkString(content, func(idx int, p lsp.Position) bool {
		for i < len(spans) {
			span := spans[i]
			if idx == span.From {
				start = p
			}
			if idx != span.To {
				break
			}
			i++
			if p.Line != start.Line {
				// Only possible with a lone "\r" inside a comment.
				continue
			}
			deltaStart := start.Character
			if start.Line == prev.Line {
				deltaStart -= prev.Character
			}
			data = append(data,
				uint32(start.Line-prev.Line), uint32(deltaStart),
				uint32(p.Character-start.Character),
				semanticTokenIndex(span.Type), 0)
			prev = start
		}
		return i < len(spans)
	})
	return data
}
