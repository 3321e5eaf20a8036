package lsp

import (
	"context"
	"encoding/json"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"src.lmc.sh/pkg/diag"
	"src.lmc.sh/pkg/highlight"
	"src.lmc.sh/pkg/lmc"
	"src.lmc.sh/pkg/lmc/mode"
	"src.lmc.sh/pkg/lmc/plugin"
	"src.lmc.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[lsp] ")

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
	errShutdown = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidRequest, Message: "server is shut down"}
)

type server struct {
	registry *mode.Registry
	plugin   *plugin.Plugin
	docs     map[lsp.DocumentURI]*document

	// Set when the client advertises support for
	// workspace/semanticTokens/refresh.
	canRefresh bool
	ready      bool
	onReady    []func()
	shutdown   bool
}

func newServer(r *mode.Registry) *server {
	s := &server{registry: r, docs: make(map[lsp.DocumentURI]*document)}
	s.plugin = &plugin.Plugin{Registry: r, Workspace: s}
	return s
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":                       s.initialize,
		"initialized":                      s.initialized,
		"shutdown":                         s.shutdownMethod,
		"exit":                             s.exit,
		"textDocument/didOpen":             s.didOpen,
		"textDocument/didChange":           s.didChange,
		"textDocument/didClose":            s.didClose,
		"textDocument/hover":               s.hover,
		"textDocument/completion":          s.completion,
		"textDocument/semanticTokens/full": s.semanticTokensFull,

		// Called by clients even when server doesn't advertise support:
		// https://microsoft.github.io/language-server-protocol/specification#workspace_didChangeWatchedFiles
		"workspace/didChangeWatchedFiles": noop,
		"$/cancelRequest":                 noop,
		"$/setTrace":                      noop,
	}, s)
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

var nullParams = json.RawMessage("null")

func routingHandler(methods map[string]method, s *server) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		if s.shutdown && req.Method != "exit" {
			return nil, errShutdown
		}
		params := nullParams
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params initializeParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	s.canRefresh = params.Capabilities.Workspace.SemanticTokens.RefreshSupport
	return &initializeResult{
		Capabilities: serverCapabilities{
			ServerCapabilities: lsp.ServerCapabilities{
				TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
					Options: &lsp.TextDocumentSyncOptions{
						OpenClose: true,
						Change:    lsp.TDSKFull,
					},
				},
				HoverProvider:      true,
				CompletionProvider: &lsp.CompletionOptions{},
			},
			SemanticTokensProvider: &semanticTokensOptions{
				Legend: semanticTokensLegend{
					TokenTypes:     semanticTokenTypeNames(),
					TokenModifiers: []string{},
				},
				Full: true,
			},
		},
	}, nil
}

func (s *server) initialized(ctx context.Context, conn jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	if err := s.plugin.Load(); err != nil {
		logger.Println("failed to load modes:", err)
		return nil, nil
	}
	s.ready = true
	for _, f := range s.onReady {
		f()
	}
	s.onReady = nil
	s.requestRefresh(ctx, conn)
	return nil, nil
}

func (s *server) shutdownMethod(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	s.plugin.Unload()
	s.shutdown = true
	return nil, nil
}

func (s *server) exit(_ context.Context, conn jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, conn.Close()
}

func (s *server) didOpen(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	item := params.TextDocument
	s.docs[item.URI] = &document{
		registry: s.registry, uri: item.URI,
		mode: modeForLanguageID(item.LanguageID), content: item.Text}
	return nil, nil
}

func (s *server) didChange(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	doc, ok := s.docs[params.TextDocument.URI]
	if !ok {
		return nil, errInvalidParams
	}
	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	doc.setContent(params.ContentChanges[len(params.ContentChanges)-1].Text)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.docs, params.TextDocument.URI)
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	doc, ok := s.docs[params.TextDocument.URI]
	if !ok {
		return lsp.Hover{}, nil
	}
	idx := lspPositionToIdx(doc.content, params.Position)
	span, ok := spanAt(doc.spans(), idx)
	if !ok {
		return lsp.Hover{}, nil
	}
	contents := hoverText(span.Type, span.Text(doc.content))
	if contents == "" {
		return lsp.Hover{}, nil
	}
	rg := lspRangeFromRange(doc.content, span)
	return lsp.Hover{
		Contents: []lsp.MarkedString{lsp.RawMarkedString(contents)},
		Range:    &rg,
	}, nil
}

// Finds the span under idx. A cursor right after a span also counts, unless
// another span starts there.
func spanAt(spans []highlight.Span, idx int) (highlight.Span, bool) {
	for i, span := range spans {
		if span.Contains(idx) {
			return span, true
		}
		if span.To == idx && (i+1 == len(spans) || spans[i+1].From != idx) {
			return span, true
		}
	}
	return highlight.Span{}, false
}

func hoverText(t lmc.TokenType, text string) string {
	switch t {
	case lmc.Keyword, lmc.IOKeyword, lmc.Directive:
		if m, ok := lmc.LookupMnemonic(text); ok {
			return m.Name + " (" + string(m.Group) + "): " + m.Doc
		}
	case lmc.Link:
		return "label " + text
	case lmc.Variable:
		return "memory cell " + text
	case lmc.Number:
		return "number " + text
	}
	return ""
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	doc, ok := s.docs[params.TextDocument.URI]
	if !ok {
		return []lsp.CompletionItem{}, nil
	}
	content := doc.content
	dot := lspPositionToIdx(content, params.Position)
	from := dot
	for from > 0 && isWordByte(content[from-1]) {
		from--
	}
	prefix := content[from:dot]
	lspRange := lspRangeFromRange(content, diag.Ranging{From: from, To: dot})

	items := []lsp.CompletionItem{}
	add := func(label string, kind lsp.CompletionItemKind, detail, doc string) {
		items = append(items, lsp.CompletionItem{
			Label:         label,
			Kind:          kind,
			Detail:        detail,
			Documentation: doc,
			TextEdit:      &lsp.TextEdit{Range: lspRange, NewText: label},
		})
	}
	for _, m := range lmc.Mnemonics() {
		if hasPrefixFold(m.Name, prefix) {
			add(m.Name, lsp.CIKKeyword, string(m.Group), m.Doc)
		}
	}
	for _, sym := range doc.symbols() {
		if sym.name != prefix && strings.HasPrefix(sym.name, prefix) {
			add(sym.name, sym.kind, sym.detail, "")
		}
	}
	return items, nil
}

func (s *server) semanticTokensFull(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params semanticTokensParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	doc, ok := s.docs[params.TextDocument.URI]
	if !ok {
		return &semanticTokens{Data: []uint32{}}, nil
	}
	return &semanticTokens{Data: encodeSemanticTokens(doc.content, doc.spans())}, nil
}

// Views and OnReady implement plugin.Workspace.

func (s *server) Views() []plugin.View {
	views := make([]plugin.View, 0, len(s.docs))
	for _, doc := range s.docs {
		views = append(views, doc)
	}
	return views
}

func (s *server) OnReady(f func()) {
	if s.ready {
		f()
	} else {
		s.onReady = append(s.onReady, f)
	}
}

func (s *server) requestRefresh(ctx context.Context, conn jsonrpc2.JSONRPC2) {
	if !s.canRefresh {
		return
	}
	// A request from within a handler must not wait for the response, which
	// is read by the same goroutine.
	go func() {
		err := conn.Call(ctx, "workspace/semanticTokens/refresh", nil, nil)
		if err != nil {
			logger.Println("failed to request semantic tokens refresh:", err)
		}
	}()
}

func modeForLanguageID(id string) string {
	if id == "" {
		return mode.LMCNames[0]
	}
	return id
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if lastCR {
				// Ignore \n if it's part of a \r\n sequence
			} else {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// Encoded in UTF-16 with one unit
			p.Character++
		default:
			// Encoded in UTF-16 with two units
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}

func isWordByte(b byte) bool {
	return b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
