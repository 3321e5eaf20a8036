package highlight

import (
	"sync"

	"src.lmc.sh/pkg/lmc/mode"
	"src.lmc.sh/pkg/ui"
)

// Highlighter is a code highlighter that remembers its last result.
type Highlighter struct {
	cfg Config

	cacheMutex sync.Mutex
	cache      cache
}

type cache struct {
	mode       *mode.Mode
	modeName   string
	code       string
	styledCode ui.Text
}

// NewHighlighter creates a Highlighter. It panics if cfg.Registry is nil.
func NewHighlighter(cfg Config) *Highlighter {
	if cfg.Registry == nil {
		panic("highlight: nil registry")
	}
	return &Highlighter{cfg: cfg}
}

// Get returns the code highlighted with the named mode. If the mode is not
// registered, it returns the code unstyled along with the error.
//
// The last result is reused as long as the name still resolves to the same
// mode, so changes to the registry take effect on the next call.
func (hl *Highlighter) Get(modeName, code string) (ui.Text, error) {
	m, owner, err := hl.cfg.Registry.LookupOwner(modeName)
	if err != nil {
		return ui.T(code), err
	}

	hl.cacheMutex.Lock()
	defer hl.cacheMutex.Unlock()
	c := hl.cache
	if c.styledCode != nil && c.mode == m && c.modeName == modeName && c.code == code {
		return c.styledCode, nil
	}

	styledCode := highlight(code, hl.spans(m, owner, modeName, code), hl.theme())
	hl.cache = cache{m, modeName, code, styledCode}
	return styledCode, nil
}
