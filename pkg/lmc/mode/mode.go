// Package mode keeps a registry of highlighting modes, keyed by name and by
// MIME type.
//
// Entries are installed on behalf of an owner. Installing the same name twice
// for the same owner is a no-op, and removing an entry only removes what the
// owner installed: if another owner had installed a mode with the same name
// earlier, that mode becomes visible again.
package mode

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"src.lmc.sh/pkg/lmc"
)

// Mode is a highlighting mode.
type Mode struct {
	Name       string
	Lexer      lmc.Tokenizer
	StartState func() lmc.State
	// Version of the lexer. Persisted tokens are only reused for the same
	// owner, name and version.
	Version int
}

// ErrUnknownMode is returned by lookups of names that are not registered.
var ErrUnknownMode = errors.New("unknown mode")

var errEmptyName = errors.New("mode name must not be empty")

// Registry maps names and MIME types to modes. It is safe for concurrent use.
// The zero value is not usable; use NewRegistry.
type Registry struct {
	mu sync.RWMutex
	// For each name, the entries in order of installation. The last entry is
	// the visible one.
	modes map[string][]modeEntry
	mimes map[string][]mimeEntry
}

type modeEntry struct {
	owner string
	mode  *Mode
}

type mimeEntry struct {
	owner string
	name  string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		modes: make(map[string][]modeEntry),
		mimes: make(map[string][]mimeEntry),
	}
}

// Define installs m under name on behalf of owner. If owner has already
// installed a mode under the name, it is replaced in place.
func (r *Registry) Define(owner, name string, m *Mode) error {
	if name == "" {
		return errEmptyName
	}
	if m == nil || m.Lexer == nil {
		return fmt.Errorf("mode %q has no lexer", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modes[name] = define(r.modes[name], modeEntry{owner, m},
		func(e modeEntry) string { return e.owner })
	return nil
}

// Undefine removes the mode owner installed under name. It reports whether
// there was such a mode.
func (r *Registry) Undefine(owner, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, ok := undefine(r.modes[name], owner,
		func(e modeEntry) string { return e.owner })
	setOrDelete(r.modes, name, entries)
	return ok
}

// DefineMIME binds mime to a mode name on behalf of owner. The mode does not
// need to exist yet.
func (r *Registry) DefineMIME(owner, mime, name string) error {
	if mime == "" || name == "" {
		return errEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mimes[mime] = define(r.mimes[mime], mimeEntry{owner, name},
		func(e mimeEntry) string { return e.owner })
	return nil
}

// UndefineMIME removes the binding owner installed for mime. It reports
// whether there was such a binding.
func (r *Registry) UndefineMIME(owner, mime string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, ok := undefine(r.mimes[mime], owner,
		func(e mimeEntry) string { return e.owner })
	setOrDelete(r.mimes, mime, entries)
	return ok
}

// Lookup returns the visible mode for name.
func (r *Registry) Lookup(name string) (*Mode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(name)
}

// LookupOwner is like Lookup, but also returns the owner of the mode.
func (r *Registry) LookupOwner(name string) (*Mode, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, err := r.lookup(name)
	if err != nil {
		return nil, "", err
	}
	entries := r.modes[name]
	return m, entries[len(entries)-1].owner, nil
}

// LookupMIME returns the visible mode for the name bound to mime.
func (r *Registry) LookupMIME(mime string) (*Mode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.mimes[mime]
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: MIME type %s", ErrUnknownMode, mime)
	}
	return r.lookup(entries[len(entries)-1].name)
}

func (r *Registry) lookup(name string) (*Mode, error) {
	entries := r.modes[name]
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	return entries[len(entries)-1].mode, nil
}

// Owner returns the owner of the visible mode for name.
func (r *Registry) Owner(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.modes[name]
	if len(entries) == 0 {
		return "", false
	}
	return entries[len(entries)-1].owner, true
}

// Names returns the sorted names of all registered modes.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modes))
	for name := range r.modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the total number of installed mode entries, including shadowed
// ones.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, entries := range r.modes {
		n += len(entries)
	}
	return n
}

func define[E any](entries []E, e E, owner func(E) string) []E {
	for i := range entries {
		if owner(entries[i]) == owner(e) {
			entries[i] = e
			return entries
		}
	}
	return append(entries, e)
}

func undefine[E any](entries []E, o string, owner func(E) string) ([]E, bool) {
	for i := range entries {
		if owner(entries[i]) == o {
			return append(entries[:i:i], entries[i+1:]...), true
		}
	}
	return entries, false
}

func setOrDelete[E any](m map[string][]E, k string, entries []E) {
	if len(entries) == 0 {
		delete(m, k)
	} else {
		m[k] = entries
	}
}
