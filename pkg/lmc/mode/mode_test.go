package mode

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.lmc.sh/pkg/lmc"
)

func TestRegisterLMC_IsIdempotent(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 2; i++ {
		if err := RegisterLMC(r, "plugin"); err != nil {
			t.Fatal(err)
		}
	}
	if n := r.Len(); n != len(LMCNames) {
		t.Errorf("got %d entries after registering twice, want %d", n, len(LMCNames))
	}
	if diff := cmp.Diff([]string{"littlemancomputer", "lmc", "lmc-asm"}, r.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
	for _, name := range LMCNames {
		m, err := r.Lookup(name)
		if err != nil || m.Name != name {
			t.Errorf("Lookup(%q) -> %v, %v", name, m, err)
		}
	}
	if m, err := r.LookupMIME(LMCMIME); err != nil || m.Name != "lmc" {
		t.Errorf("LookupMIME -> %v, %v", m, err)
	}
}

func TestUnregisterLMC(t *testing.T) {
	r := NewRegistry()
	RegisterLMC(r, "plugin")
	UnregisterLMC(r, "plugin")

	if n := r.Len(); n != 0 {
		t.Errorf("got %d entries after unregistering, want 0", n)
	}
	if _, err := r.Lookup("lmc"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Lookup after unregistering returned %v", err)
	}
	if _, err := r.LookupMIME(LMCMIME); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("LookupMIME after unregistering returned %v", err)
	}
	// Unregistering again is harmless.
	UnregisterLMC(r, "plugin")
}

func TestUnregisterLMC_KeepsPreexistingEntries(t *testing.T) {
	r := NewRegistry()
	other := &Mode{Name: "lmc", Lexer: lmc.New()}
	r.Define("other", "lmc", other)
	r.DefineMIME("other", LMCMIME, "lmc")

	RegisterLMC(r, "plugin")
	if owner, _ := r.Owner("lmc"); owner != "plugin" {
		t.Errorf("after registering, lmc is owned by %q", owner)
	}

	UnregisterLMC(r, "plugin")
	m, err := r.Lookup("lmc")
	if err != nil || m != other {
		t.Errorf("after unregistering, Lookup(lmc) -> %v, %v; want pre-existing mode", m, err)
	}
	if m, err := r.LookupMIME(LMCMIME); err != nil || m != other {
		t.Errorf("after unregistering, LookupMIME -> %v, %v", m, err)
	}
	if _, err := r.Lookup("lmc-asm"); err == nil {
		t.Errorf("lmc-asm still registered")
	}
}

func TestDefine_ReplacesShadowedEntryInPlace(t *testing.T) {
	r := NewRegistry()
	a1 := &Mode{Name: "a1", Lexer: lmc.New()}
	a2 := &Mode{Name: "a2", Lexer: lmc.New()}
	b := &Mode{Name: "b", Lexer: lmc.New()}
	r.Define("a", "x", a1)
	r.Define("b", "x", b)
	r.Define("a", "x", a2)

	if m, _ := r.Lookup("x"); m != b {
		t.Errorf("redefining a shadowed entry made it visible")
	}
	if n := r.Len(); n != 2 {
		t.Errorf("got %d entries, want 2", n)
	}
	r.Undefine("b", "x")
	if m, _ := r.Lookup("x"); m != a2 {
		t.Errorf("got %v after removing the top entry, want a2", m.Name)
	}
}

func TestDefine_Errors(t *testing.T) {
	r := NewRegistry()
	if err := r.Define("o", "", LMC("x")); err == nil {
		t.Errorf("Define with empty name succeeded")
	}
	if err := r.Define("o", "x", &Mode{}); err == nil {
		t.Errorf("Define without lexer succeeded")
	}
	if err := r.Define("o", "x", nil); err == nil {
		t.Errorf("Define with nil mode succeeded")
	}
	if err := r.DefineMIME("o", "", "x"); err == nil {
		t.Errorf("DefineMIME with empty MIME succeeded")
	}
	if r.Undefine("o", "x") || r.UndefineMIME("o", "text/x") {
		t.Errorf("Undefine of missing entries reported success")
	}
}

func TestLookupOwner(t *testing.T) {
	r := NewRegistry()
	RegisterLMC(r, "plugin")
	shadow := LMC("lmc")
	r.Define("user", "lmc", shadow)

	m, owner, err := r.LookupOwner("lmc")
	if m != shadow || owner != "user" || err != nil {
		t.Errorf("LookupOwner returns %v, %q, %v; want the shadowing mode of user", m, owner, err)
	}
	if m.Version != lmc.RulesVersion {
		t.Errorf("LMC mode has version %d, want %d", m.Version, lmc.RulesVersion)
	}
	if _, _, err := r.LookupOwner("asm"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("LookupOwner of unknown name returns %v", err)
	}
}

func TestLookupMIME_DanglingName(t *testing.T) {
	r := NewRegistry()
	r.DefineMIME("o", "text/x-foo", "foo")
	if _, err := r.LookupMIME("text/x-foo"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("got %v, want ErrUnknownMode", err)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RegisterLMC(r, "plugin")
			r.Lookup("lmc")
			r.Names()
		}()
	}
	wg.Wait()
	if n := r.Len(); n != len(LMCNames) {
		t.Errorf("got %d entries, want %d", n, len(LMCNames))
	}
}
