// Package storetest keeps test suites against storedefs.TokenCache.
package storetest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.lmc.sh/pkg/store/storedefs"
)

var spans = []storedefs.CachedSpan{
	{Line: 0, From: 0, To: 4, Type: 2},
	{Line: 0, From: 5, To: 8, Type: 1},
	{Line: 1, From: 17, To: 20, Type: 6},
}

// TestTokenCache tests the token cache functionality of a TokenCache.
func TestTokenCache(t *testing.T, store storedefs.TokenCache) {
	_, err := store.Spans("lmc:absent")
	if !errors.Is(err, storedefs.ErrNoCache) {
		t.Errorf("Spans of absent key returns %v, want ErrNoCache", err)
	}

	mustPut(t, store, "lmc:a", spans)
	mustPut(t, store, "lmc:empty", nil)
	wantSpans(t, store, "lmc:a", spans)
	wantSpans(t, store, "lmc:empty", []storedefs.CachedSpan{})

	// Overwrite.
	mustPut(t, store, "lmc:a", spans[:1])
	wantSpans(t, store, "lmc:a", spans[:1])

	if err := store.DelSpans("lmc:a"); err != nil {
		t.Errorf("DelSpans returns %v", err)
	}
	if _, err := store.Spans("lmc:a"); !errors.Is(err, storedefs.ErrNoCache) {
		t.Errorf("Spans after DelSpans returns %v, want ErrNoCache", err)
	}

	if err := store.Purge(); err != nil {
		t.Errorf("Purge returns %v", err)
	}
	if _, err := store.Spans("lmc:empty"); !errors.Is(err, storedefs.ErrNoCache) {
		t.Errorf("Spans after Purge returns %v, want ErrNoCache", err)
	}
	// The cache is still usable after purging.
	mustPut(t, store, "lmc:b", spans)
	wantSpans(t, store, "lmc:b", spans)
}

func mustPut(t *testing.T, store storedefs.TokenCache, key string, s []storedefs.CachedSpan) {
	t.Helper()
	if err := store.PutSpans(key, s); err != nil {
		t.Fatalf("PutSpans(%q) returns %v", key, err)
	}
}

func wantSpans(t *testing.T, store storedefs.TokenCache, key string, want []storedefs.CachedSpan) {
	t.Helper()
	got, err := store.Spans(key)
	if err != nil {
		t.Errorf("Spans(%q) returns error %v", key, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Spans(%q) (-want +got):\n%s", key, diff)
	}
}
