// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// do not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoCache is the error returned when there are no cached spans for a key.
var ErrNoCache = errors.New("no cached spans")

// TokenCache is an interface satisfied by the storage service.
type TokenCache interface {
	// Spans returns the spans cached under key, or ErrNoCache.
	Spans(key string) ([]CachedSpan, error)
	// PutSpans caches spans under key, replacing what was there.
	PutSpans(key string, spans []CachedSpan) error
	// DelSpans removes the spans cached under key.
	DelSpans(key string) error
	// Purge removes all cached spans.
	Purge() error
}

// CachedSpan is a token span as stored in the cache. Positions are byte
// offsets into the whole document.
type CachedSpan struct {
	Line int
	From int
	To   int
	Type int
}
