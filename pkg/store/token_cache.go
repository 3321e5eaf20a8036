package store

import (
	"encoding/binary"
	"fmt"

	bolt "go.etcd.io/bbolt"
	. "src.lmc.sh/pkg/store/storedefs"
)

const bucketSpans = "spans"

// A cached value is a format byte followed by one record per span. Each
// record is four big-endian uint32 values: line, from, to, type.
const (
	spanFormat     = 1
	spanRecordSize = 16
)

func init() {
	initDB["initialize span cache table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSpans))
		return err
	}
}

// Spans returns the spans cached under key.
func (s *dbStore) Spans(key string) ([]CachedSpan, error) {
	var spans []CachedSpan
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSpans))
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNoCache
		}
		var err error
		spans, err = unmarshalSpans(v)
		return err
	})
	return spans, err
}

// PutSpans caches spans under key.
func (s *dbStore) PutSpans(key string, spans []CachedSpan) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSpans))
		return b.Put([]byte(key), marshalSpans(spans))
	})
}

// DelSpans removes the spans cached under key.
func (s *dbStore) DelSpans(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSpans))
		return b.Delete([]byte(key))
	})
}

// Purge removes all cached spans.
func (s *dbStore) Purge() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketSpans)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketSpans))
		return err
	})
}

func marshalSpans(spans []CachedSpan) []byte {
	b := make([]byte, 1, 1+len(spans)*spanRecordSize)
	b[0] = spanFormat
	for _, span := range spans {
		b = binary.BigEndian.AppendUint32(b, uint32(span.Line))
		b = binary.BigEndian.AppendUint32(b, uint32(span.From))
		b = binary.BigEndian.AppendUint32(b, uint32(span.To))
		b = binary.BigEndian.AppendUint32(b, uint32(span.Type))
	}
	return b
}

func unmarshalSpans(b []byte) ([]CachedSpan, error) {
	if len(b) == 0 || b[0] != spanFormat {
		return nil, fmt.Errorf("unknown span cache format")
	}
	b = b[1:]
	if len(b)%spanRecordSize != 0 {
		return nil, fmt.Errorf("corrupt span records of %d bytes", len(b))
	}
	spans := make([]CachedSpan, len(b)/spanRecordSize)
	for i := range spans {
		r := b[i*spanRecordSize:]
		spans[i] = CachedSpan{
			Line: int(binary.BigEndian.Uint32(r)),
			From: int(binary.BigEndian.Uint32(r[4:])),
			To:   int(binary.BigEndian.Uint32(r[8:])),
			Type: int(binary.BigEndian.Uint32(r[12:])),
		}
	}
	return spans, nil
}
