// Package store implements a persistent token cache backed by bbolt.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.lmc.sh/pkg/logutil"
	. "src.lmc.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// OpenTimeout is how long Open waits for the file lock of the database.
var OpenTimeout = time.Second

// DBStore is the permanent storage backend.
type DBStore interface {
	TokenCache
	Close() error
}

var initDB = map[string](func(*bolt.Tx) error){}

type dbStore struct {
	db *bolt.DB
}

// Open opens the database at the given path, creating it if needed.
func Open(path string) (DBStore, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: OpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("open token cache: %w", err)
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// Close closes the store.
func (s *dbStore) Close() error {
	return s.db.Close()
}

// CacheKey returns the key under which the spans of code are cached, when
// highlighted with version of the named mode installed by owner.
func CacheKey(owner, mode string, version int, code string) string {
	sum := sha256.Sum256([]byte(code))
	return fmt.Sprintf("%s/%s@%d:%s", owner, mode, version, hex.EncodeToString(sum[:]))
}
