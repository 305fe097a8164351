// internal/infra/kvstore/bolt.go
package kvstore

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

// DB wraps the bbolt database backing the local key/value store.
type DB struct {
	Bolt *bbolt.DB
	Path string
}

// Open opens (or creates) the bbolt file at path. bbolt holds an exclusive
// file lock per process; the 1s timeout turns a concurrent holder into an
// error instead of a hang.
func Open(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("kvstore: path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("kvstore: open %s: %w", cleanPath, err)
	}

	log.Printf("[kvstore] bbolt opened path=%s", cleanPath)
	return &DB{Bolt: db, Path: cleanPath}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	if d == nil || d.Bolt == nil {
		return nil
	}
	return d.Bolt.Close()
}
