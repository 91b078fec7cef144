package storage

import "errors"

// ErrNotFound is returned by BlobStore.Get when nothing is stored under the key.
var ErrNotFound = errors.New("blob not found")

// BlobStore persists opaque documents under string keys.
type BlobStore interface {
	// Lifecycle
	Init() error
	Close() error

	Get(key string) ([]byte, error)
	Put(key string, data []byte) error

	// GetConfigPath returns a display-safe description of the location.
	GetConfigPath() string
}
