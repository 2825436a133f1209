// Package kvstore is the process-wide local key-value store that the graph view
// persists its client-side state into (saved node layout, theme preference).
package kvstore

import "errors"

// ErrClosed is returned by stores after Close.
var ErrClosed = errors.New("kvstore: closed")

// Store is a flat string key-value store. Implementations are safe for concurrent
// use and resolve concurrent writers to the same key as last-write-wins.
type Store interface {
	// Get returns ok=false if the key was never set or was deleted.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	// Keys lists every stored key in lexical order.
	Keys() ([]string, error)
}
