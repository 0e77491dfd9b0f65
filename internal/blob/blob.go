// Package blob provides the key-value blob transport the state store
// persists into. A blob store holds opaque JSON-encoded values under string
// keys and can notify the process when another context changes a key.
package blob

import "context"

// Store is a string-keyed blob store.
//
// Get returns the stored value and whether the key exists. Set overwrites
// the value whole. Watch returns a channel delivering the keys changed by
// other contexts sharing the same underlying store; drivers without a
// cross-context channel return a nil channel.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Watch(ctx context.Context) (<-chan string, error)
	Close() error
}
