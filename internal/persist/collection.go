// Package persist provides typed accessors over the blob transport. Each
// Collection binds one persisted key to one Go value and implements the
// load-once / save-on-change contract of the state store.
package persist

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/wesleybertipaglia/uknow/internal/blob"
	"github.com/wesleybertipaglia/uknow/internal/models"
	"github.com/wesleybertipaglia/uknow/internal/observability"
)

// Collection is a typed view of a single persisted key.
type Collection[T any] struct {
	store     blob.Store
	key       string
	defaultFn func() T
	logger    *observability.StoreLogger
}

// NewCollection binds key on store to values of type T. defaultFn supplies
// the value returned when the key is missing or its stored value fails to
// parse.
func NewCollection[T any](store blob.Store, key string, defaultFn func() T, logger *slog.Logger) *Collection[T] {
	return &Collection[T]{
		store:     store,
		key:       key,
		defaultFn: defaultFn,
		logger:    observability.NewStoreLogger(logger, key),
	}
}

// Key returns the persisted key the collection is bound to.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load reads and decodes the persisted value. A missing key yields the
// default silently; a malformed value yields the default and logs a
// MALFORMED_STATE error. The system keeps operating on defaults either way.
func (c *Collection[T]) Load(ctx context.Context) T {
	raw, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		c.logger.LogError(err, "load")
		return c.defaultFn()
	}
	if !found {
		return c.defaultFn()
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		c.logger.LogError(models.NewMalformedStateError(c.key, err), "load")
		return c.defaultFn()
	}
	return value
}

// Save encodes and writes the value whole. Persistence is best-effort:
// failures are logged and never propagated, and the caller keeps operating
// on its in-memory snapshot.
func (c *Collection[T]) Save(ctx context.Context, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.LogError(err, "save")
		return
	}
	if err := c.store.Set(ctx, c.key, raw); err != nil {
		c.logger.LogError(err, "save")
		return
	}
	c.logger.LogSave(len(raw))
}
