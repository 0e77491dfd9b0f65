package blob

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a blob store backed by Redis. Every Set publishes the
// changed key on a shared pub/sub channel so that other processes watching
// the same prefix can refresh their in-memory mirrors.
type RedisStore struct {
	client  *redis.Client
	channel string
	// origin identifies this process on the pub/sub channel so a watcher
	// can ignore its own writes.
	origin string
}

// NewRedisStore creates a RedisStore on client. The prefix scopes the
// notification channel, not the keys; callers pass fully qualified keys.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client:  client,
		channel: prefix + ":changes",
		origin:  uuid.NewString(),
	}
}

// Get fetches the value stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set overwrites the value stored under key and announces the change.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return err
	}
	// Notification is best-effort; a missed publish only delays another
	// context until its next read.
	_ = s.client.Publish(ctx, s.channel, s.origin+" "+key).Err()
	return nil
}

// Watch subscribes to the change channel and delivers keys written by other
// processes. The channel closes when ctx is canceled.
func (s *RedisStore) Watch(ctx context.Context) (<-chan string, error) {
	sub := s.client.Subscribe(ctx, s.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	keys := make(chan string, 16)
	go func() {
		defer close(keys)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				origin, key, found := strings.Cut(msg.Payload, " ")
				if !found || origin == s.origin {
					continue
				}
				select {
				case keys <- key:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return keys, nil
}

// Close releases the underlying client connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
