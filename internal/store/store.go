// Package store implements the relational state store: the Users, Posts and
// Communities collections plus the mutators that keep their cross-references
// consistent. All state lives in memory; every mutation commits the affected
// collection snapshots whole to the blob transport.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wesleybertipaglia/uknow/internal/blob"
	"github.com/wesleybertipaglia/uknow/internal/models"
	"github.com/wesleybertipaglia/uknow/internal/persist"
)

// Options configures a Store.
type Options struct {
	// KeyPrefix scopes the persisted keys, e.g. "uknow" yields
	// "uknow-users", "uknow-posts", "uknow-communities".
	KeyPrefix string
	// Now supplies timestamps; defaults to time.Now. Tests inject a fake.
	Now func() time.Time
	// NewID supplies fresh entity ids; defaults to uuid.NewString.
	NewID func() string
}

// Store holds the in-memory snapshots and their persistence bindings.
//
// One mutex guards all three snapshots: mutators are read-modify-write over
// whole collections, so a single writer at a time is the concurrency policy
// (in-process mutual exclusion, last-write-wins across processes).
type Store struct {
	mu          sync.RWMutex
	users       []models.User
	posts       []models.Post
	communities []models.Community

	usersCol       *persist.Collection[[]models.User]
	postsCol       *persist.Collection[[]models.Post]
	communitiesCol *persist.Collection[[]models.Community]

	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	cancelWatch context.CancelFunc
	watchDone   chan struct{}
}

// New loads the three collections from bs and starts watching for changes
// made by other contexts. Callers own bs and close it after Close.
func New(ctx context.Context, bs blob.Store, logger *slog.Logger, opts Options) (*Store, error) {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "uknow"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		usersCol:       persist.NewCollection(bs, opts.KeyPrefix+"-users", func() []models.User { return nil }, logger),
		postsCol:       persist.NewCollection(bs, opts.KeyPrefix+"-posts", func() []models.Post { return nil }, logger),
		communitiesCol: persist.NewCollection(bs, opts.KeyPrefix+"-communities", func() []models.Community { return nil }, logger),
		logger:         logger,
		now:            opts.Now,
		newID:          opts.NewID,
	}

	s.users = s.usersCol.Load(ctx)
	s.posts = s.postsCol.Load(ctx)
	s.communities = s.communitiesCol.Load(ctx)

	watchCtx, cancel := context.WithCancel(context.Background())
	changes, err := bs.Watch(watchCtx)
	if err != nil {
		cancel()
		return nil, err
	}
	s.cancelWatch = cancel
	if changes != nil {
		s.watchDone = make(chan struct{})
		go s.watch(watchCtx, changes)
	}

	return s, nil
}

// Close stops the change watcher. It does not close the blob store.
func (s *Store) Close() {
	s.cancelWatch()
	if s.watchDone != nil {
		<-s.watchDone
	}
}

// watch refreshes the in-memory mirror whenever another context rewrites one
// of our keys. Reloads go through the same mutex as mutators, so a snapshot
// is always replaced whole, never observed half-written.
func (s *Store) watch(ctx context.Context, changes <-chan string) {
	defer close(s.watchDone)
	for {
		select {
		case <-ctx.Done():
			return
		case key, ok := <-changes:
			if !ok {
				return
			}
			s.reload(ctx, key)
		}
	}
}

func (s *Store) reload(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch key {
	case s.usersCol.Key():
		s.users = s.usersCol.Load(ctx)
	case s.postsCol.Key():
		s.posts = s.postsCol.Load(ctx)
	case s.communitiesCol.Key():
		s.communities = s.communitiesCol.Load(ctx)
	default:
		return
	}
	s.logger.Info("reloaded collection after external change", slog.String("key", key))
}

// findUser returns a pointer into the users snapshot. Callers hold the lock.
func (s *Store) findUser(id string) *models.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

// findPost returns a pointer into the posts snapshot. Callers hold the lock.
func (s *Store) findPost(id string) *models.Post {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return &s.posts[i]
		}
	}
	return nil
}

// findCommunity returns a pointer into the communities snapshot. Callers
// hold the lock.
func (s *Store) findCommunity(id string) *models.Community {
	for i := range s.communities {
		if s.communities[i].ID == id {
			return &s.communities[i]
		}
	}
	return nil
}

// requireActor resolves an actor id to a live user. Callers hold the lock.
func (s *Store) requireActor(actorID string) (*models.User, error) {
	actor := s.findUser(actorID)
	if actor == nil {
		return nil, models.NewNotFoundError("user", actorID)
	}
	return actor, nil
}

// toggleID flips membership of id in set and reports whether id is present
// afterwards.
func toggleID(set []string, id string) ([]string, bool) {
	for i, existing := range set {
		if existing == id {
			return append(set[:i], set[i+1:]...), false
		}
	}
	return append(set, id), true
}

// removeID removes id from set if present.
func removeID(set []string, id string) []string {
	for i, existing := range set {
		if existing == id {
			return append(set[:i], set[i+1:]...)
		}
	}
	return set
}
