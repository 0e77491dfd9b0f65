// Package auth implements the session gate: login, signup, logout and
// current-user resolution over the user collection, with a persisted session
// record pointing at the logged-in user.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wesleybertipaglia/uknow/internal/blob"
	"github.com/wesleybertipaglia/uknow/internal/models"
	"github.com/wesleybertipaglia/uknow/internal/persist"
	"github.com/wesleybertipaglia/uknow/internal/store"
)

// dummyHash pads the failed-lookup path of Login so it performs the same
// bcrypt work as a real comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("uknow-timing-pad"), bcrypt.DefaultCost)

// Session is the persisted session record. Absence (a nil record) means
// logged out.
type Session struct {
	UserID string `json:"userId"`
}

// Options configures a Service.
type Options struct {
	// KeyPrefix must match the store's prefix; the session persists under
	// "<prefix>-session".
	KeyPrefix string
	// BcryptCost for new credentials; defaults to bcrypt.DefaultCost.
	BcryptCost int
	// NewID supplies ids for signed-up users; defaults to uuid.NewString.
	NewID func() string
}

// Service gates which user is current for all store mutations that require
// an actor.
type Service struct {
	store    *store.Store
	sessions *persist.Collection[*Session]
	cost     int
	newID    func() string
}

// NewService returns a session gate over st, persisting the session record
// into bs.
func NewService(st *store.Store, bs blob.Store, logger *slog.Logger, opts Options) *Service {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "uknow"
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Service{
		store:    st,
		sessions: persist.NewCollection(bs, opts.KeyPrefix+"-session", func() *Session { return nil }, logger),
		cost:     opts.BcryptCost,
		newID:    opts.NewID,
	}
}

// Login verifies the credentials and persists a session pointing at the
// matched user. Email matching is case-sensitive and exact. A failed login
// leaves the current session untouched.
func (s *Service) Login(ctx context.Context, email, password string) (models.User, error) {
	user, found := s.store.UserByEmail(email)
	if !found {
		// Burn a comparison anyway so a missing account costs the same as a
		// wrong password.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return models.User{}, models.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, models.NewInvalidCredentialsError()
	}

	s.sessions.Save(ctx, &Session{UserID: user.ID})
	return user, nil
}

// Signup creates a new user with empty friends, communities and bio, hashes
// the credential, persists a session pointing at the new user and returns
// it. When no profile photo is supplied a generated placeholder is used.
func (s *Service) Signup(ctx context.Context, name, email, password, profilePhoto string) (models.User, error) {
	if strings.TrimSpace(name) == "" {
		return models.User{}, models.NewValidationError("name must not be empty")
	}
	if strings.TrimSpace(email) == "" {
		return models.User{}, models.NewValidationError("email must not be empty")
	}
	if password == "" {
		return models.User{}, models.NewValidationError("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, err
	}

	id := s.newID()
	if profilePhoto == "" {
		profilePhoto = fmt.Sprintf("https://picsum.photos/seed/%s/200/200", id)
	}
	user := models.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		ProfilePhoto: profilePhoto,
		Friends:      []string{},
		Communities:  []string{},
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return models.User{}, err
	}

	s.sessions.Save(ctx, &Session{UserID: user.ID})
	return user, nil
}

// Logout clears the session record unconditionally. Idempotent.
func (s *Service) Logout(ctx context.Context) {
	s.sessions.Save(ctx, nil)
}

// CurrentUser resolves the session against the live user collection. It
// returns false when there is no session or when the referenced user no
// longer exists.
func (s *Service) CurrentUser(ctx context.Context) (models.User, bool) {
	session := s.sessions.Load(ctx)
	if session == nil || session.UserID == "" {
		return models.User{}, false
	}
	return s.store.User(session.UserID)
}
