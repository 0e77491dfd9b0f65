package store

import (
	"context"
	"strings"

	"github.com/wesleybertipaglia/uknow/internal/models"
)

// ProfileUpdate is a field-level patch for a user's mutable profile fields.
// Nil fields are left unchanged. Identity fields (id, email, credential) and
// the relationship sets are never part of the update surface.
type ProfileUpdate struct {
	Name         *string
	Bio          *string
	ProfilePhoto *string
}

// CreateUser appends a new user to the collection. The id and email must be
// unique across users; email comparison is case-sensitive exact match.
func (s *Store) CreateUser(ctx context.Context, user models.User) error {
	if strings.TrimSpace(user.ID) == "" {
		return models.NewValidationError("user id must not be empty")
	}
	if strings.TrimSpace(user.Email) == "" {
		return models.NewValidationError("user email must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUser(user.ID) != nil {
		return models.NewValidationError("user id already in use")
	}
	for i := range s.users {
		if s.users[i].Email == user.Email {
			return models.NewEmailTakenError(user.Email)
		}
	}

	s.users = append(s.users, user.Clone())
	s.usersCol.Save(ctx, s.users)
	return nil
}

// UpdateProfile applies a field-level patch to the user's name, bio and
// profile photo.
func (s *Store) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUser(userID)
	if user == nil {
		return models.NewNotFoundError("user", userID)
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Bio != nil {
		user.Bio = *update.Bio
	}
	if update.ProfilePhoto != nil {
		user.ProfilePhoto = *update.ProfilePhoto
	}

	s.usersCol.Save(ctx, s.users)
	return nil
}

// ToggleFriend flips the friendship between actor and target symmetrically:
// both friends lists change together or not at all. It reports whether the
// two users are friends afterwards.
func (s *Store) ToggleFriend(ctx context.Context, actorID, targetID string) (bool, error) {
	if actorID == targetID {
		return false, models.NewValidationError("cannot friend yourself")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireActor(actorID)
	if err != nil {
		return false, err
	}
	target := s.findUser(targetID)
	if target == nil {
		return false, models.NewNotFoundError("user", targetID)
	}

	var friends bool
	actor.Friends, friends = toggleID(actor.Friends, targetID)
	target.Friends, _ = toggleID(target.Friends, actorID)

	s.usersCol.Save(ctx, s.users)
	return friends, nil
}
