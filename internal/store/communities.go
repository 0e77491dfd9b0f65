package store

import (
	"context"
	"strings"

	"github.com/wesleybertipaglia/uknow/internal/models"
)

// CommunityUpdate is a field-level patch for a community's mutable fields.
// Nil fields are left unchanged. Ownership and membership are not part of
// the update surface.
type CommunityUpdate struct {
	Name        *string
	Description *string
	CoverImage  *string
}

// AddCommunity creates a community owned by actor. Ownership implies initial
// membership: the member set starts as {actor} and the actor's communities
// list gains the new id in the same transaction.
func (s *Store) AddCommunity(ctx context.Context, actorID, name, description, coverImage string) (models.Community, error) {
	if strings.TrimSpace(name) == "" {
		return models.Community{}, models.NewValidationError("a community needs a name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireActor(actorID)
	if err != nil {
		return models.Community{}, err
	}

	community := models.Community{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		CoverImage:  coverImage,
		Members:     []string{actorID},
		OwnerID:     actorID,
	}
	s.communities = append(s.communities, community)
	actor.Communities = append(actor.Communities, community.ID)

	s.communitiesCol.Save(ctx, s.communities)
	s.usersCol.Save(ctx, s.users)
	return community.Clone(), nil
}

// ToggleCommunityMembership flips the actor's membership symmetrically
// between the actor's communities list and the community's member set. It
// reports whether the actor is a member afterwards.
func (s *Store) ToggleCommunityMembership(ctx context.Context, actorID, communityID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireActor(actorID)
	if err != nil {
		return false, err
	}
	community := s.findCommunity(communityID)
	if community == nil {
		return false, models.NewNotFoundError("community", communityID)
	}

	var member bool
	actor.Communities, member = toggleID(actor.Communities, communityID)
	community.Members, _ = toggleID(community.Members, actorID)

	s.usersCol.Save(ctx, s.users)
	s.communitiesCol.Save(ctx, s.communities)
	return member, nil
}

// UpdateCommunity applies a field-level patch to the community. Owner only.
func (s *Store) UpdateCommunity(ctx context.Context, actorID, communityID string, update CommunityUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireActor(actorID); err != nil {
		return err
	}
	community := s.findCommunity(communityID)
	if community == nil {
		return models.NewNotFoundError("community", communityID)
	}
	if community.OwnerID != actorID {
		return models.NewNotOwnerError("community", communityID)
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return models.NewValidationError("a community needs a name")
		}
		community.Name = *update.Name
	}
	if update.Description != nil {
		community.Description = *update.Description
	}
	if update.CoverImage != nil {
		community.CoverImage = *update.CoverImage
	}

	s.communitiesCol.Save(ctx, s.communities)
	return nil
}

// DeleteCommunity removes the community and cascades: every post in it is
// deleted and its id is dropped from every user's communities list. Owner
// only.
func (s *Store) DeleteCommunity(ctx context.Context, actorID, communityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireActor(actorID); err != nil {
		return err
	}
	community := s.findCommunity(communityID)
	if community == nil {
		return models.NewNotFoundError("community", communityID)
	}
	if community.OwnerID != actorID {
		return models.NewNotOwnerError("community", communityID)
	}

	keptCommunities := s.communities[:0]
	for i := range s.communities {
		if s.communities[i].ID != communityID {
			keptCommunities = append(keptCommunities, s.communities[i])
		}
	}
	s.communities = keptCommunities

	keptPosts := s.posts[:0]
	for i := range s.posts {
		if s.posts[i].CommunityID != communityID {
			keptPosts = append(keptPosts, s.posts[i])
		}
	}
	s.posts = keptPosts

	for i := range s.users {
		s.users[i].Communities = removeID(s.users[i].Communities, communityID)
	}

	s.communitiesCol.Save(ctx, s.communities)
	s.postsCol.Save(ctx, s.posts)
	s.usersCol.Save(ctx, s.users)
	return nil
}
