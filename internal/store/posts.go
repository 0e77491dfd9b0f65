package store

import (
	"context"
	"strings"

	"github.com/wesleybertipaglia/uknow/internal/models"
)

// AddPost creates a post authored by actor. At least one of content and
// imageURL must be present. A non-empty communityID must reference an
// existing community the actor is a member of; empty means the global feed.
func (s *Store) AddPost(ctx context.Context, actorID, content, imageURL, communityID string) (models.Post, error) {
	if strings.TrimSpace(content) == "" && imageURL == "" {
		return models.Post{}, models.NewValidationError("a post needs content or an image")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	actor, err := s.requireActor(actorID)
	if err != nil {
		return models.Post{}, err
	}
	if communityID != "" {
		community := s.findCommunity(communityID)
		if community == nil {
			return models.Post{}, models.NewNotFoundError("community", communityID)
		}
		if !community.HasMember(actor.ID) {
			return models.Post{}, models.NewValidationError("only members can post in a community")
		}
	}

	post := models.Post{
		ID:          s.newID(),
		AuthorID:    actorID,
		Content:     content,
		ImageURL:    imageURL,
		Likes:       []string{},
		Comments:    []models.Comment{},
		CreatedAt:   s.now(),
		CommunityID: communityID,
	}
	s.posts = append(s.posts, post)
	s.postsCol.Save(ctx, s.posts)
	return post.Clone(), nil
}

// ToggleLike flips the actor's like on the post and reports whether the post
// is liked by the actor afterwards.
func (s *Store) ToggleLike(ctx context.Context, actorID, postID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireActor(actorID); err != nil {
		return false, err
	}
	post := s.findPost(postID)
	if post == nil {
		return false, models.NewNotFoundError("post", postID)
	}

	var liked bool
	post.Likes, liked = toggleID(post.Likes, actorID)
	s.postsCol.Save(ctx, s.posts)
	return liked, nil
}

// AddComment appends a comment to the post's comment sequence. Existing
// comments are never reordered.
func (s *Store) AddComment(ctx context.Context, actorID, postID, content string) (models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return models.Comment{}, models.NewValidationError("a comment needs content")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireActor(actorID); err != nil {
		return models.Comment{}, err
	}
	post := s.findPost(postID)
	if post == nil {
		return models.Comment{}, models.NewNotFoundError("post", postID)
	}

	comment := models.Comment{
		ID:        s.newID(),
		AuthorID:  actorID,
		Content:   content,
		CreatedAt: s.now(),
	}
	post.Comments = append(post.Comments, comment)
	s.postsCol.Save(ctx, s.posts)
	return comment, nil
}

// UpdatePost replaces the post's content and image atomically. The image
// sentinel distinguishes clearing from keeping: nil leaves the image alone,
// a pointer to the empty string removes it. Only the author may edit.
func (s *Store) UpdatePost(ctx context.Context, actorID, postID, content string, imageURL *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireActor(actorID); err != nil {
		return err
	}
	post := s.findPost(postID)
	if post == nil {
		return models.NewNotFoundError("post", postID)
	}
	if post.AuthorID != actorID {
		return models.NewNotOwnerError("post", postID)
	}

	newImage := post.ImageURL
	if imageURL != nil {
		newImage = *imageURL
	}
	if strings.TrimSpace(content) == "" && newImage == "" {
		return models.NewValidationError("a post needs content or an image")
	}

	post.Content = content
	post.ImageURL = newImage
	s.postsCol.Save(ctx, s.posts)
	return nil
}

// DeletePost removes the post. Only the author may delete.
func (s *Store) DeletePost(ctx context.Context, actorID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireActor(actorID); err != nil {
		return err
	}
	post := s.findPost(postID)
	if post == nil {
		return models.NewNotFoundError("post", postID)
	}
	if post.AuthorID != actorID {
		return models.NewNotOwnerError("post", postID)
	}

	kept := s.posts[:0]
	for i := range s.posts {
		if s.posts[i].ID != postID {
			kept = append(kept, s.posts[i])
		}
	}
	s.posts = kept
	s.postsCol.Save(ctx, s.posts)
	return nil
}
