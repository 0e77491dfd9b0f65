package store

import (
	"slices"

	"github.com/wesleybertipaglia/uknow/internal/models"
)

// Derived read views. All queries return deep copies of the snapshot so
// callers can never mutate store state through a result, and posts are
// sorted newest first with ties kept in insertion order.

// User returns the user with the given id.
func (s *Store) User(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user := s.findUser(id); user != nil {
		return user.Clone(), true
	}
	return models.User{}, false
}

// UserByEmail returns the user with the given email (case-sensitive exact
// match).
func (s *Store) UserByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].Email == email {
			return s.users[i].Clone(), true
		}
	}
	return models.User{}, false
}

// Users returns all users in insertion order.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUsers(s.users)
}

// Post returns the post with the given id.
func (s *Store) Post(id string) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if post := s.findPost(id); post != nil {
		return post.Clone(), true
	}
	return models.Post{}, false
}

// Posts returns all posts in insertion order.
func (s *Store) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePosts(s.posts)
}

// Feed returns the global feed: posts with no community, newest first.
func (s *Store) Feed() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var feed []models.Post
	for i := range s.posts {
		if s.posts[i].CommunityID == "" {
			feed = append(feed, s.posts[i].Clone())
		}
	}
	sortNewestFirst(feed)
	return feed
}

// CommunityPosts returns the community's posts, newest first.
func (s *Store) CommunityPosts(communityID string) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var posts []models.Post
	for i := range s.posts {
		if s.posts[i].CommunityID == communityID {
			posts = append(posts, s.posts[i].Clone())
		}
	}
	sortNewestFirst(posts)
	return posts
}

// PostsByAuthor returns the author's posts, newest first.
func (s *Store) PostsByAuthor(authorID string) []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var posts []models.Post
	for i := range s.posts {
		if s.posts[i].AuthorID == authorID {
			posts = append(posts, s.posts[i].Clone())
		}
	}
	sortNewestFirst(posts)
	return posts
}

// Community returns the community with the given id.
func (s *Store) Community(id string) (models.Community, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if community := s.findCommunity(id); community != nil {
		return community.Clone(), true
	}
	return models.Community{}, false
}

// Communities returns all communities in insertion order.
func (s *Store) Communities() []models.Community {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Community, 0, len(s.communities))
	for i := range s.communities {
		out = append(out, s.communities[i].Clone())
	}
	return out
}

// Friends returns the users in the given user's friends list.
func (s *Store) Friends(userID string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user := s.findUser(userID)
	if user == nil {
		return nil, models.NewNotFoundError("user", userID)
	}
	var friends []models.User
	for i := range s.users {
		if user.IsFriend(s.users[i].ID) {
			friends = append(friends, s.users[i].Clone())
		}
	}
	return friends, nil
}

// Members returns the users in the community's member set.
func (s *Store) Members(communityID string) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	community := s.findCommunity(communityID)
	if community == nil {
		return nil, models.NewNotFoundError("community", communityID)
	}
	var members []models.User
	for i := range s.users {
		if community.HasMember(s.users[i].ID) {
			members = append(members, s.users[i].Clone())
		}
	}
	return members, nil
}

func cloneUsers(users []models.User) []models.User {
	out := make([]models.User, 0, len(users))
	for i := range users {
		out = append(out, users[i].Clone())
	}
	return out
}

func clonePosts(posts []models.Post) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for i := range posts {
		out = append(out, posts[i].Clone())
	}
	return out
}

// sortNewestFirst orders posts by CreatedAt descending. The sort is stable,
// so posts created in the same millisecond keep their insertion order.
func sortNewestFirst(posts []models.Post) {
	slices.SortStableFunc(posts, func(a, b models.Post) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
