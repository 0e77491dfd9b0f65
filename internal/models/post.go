package models

import (
	"slices"
	"time"
)

// Post represents a post in the global feed or inside a community.
// An empty CommunityID means the post belongs to the global feed.
type Post struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"authorId"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Likes       []string  `json:"likes"`
	Comments    []Comment `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
	CommunityID string    `json:"communityId,omitempty"`
}

// LikedBy reports whether userID is in the post's likes set.
func (p *Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

// Clone returns a deep copy of the post.
func (p Post) Clone() Post {
	p.Likes = slices.Clone(p.Likes)
	p.Comments = slices.Clone(p.Comments)
	return p
}

// Comment represents a comment on a post. Comments are owned by their parent
// post and are never referenced or mutated independently.
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
