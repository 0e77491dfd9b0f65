package models

import "slices"

// Community represents a user-owned group that members join and post into.
type Community struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CoverImage  string   `json:"coverImage"`
	Members     []string `json:"members"`
	OwnerID     string   `json:"ownerId"`
}

// HasMember reports whether userID is in the community's member set.
func (c *Community) HasMember(userID string) bool {
	return slices.Contains(c.Members, userID)
}

// Clone returns a deep copy of the community.
func (c Community) Clone() Community {
	c.Members = slices.Clone(c.Members)
	return c
}
