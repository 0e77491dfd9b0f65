// Package models contains data structures for the application's domain models.
package models

import "slices"

// User represents a member of the Uknow network.
//
// Friends and Communities hold ids only; both are kept consistent with the
// mirror collections (the other user's Friends list, the community's Members
// list) by the store's mutators.
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"passwordHash"`
	ProfilePhoto string   `json:"profilePhoto"`
	Bio          string   `json:"bio"`
	Friends      []string `json:"friends"`
	Communities  []string `json:"communities"`
}

// IsFriend reports whether userID is in the user's friends list.
func (u *User) IsFriend(userID string) bool {
	return slices.Contains(u.Friends, userID)
}

// InCommunity reports whether communityID is in the user's communities list.
func (u *User) InCommunity(communityID string) bool {
	return slices.Contains(u.Communities, communityID)
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	u.Friends = slices.Clone(u.Friends)
	u.Communities = slices.Clone(u.Communities)
	return u
}
