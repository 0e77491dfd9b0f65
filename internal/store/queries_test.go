package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleybertipaglia/uknow/internal/models"
)

func TestFeedNewestFirst(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")

	// The test clock advances one second per post: t1 < t2 < t3.
	p1, err := st.AddPost(ctx, alice.ID, "first", "", "")
	require.NoError(t, err)
	p2, err := st.AddPost(ctx, alice.ID, "second", "", "")
	require.NoError(t, err)
	p3, err := st.AddPost(ctx, alice.ID, "third", "", "")
	require.NoError(t, err)

	feed := st.Feed()
	require.Len(t, feed, 3)
	assert.Equal(t, []string{p3.ID, p2.ID, p1.ID}, []string{feed[0].ID, feed[1].ID, feed[2].ID})
}

func TestFeedExcludesCommunityPosts(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")

	community, err := st.AddCommunity(ctx, alice.ID, "Trekkers", "", "")
	require.NoError(t, err)

	inFeed, err := st.AddPost(ctx, alice.ID, "global", "", "")
	require.NoError(t, err)
	inCommunity, err := st.AddPost(ctx, alice.ID, "scoped", "", community.ID)
	require.NoError(t, err)

	feed := st.Feed()
	require.Len(t, feed, 1)
	assert.Equal(t, inFeed.ID, feed[0].ID)

	scoped := st.CommunityPosts(community.ID)
	require.Len(t, scoped, 1)
	assert.Equal(t, inCommunity.ID, scoped[0].ID)
}

func TestPostsByAuthor(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	bob := addTestUser(t, st, "bob", "Bob")

	_, err := st.AddPost(ctx, alice.ID, "a1", "", "")
	require.NoError(t, err)
	latest, err := st.AddPost(ctx, alice.ID, "a2", "", "")
	require.NoError(t, err)
	_, err = st.AddPost(ctx, bob.ID, "b1", "", "")
	require.NoError(t, err)

	posts := st.PostsByAuthor(alice.ID)
	require.Len(t, posts, 2)
	assert.Equal(t, latest.ID, posts[0].ID, "newest first")
	for _, p := range posts {
		assert.Equal(t, alice.ID, p.AuthorID)
	}
}

func TestFriendsAndMembersViews(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	bob := addTestUser(t, st, "bob", "Bob")
	carol := addTestUser(t, st, "carol", "Carol")

	_, err := st.ToggleFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	friends, err := st.Friends(alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, bob.ID, friends[0].ID)

	_, err = st.Friends("ghost")
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))

	community, err := st.AddCommunity(ctx, alice.ID, "Trekkers", "", "")
	require.NoError(t, err)
	_, err = st.ToggleCommunityMembership(ctx, carol.ID, community.ID)
	require.NoError(t, err)

	members, err := st.Members(community.ID)
	require.NoError(t, err)
	ids := []string{members[0].ID, members[1].ID}
	assert.ElementsMatch(t, []string{alice.ID, carol.ID}, ids)

	_, err = st.Members("ghost")
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestUserByEmailExactMatch(t *testing.T) {
	st, _ := newTestStore(t)
	addTestUser(t, st, "alice", "Alice")

	_, found := st.UserByEmail("alice@example.com")
	assert.True(t, found)

	// Case-sensitive exact match only.
	_, found = st.UserByEmail("Alice@example.com")
	assert.False(t, found)
}
