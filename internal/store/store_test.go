package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleybertipaglia/uknow/internal/blob"
	"github.com/wesleybertipaglia/uknow/internal/models"
)

// testClock hands out strictly increasing timestamps one second apart.
type testClock struct {
	current time.Time
}

func (c *testClock) Now() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

func newTestStore(t *testing.T) (*Store, *blob.MemoryStore) {
	t.Helper()
	bs := blob.NewMemoryStore()
	st := newStoreOn(t, bs)
	return st, bs
}

func newStoreOn(t *testing.T, bs blob.Store) *Store {
	t.Helper()
	clock := &testClock{current: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	var seq int
	st, err := New(context.Background(), bs, slog.New(slog.NewTextHandler(io.Discard, nil)), Options{
		Now: clock.Now,
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%03d", seq)
		},
	})
	require.NoError(t, err)
	t.Cleanup(st.Close)
	return st
}

func addTestUser(t *testing.T, st *Store, id, name string) models.User {
	t.Helper()
	user := models.User{
		ID:          id,
		Name:        name,
		Email:       id + "@example.com",
		Friends:     []string{},
		Communities: []string{},
	}
	require.NoError(t, st.CreateUser(context.Background(), user))
	return user
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateUser(ctx, models.User{ID: "u1", Email: "a@x.com"}))
	err := st.CreateUser(ctx, models.User{ID: "u2", Email: "a@x.com"})
	require.Error(t, err)
	assert.Equal(t, models.CodeEmailTaken, models.CodeOf(err))
	assert.Len(t, st.Users(), 1)
}

func TestCreateUserRejectsDuplicateID(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateUser(ctx, models.User{ID: "u1", Email: "a@x.com"}))
	err := st.CreateUser(ctx, models.User{ID: "u1", Email: "b@x.com"})
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}

func TestToggleFriendSymmetry(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	bob := addTestUser(t, st, "bob", "Bob")

	// After any sequence of toggles, both sides always agree.
	sequences := [][2]string{
		{alice.ID, bob.ID},
		{bob.ID, alice.ID},
		{alice.ID, bob.ID},
		{alice.ID, bob.ID},
	}
	for _, pair := range sequences {
		_, err := st.ToggleFriend(ctx, pair[0], pair[1])
		require.NoError(t, err)

		a, _ := st.User(alice.ID)
		b, _ := st.User(bob.ID)
		assert.Equal(t, a.IsFriend(bob.ID), b.IsFriend(alice.ID))
	}

	// The sequence above nets out to friends.
	a, _ := st.User(alice.ID)
	assert.True(t, a.IsFriend(bob.ID))
}

func TestToggleFriendSelfRejected(t *testing.T) {
	st, _ := newTestStore(t)
	alice := addTestUser(t, st, "alice", "Alice")

	_, err := st.ToggleFriend(context.Background(), alice.ID, alice.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}

func TestToggleFriendUnknownTarget(t *testing.T) {
	st, _ := newTestStore(t)
	alice := addTestUser(t, st, "alice", "Alice")

	_, err := st.ToggleFriend(context.Background(), alice.ID, "ghost")
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))

	a, _ := st.User(alice.ID)
	assert.Empty(t, a.Friends)
}

func TestToggleLikePairIsIdempotent(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	bob := addTestUser(t, st, "bob", "Bob")

	post, err := st.AddPost(ctx, alice.ID, "hello", "", "")
	require.NoError(t, err)

	liked, err := st.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = st.ToggleLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	got, found := st.Post(post.ID)
	require.True(t, found)
	assert.Empty(t, got.Likes)
}

func TestToggleLikeUniqueness(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	bob := addTestUser(t, st, "bob", "Bob")

	post, err := st.AddPost(ctx, alice.ID, "hello", "", "")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := st.ToggleLike(ctx, bob.ID, post.ID)
		require.NoError(t, err)

		got, _ := st.Post(post.ID)
		seen := map[string]int{}
		for _, id := range got.Likes {
			seen[id]++
			assert.Equal(t, 1, seen[id], "user id appears more than once in likes")
		}
	}
}

func TestToggleLikeMissingPost(t *testing.T) {
	st, _ := newTestStore(t)
	alice := addTestUser(t, st, "alice", "Alice")

	_, err := st.ToggleLike(context.Background(), alice.ID, "nope")
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestAddPostRequiresContentOrImage(t *testing.T) {
	st, _ := newTestStore(t)
	alice := addTestUser(t, st, "alice", "Alice")
	ctx := context.Background()

	_, err := st.AddPost(ctx, alice.ID, "  ", "", "")
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))

	// Image-only posts are fine.
	post, err := st.AddPost(ctx, alice.ID, "", "https://example.com/pic.png", "")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, post.AuthorID)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
}

func TestAddPostUnknownActor(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.AddPost(context.Background(), "ghost", "hello", "", "")
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
	assert.Empty(t, st.Posts())
}

func TestAddPostInCommunityRequiresMembership(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	bob := addTestUser(t, st, "bob", "Bob")

	community, err := st.AddCommunity(ctx, alice.ID, "Trekkers", "", "")
	require.NoError(t, err)

	_, err = st.AddPost(ctx, bob.ID, "hi", "", community.ID)
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))

	_, err = st.AddPost(ctx, alice.ID, "hi", "", community.ID)
	require.NoError(t, err)

	_, err = st.AddPost(ctx, alice.ID, "hi", "", "no-such-community")
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestAddCommentAppendOnly(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	bob := addTestUser(t, st, "bob", "Bob")

	post, err := st.AddPost(ctx, alice.ID, "hello", "", "")
	require.NoError(t, err)

	bodies := []string{"first", "second", "third"}
	for i, body := range bodies {
		before, _ := st.Post(post.ID)

		comment, err := st.AddComment(ctx, bob.ID, post.ID, body)
		require.NoError(t, err)
		assert.Equal(t, body, comment.Content)

		after, _ := st.Post(post.ID)
		require.Len(t, after.Comments, i+1, "comment count grows by exactly one")
		for j := range before.Comments {
			assert.Equal(t, before.Comments[j].ID, after.Comments[j].ID, "existing comments keep their order")
		}
	}
}

func TestAddCommentRejectsEmptyContent(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	post, err := st.AddPost(ctx, alice.ID, "hello", "", "")
	require.NoError(t, err)

	_, err = st.AddComment(ctx, alice.ID, post.ID, "   ")
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}

func TestUpdatePostImageSentinel(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")

	post, err := st.AddPost(ctx, alice.ID, "hello", "https://example.com/a.png", "")
	require.NoError(t, err)

	// nil image pointer keeps the current image.
	require.NoError(t, st.UpdatePost(ctx, alice.ID, post.ID, "edited", nil))
	got, _ := st.Post(post.ID)
	assert.Equal(t, "edited", got.Content)
	assert.Equal(t, "https://example.com/a.png", got.ImageURL)

	// pointer to empty string clears it.
	empty := ""
	require.NoError(t, st.UpdatePost(ctx, alice.ID, post.ID, "edited again", &empty))
	got, _ = st.Post(post.ID)
	assert.Empty(t, got.ImageURL)

	// clearing both content and image is rejected.
	err = st.UpdatePost(ctx, alice.ID, post.ID, "", &empty)
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.CodeOf(err))
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	bob := addTestUser(t, st, "bob", "Bob")

	post, err := st.AddPost(ctx, alice.ID, "hello", "", "")
	require.NoError(t, err)

	err = st.UpdatePost(ctx, bob.ID, post.ID, "hijacked", nil)
	require.Error(t, err)
	assert.True(t, models.IsNotOwner(err))

	got, _ := st.Post(post.ID)
	assert.Equal(t, "hello", got.Content)
}

func TestDeletePostAuthorOnly(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	bob := addTestUser(t, st, "bob", "Bob")

	post, err := st.AddPost(ctx, alice.ID, "hello", "", "")
	require.NoError(t, err)

	err = st.DeletePost(ctx, bob.ID, post.ID)
	require.Error(t, err)
	assert.True(t, models.IsNotOwner(err))

	require.NoError(t, st.DeletePost(ctx, alice.ID, post.ID))
	_, found := st.Post(post.ID)
	assert.False(t, found)

	err = st.DeletePost(ctx, alice.ID, post.ID)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestUpdateProfilePatchesOnlyMutableFields(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	bob := addTestUser(t, st, "bob", "Bob")
	_, err := st.ToggleFriend(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	name := "Alice B."
	bio := "new bio"
	require.NoError(t, st.UpdateProfile(ctx, alice.ID, ProfileUpdate{Name: &name, Bio: &bio}))

	got, _ := st.User(alice.ID)
	assert.Equal(t, "Alice B.", got.Name)
	assert.Equal(t, "new bio", got.Bio)
	assert.Equal(t, alice.Email, got.Email)
	assert.True(t, got.IsFriend(bob.ID), "friend list untouched by profile patch")

	err = st.UpdateProfile(ctx, "ghost", ProfileUpdate{Name: &name})
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestMembershipSymmetry(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	bob := addTestUser(t, st, "bob", "Bob")

	community, err := st.AddCommunity(ctx, alice.ID, "Trekkers", "hiking", "")
	require.NoError(t, err)

	// Ownership implies initial membership, on both sides.
	a, _ := st.User(alice.ID)
	c, _ := st.Community(community.ID)
	assert.True(t, a.InCommunity(community.ID))
	assert.True(t, c.HasMember(alice.ID))
	assert.Equal(t, alice.ID, c.OwnerID)

	for i := 0; i < 3; i++ {
		_, err := st.ToggleCommunityMembership(ctx, bob.ID, community.ID)
		require.NoError(t, err)

		b, _ := st.User(bob.ID)
		c, _ := st.Community(community.ID)
		assert.Equal(t, b.InCommunity(community.ID), c.HasMember(bob.ID))
	}

	b, _ := st.User(bob.ID)
	assert.True(t, b.InCommunity(community.ID))
}

func TestUpdateCommunityOwnerOnly(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	bob := addTestUser(t, st, "bob", "Bob")

	community, err := st.AddCommunity(ctx, alice.ID, "Trekkers", "hiking", "")
	require.NoError(t, err)

	name := "Hijacked"
	err = st.UpdateCommunity(ctx, bob.ID, community.ID, CommunityUpdate{Name: &name})
	require.Error(t, err)
	assert.True(t, models.IsNotOwner(err))

	got, _ := st.Community(community.ID)
	assert.Equal(t, "Trekkers", got.Name)

	desc := "mountains and more"
	require.NoError(t, st.UpdateCommunity(ctx, alice.ID, community.ID, CommunityUpdate{Description: &desc}))
	got, _ = st.Community(community.ID)
	assert.Equal(t, "mountains and more", got.Description)
	assert.Equal(t, "Trekkers", got.Name, "nil fields stay unchanged")
}

func TestDeleteCommunityCascades(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")
	bob := addTestUser(t, st, "bob", "Bob")

	community, err := st.AddCommunity(ctx, alice.ID, "Trekkers", "hiking", "")
	require.NoError(t, err)
	_, err = st.ToggleCommunityMembership(ctx, bob.ID, community.ID)
	require.NoError(t, err)

	inCommunity, err := st.AddPost(ctx, bob.ID, "trail pics", "", community.ID)
	require.NoError(t, err)
	inFeed, err := st.AddPost(ctx, bob.ID, "unrelated", "", "")
	require.NoError(t, err)

	// Non-owner delete fails and changes nothing.
	err = st.DeleteCommunity(ctx, bob.ID, community.ID)
	require.Error(t, err)
	assert.True(t, models.IsNotOwner(err))
	_, found := st.Community(community.ID)
	assert.True(t, found)

	require.NoError(t, st.DeleteCommunity(ctx, alice.ID, community.ID))

	_, found = st.Community(community.ID)
	assert.False(t, found)
	_, found = st.Post(inCommunity.ID)
	assert.False(t, found, "community posts are cascade-deleted")
	_, found = st.Post(inFeed.ID)
	assert.True(t, found, "feed posts survive the cascade")

	for _, user := range st.Users() {
		assert.NotContains(t, user.Communities, community.ID)
	}
}

func TestDeleteCommunityNotFound(t *testing.T) {
	st, _ := newTestStore(t)
	alice := addTestUser(t, st, "alice", "Alice")

	err := st.DeleteCommunity(context.Background(), alice.ID, "nope")
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestSnapshotPersistsAndReloads(t *testing.T) {
	bs := blob.NewMemoryStore()
	st := newStoreOn(t, bs)
	ctx := context.Background()

	alice := addTestUser(t, st, "alice", "Alice")
	_, err := st.AddPost(ctx, alice.ID, "hello", "", "")
	require.NoError(t, err)
	st.Close()

	// A second store over the same blobs sees the committed state.
	st2 := newStoreOn(t, bs)
	users := st2.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Len(t, st2.Posts(), 1)
}

func TestExternalChangePropagates(t *testing.T) {
	bs := blob.NewMemoryStore()
	writer := newStoreOn(t, bs)
	reader := newStoreOn(t, bs)

	addTestUser(t, writer, "alice", "Alice")

	require.Eventually(t, func() bool {
		_, found := reader.User("alice")
		return found
	}, 2*time.Second, 10*time.Millisecond, "reader store refreshes from the shared blob store")
}

func TestQueriesReturnCopies(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()
	alice := addTestUser(t, st, "alice", "Alice")

	post, err := st.AddPost(ctx, alice.ID, "hello", "", "")
	require.NoError(t, err)

	got, _ := st.Post(post.ID)
	got.Likes = append(got.Likes, "intruder")
	got.Content = "mutated"

	fresh, _ := st.Post(post.ID)
	assert.Empty(t, fresh.Likes)
	assert.Equal(t, "hello", fresh.Content)
}
