package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wesleybertipaglia/uknow/internal/models"
	"github.com/wesleybertipaglia/uknow/internal/store"
)

// communityPreset names the demo communities.
var communityPreset = []struct {
	Name        string
	Description string
}{
	{"Mountain Trekkers", "A group for people who love hiking, climbing, and all things mountains."},
	{"Food Lovers", "Share your favorite recipes, restaurant finds, and culinary adventures."},
	{"Bookworm Corner", "A cozy spot for readers to discuss their favorite books."},
}

// Demo populates an empty store with a small network: five users with
// friendships, three owned communities with members, and a handful of liked
// and commented posts in the feed and inside communities.
//
// All writes go through the store's mutators, so the seeded data satisfies
// the same invariants as user-driven data. Demo is a no-op when the store
// already has users.
func Demo(ctx context.Context, st *store.Store, logger *slog.Logger, bcryptCost int) error {
	if logger == nil {
		logger = slog.Default()
	}
	if len(st.Users()) > 0 {
		logger.Info("seed skipped, store already has users")
		return nil
	}

	factory, err := NewFactory(bcryptCost)
	if err != nil {
		return err
	}

	users := make([]models.User, 0, 5)
	for i := 0; i < 5; i++ {
		user := factory.BuildUser(func(u *models.User) {
			u.Email = fmt.Sprintf("demo%d@uknow.local", i+1)
		})
		if err := st.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("seeding user %d: %w", i+1, err)
		}
		users = append(users, user)
	}

	// A small friendship graph: the first user knows everyone, plus one
	// side pair.
	for _, other := range users[1:] {
		if _, err := st.ToggleFriend(ctx, users[0].ID, other.ID); err != nil {
			return fmt.Errorf("seeding friendship: %w", err)
		}
	}
	if _, err := st.ToggleFriend(ctx, users[1].ID, users[2].ID); err != nil {
		return fmt.Errorf("seeding friendship: %w", err)
	}

	communities := make([]models.Community, 0, len(communityPreset))
	for i, preset := range communityPreset {
		owner := users[i%len(users)]
		community, err := st.AddCommunity(ctx, owner.ID, preset.Name, preset.Description, factory.CoverImageURL())
		if err != nil {
			return fmt.Errorf("seeding community %q: %w", preset.Name, err)
		}
		communities = append(communities, community)
		// Two more members per community.
		for j := 1; j <= 2; j++ {
			member := users[(i+j)%len(users)]
			if member.ID == owner.ID {
				continue
			}
			if _, err := st.ToggleCommunityMembership(ctx, member.ID, community.ID); err != nil {
				return fmt.Errorf("seeding membership: %w", err)
			}
		}
	}

	// Feed posts with likes and comments.
	for i, author := range users[:3] {
		imageURL := ""
		if i%2 == 0 {
			imageURL = factory.ImageURL()
		}
		post, err := st.AddPost(ctx, author.ID, factory.PostContent(), imageURL, "")
		if err != nil {
			return fmt.Errorf("seeding post: %w", err)
		}
		for j, liker := range users {
			if liker.ID == author.ID || (i+j)%3 == 0 {
				continue
			}
			if _, err := st.ToggleLike(ctx, liker.ID, post.ID); err != nil {
				return fmt.Errorf("seeding like: %w", err)
			}
		}
		commenter := users[(i+1)%len(users)]
		if _, err := st.AddComment(ctx, commenter.ID, post.ID, factory.CommentContent()); err != nil {
			return fmt.Errorf("seeding comment: %w", err)
		}
	}

	// One post inside each community, authored by its owner.
	for _, community := range communities {
		if _, err := st.AddPost(ctx, community.OwnerID, factory.PostContent(), "", community.ID); err != nil {
			return fmt.Errorf("seeding community post: %w", err)
		}
	}

	logger.Info("seeded demo data",
		slog.Int("users", len(st.Users())),
		slog.Int("posts", len(st.Posts())),
		slog.Int("communities", len(st.Communities())),
	)
	return nil
}
