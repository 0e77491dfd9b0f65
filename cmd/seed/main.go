// Command main seeds an empty Uknow blob store with demo data.
package main

import (
	"context"
	"log"

	"github.com/wesleybertipaglia/uknow/internal/bootstrap"
	"github.com/wesleybertipaglia/uknow/internal/config"
	"github.com/wesleybertipaglia/uknow/internal/observability"
	"github.com/wesleybertipaglia/uknow/internal/seed"
	"github.com/wesleybertipaglia/uknow/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	bs, err := bootstrap.OpenBlobStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open blob store: %v", err)
	}
	defer bs.Close()

	logger := observability.NewLogger(nil)
	ctx := context.Background()

	st, err := store.New(ctx, bs, logger, store.Options{KeyPrefix: cfg.KeyPrefix})
	if err != nil {
		log.Fatalf("Failed to open state store: %v", err)
	}
	defer st.Close()

	if err := seed.Demo(ctx, st, logger, cfg.BcryptCost); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seed complete: %d users, %d posts, %d communities (demo password %q)",
		len(st.Users()), len(st.Posts()), len(st.Communities()), seed.DemoPassword)
}
