// Package seed provides helpers to create demo and test data for the state
// store. These helpers are intended for development and testing only.
package seed

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wesleybertipaglia/uknow/internal/models"
)

// DemoPassword is the credential every seeded user logs in with.
const DemoPassword = "password123"

// Factory builds domain entities with fake but plausible content.
// It is a thin helper used by the demo preset and tests.
type Factory struct {
	passwordHash string
}

// NewFactory creates a Factory. All generated users share one bcrypt hash of
// DemoPassword so seeding cost does not scale with the user count.
func NewFactory(bcryptCost int) (*Factory, error) {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.MinCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcryptCost)
	if err != nil {
		return nil, err
	}
	return &Factory{passwordHash: string(hash)}, nil
}

// BuildUser constructs a sample user. Optional override functions may modify
// the generated user before it is returned.
func (f *Factory) BuildUser(overrides ...func(*models.User)) models.User {
	user := models.User{
		ID:           uuid.NewString(),
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		PasswordHash: f.passwordHash,
		Bio:          gofakeit.Sentence(10),
		Friends:      []string{},
		Communities:  []string{},
	}
	user.ProfilePhoto = fmt.Sprintf("https://picsum.photos/seed/%s/200/200", user.ID)

	for _, override := range overrides {
		override(&user)
	}
	return user
}

// PostContent returns a short paragraph suitable for a post body.
func (f *Factory) PostContent() string {
	return gofakeit.Paragraph(1, 2, 8, " ")
}

// CommentContent returns a one-line comment body.
func (f *Factory) CommentContent() string {
	return gofakeit.Sentence(8)
}

// ImageURL returns a placeholder image reference.
func (f *Factory) ImageURL() string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/600/400", gofakeit.UUID())
}

// CoverImageURL returns a placeholder community cover reference.
func (f *Factory) CoverImageURL() string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/400/200", gofakeit.UUID())
}
