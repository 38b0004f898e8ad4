package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
)

// SeedResult reports what SeedMasterAdmin did.
// GeneratedPassword is set only when no password was configured.
type SeedResult struct {
	Created           bool
	Skipped           bool
	User              User
	GeneratedPassword string
}

// SeedMasterAdmin creates the bootstrap administrator once per deployment.
// An empty email skips seeding; an empty password is replaced by a random one.
func (s *authService) SeedMasterAdmin(ctx context.Context, email, name, password string) (SeedResult, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return SeedResult{Skipped: true}, nil
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return SeedResult{User: existing}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return SeedResult{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Master"
	}
	var generated string
	if password == "" {
		generated = rand.Text()
		password = generated
	}

	user, err := s.createUser(ctx, email, name, password, true)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			// another instance seeded concurrently
			return SeedResult{}, nil
		}
		return SeedResult{}, err
	}
	return SeedResult{Created: true, User: user, GeneratedPassword: generated}, nil
}
