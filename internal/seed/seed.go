package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/validation"
)

// Hasher hashes the seeded admin password
type Hasher interface {
	Hash(password string) (string, error)
}

// SeedDefaultAdmin creates the bootstrap admin account unless an admin with
// that username already exists. It reports whether a row was inserted; an
// existing admin keeps its current password.
func SeedDefaultAdmin(ctx context.Context, admins repositories.IAdminRepository, hasher Hasher, username, password string, lgr zerolog.Logger) (bool, error) {
	username = strings.TrimSpace(username)
	if err := validation.ValidateUsername(username); err != nil {
		return false, fmt.Errorf("invalid seed admin: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return false, fmt.Errorf("invalid seed admin: %w", err)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return false, err
	}

	created, err := admins.CreateIfNotExists(ctx, &models.Admin{Username: username, PasswordHash: hash})
	if err != nil {
		lgr.Error().Err(err).Msg("Error seeding default admin")
		return false, err
	}

	if created {
		lgr.Info().Str("username", username).Msg("Default admin created")
	} else {
		lgr.Debug().Str("username", username).Msg("Default admin already exists")
	}
	return created, nil
}
