package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/testutil"
)

func TestSeedDefaultAdminIsIdempotent(t *testing.T) {
	store := testutil.NewStore()
	admins := store.Repositories().AdminRepository
	hasher := testutil.Hasher(t)
	ctx := context.Background()

	created, err := SeedDefaultAdmin(ctx, admins, hasher, "admin", "admin123", zerolog.Nop())
	if err != nil || !created {
		t.Fatalf("first seed = %v, %v; want true, nil", created, err)
	}

	created, err = SeedDefaultAdmin(ctx, admins, hasher, "admin", "a-different-password", zerolog.Nop())
	if err != nil || created {
		t.Fatalf("second seed = %v, %v; want false, nil", created, err)
	}

	admin, err := admins.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if !hasher.Verify("admin123", admin.PasswordHash) {
		t.Error("reseeding replaced the original password")
	}
}

func TestSeedDefaultAdminRejectsBadInput(t *testing.T) {
	store := testutil.NewStore()
	hasher := testutil.Hasher(t)

	_, err := SeedDefaultAdmin(context.Background(), store.Repositories().AdminRepository, hasher, "admin", "123", zerolog.Nop())
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("short password error = %v, want validation failure", err)
	}

	_, err = SeedDefaultAdmin(context.Background(), store.Repositories().AdminRepository, hasher, "  ", "admin123", zerolog.Nop())
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("blank username error = %v, want validation failure", err)
	}
}
