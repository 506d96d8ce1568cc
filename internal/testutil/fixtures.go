package testutil

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	pkgAuth "github.com/yigit/coursehub/internal/pkg/auth"
)

// TestSecret signs every token issued in tests
const TestSecret = "test-secret"

// Tokens returns a JWT service with a 24h lifetime
func Tokens(t testing.TB) *pkgAuth.JWTService {
	t.Helper()
	svc, err := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      TestSecret,
		Algorithm:      "HS256",
		AccessTokenExp: 24 * time.Hour,
		TokenIssuer:    "coursehub-test",
	})
	if err != nil {
		t.Fatalf("jwt service: %v", err)
	}
	return svc
}

// Hasher returns a bcrypt hasher at the minimum cost to keep tests fast
func Hasher(t testing.TB) *pkgAuth.PasswordHasher {
	t.Helper()
	h, err := pkgAuth.NewPasswordHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("password hasher: %v", err)
	}
	return h
}
