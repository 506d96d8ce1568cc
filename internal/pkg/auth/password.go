package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the default password hashing cost
const BcryptCost = 12

// dummyPassword backs the comparison performed for unknown principals.
const dummyPassword = "coursehub-timing-equalizer"

// PasswordHasher hashes and verifies passwords with bcrypt. The cost is
// fixed at construction and never changes for the process lifetime.
type PasswordHasher struct {
	cost      int
	dummyHash []byte
}

// NewPasswordHasher creates a hasher with the given bcrypt cost. A cost
// outside bcrypt's bounds falls back to BcryptCost.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = BcryptCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hasher: %w", err)
	}
	return &PasswordHasher{cost: cost, dummyHash: dummy}, nil
}

// Cost returns the configured bcrypt cost.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash hashes a password with a fresh random salt
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// Verify reports whether password matches hashedPassword. A malformed hash
// simply fails verification.
func (h *PasswordHasher) Verify(password, hashedPassword string) bool {
	return CheckPassword(hashedPassword, password)
}

// VerifyDummy burns one comparison so a lookup miss costs as much as a
// wrong password.
func (h *PasswordHasher) VerifyDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}

// CheckPassword verifies a password against a bcrypt hash
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
