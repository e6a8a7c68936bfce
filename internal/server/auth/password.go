package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt with a fixed cost factor. The comparison is
// constant-time inside bcrypt itself.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher; a non-positive cost falls back
// to the configured project default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost <= 0 {
		cost = 12
	}
	return &PasswordHasher{cost: cost}
}

// Hash generates a salted bcrypt hash of the given password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether the candidate password matches the stored hash.
// A mismatch is a boolean result, never an error.
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
