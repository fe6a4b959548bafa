package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is the longest password bcrypt can hash without truncation.
const MaxPasswordLength = 72

// dummyPassword backs the digest compared on the unknown-user login path.
const dummyPassword = "roleta-dummy-password-for-timing"

// PasswordHasher turns passwords into self-describing salted digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
	// VerifyDummy spends the same work as Verify against a fixed digest. It
	// always returns false.
	VerifyDummy(password string)
}

type bcryptHasher struct {
	cost        int
	dummyDigest []byte
}

// NewPasswordHasher creates a bcrypt backed PasswordHasher.
func NewPasswordHasher(cost int) (PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy digest: %w", err)
	}
	return &bcryptHasher{cost: cost, dummyDigest: dummy}, nil
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordLength {
		return "", fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, MaxPasswordLength)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Verify rejects passwords longer than MaxPasswordLength while still paying
// for one comparison; bcrypt would otherwise match on the first 72 bytes only.
func (h *bcryptHasher) Verify(password, digest string) bool {
	if len(password) > MaxPasswordLength {
		h.VerifyDummy(password[:MaxPasswordLength])
		return false
	}
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

func (h *bcryptHasher) VerifyDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyDigest, []byte(password))
}
