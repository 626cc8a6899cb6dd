package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// PasswordService derives and verifies salted password hashes. It holds
// no state; every user gets their own random salt.
type PasswordService struct{}

// NewPasswordService creates a new PasswordService.
func NewPasswordService() *PasswordService {
	return &PasswordService{}
}

// GenerateSalt returns a fresh random salt, base64 encoded.
func (s *PasswordService) GenerateSalt() (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// HashPassword returns the base64-encoded SHA-256 digest of password
// concatenated with salt. Deterministic for a given (password, salt) pair.
func (s *PasswordService) HashPassword(password, salt string) string {
	digest := sha256.Sum256([]byte(password + salt))
	return base64.StdEncoding.EncodeToString(digest[:])
}

// VerifyPassword recomputes the hash for the candidate password and
// compares it against the stored hash in constant time.
func (s *PasswordService) VerifyPassword(password, salt, expectedHash string) bool {
	computed := s.HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(expectedHash)) == 1
}
