package utils

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	decoyOnce sync.Once
	decoyHash string
)

// HashPassword hashes a plain password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares plain password with hashed password.
func CheckPassword(plain, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}

// RejectPassword runs a full bcrypt comparison against a throwaway hash and always reports false.
// Logins for unknown emails call it so they cost as much as a wrong password for a real user.
func RejectPassword(plain string) bool {
	decoyOnce.Do(func() {
		decoyHash, _ = HashPassword("unknown-user-decoy")
	})
	CheckPassword(plain, decoyHash)
	return false
}
