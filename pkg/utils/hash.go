// Package utils holds password hashing for admin accounts. Registrant
// passcodes are not credentials and never pass through here.
package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for admin password hashes.
const bcryptCost = bcrypt.DefaultCost

// HashPassword hashes an admin password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func CheckPassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
