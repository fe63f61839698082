package util

import (
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// PasswordAlgo tags rows with the hashing scheme used for PasswordHash.
const PasswordAlgo = "bcrypt"

// HashPassword hashes a plain text password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword checks if a plain text password matches a hashed password
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
