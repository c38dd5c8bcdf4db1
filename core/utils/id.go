package utils

import (
	"crypto/rand"
	"encoding/base64"

	"campusflow/core/constants"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	alphanumeric = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	// no 0/O or 1/I so codes survive being read off an email
	resetAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
)

func GenerateID() string {
	id, err := gonanoid.Generate(alphanumeric, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateResetCode returns the short code mailed on forgot-password.
func GenerateResetCode() (string, error) {
	return gonanoid.Generate(resetAlphabet, constants.ResetCodeLength)
}

// GenerateRandomString generates a cryptographically secure random string
func GenerateRandomString(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		id, _ := gonanoid.Generate(alphanumeric, length)
		return id
	}
	return base64.RawURLEncoding.EncodeToString(bytes)[:length]
}
