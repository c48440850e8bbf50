package utils

import "crypto/rand"

const (
	LinkCodeLength = 6

	linkCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateLinkCode returns a random 6-character uppercase alphanumeric code.
// Uniqueness is enforced by the database index, not here.
func GenerateLinkCode() (string, error) {
	buf := make([]byte, LinkCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = linkCodeAlphabet[int(b)%len(linkCodeAlphabet)]
	}
	return string(buf), nil
}
