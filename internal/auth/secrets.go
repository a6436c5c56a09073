package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSessionSecret returns a hex-encoded 32-byte random secret
// for signing CSRF tokens when none is configured.
func GenerateSessionSecret() (string, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return "", err
	}
	return hex.EncodeToString(secret), nil
}
