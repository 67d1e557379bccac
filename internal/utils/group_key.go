package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateGroupKey generates a random join key in the format
// xxxxxx-xxxxxx-xxxxxx (72 random bits).
func GenerateGroupKey() (string, error) {
	bytes := make([]byte, 9)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	hex := hex.EncodeToString(bytes)
	return fmt.Sprintf("%s-%s-%s",
		hex[0:6],
		hex[6:12],
		hex[12:18],
	), nil
}
