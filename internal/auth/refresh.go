package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateRefreshToken генерирует непрозрачный refresh токен:
// 32 байта из crypto/rand (256 бит энтропии), hex-строка. Это не JWT.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
