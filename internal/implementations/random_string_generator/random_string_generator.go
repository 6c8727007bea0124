package randomstringgenerator

import (
	"crypto/rand"
	"encoding/hex"
	"remindme/internal/core/domain/user"
)

const PASSWORD_RESET_TOKEN_BYTES = 32

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GeneratePasswordResetToken returns 32 bytes from the OS entropy source
// encoded as 64 lowercase hex characters.
func (g *Generator) GeneratePasswordResetToken() (user.PasswordResetToken, error) {
	b := make([]byte, PASSWORD_RESET_TOKEN_BYTES)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return user.PasswordResetToken(hex.EncodeToString(b)), nil
}
