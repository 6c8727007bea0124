package randomstringgenerator

import (
	"regexp"
	"remindme/internal/core/domain/user"
	"testing"
)

func TestPasswordResetTokenGenerator(t *testing.T) {
	generator := NewGenerator()
	pattern := regexp.MustCompile("^[0-9a-f]{64}$")
	tokens := make(map[user.PasswordResetToken]struct{})
	for i := 0; i < 100; i++ {
		token, err := generator.GeneratePasswordResetToken()
		if err != nil {
			t.Fatalf("could not generate token: %v", err)
		}
		if !pattern.MatchString(string(token)) {
			t.Fatalf("token %v must be 64 hex characters", token)
		}
		if _, ok := tokens[token]; ok {
			t.Fatalf("token %v already exists", token)
		}
		tokens[token] = struct{}{}
	}
}
