package user

import (
	"context"
	c "remindme/internal/core/domain/common"
	"time"
)

type PasswordResetToken string

type PasswordResetTokenID string

// PasswordResetTokenRecord references its user by email, not by ID.
type PasswordResetTokenRecord struct {
	ID        PasswordResetTokenID
	Email     c.Email
	Token     PasswordResetToken
	ExpiresAt time.Time
}

func (r *PasswordResetTokenRecord) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}

type CreatePasswordResetTokenInput struct {
	Email     c.Email
	Token     PasswordResetToken
	ExpiresAt time.Time
}

type PasswordResetTokenRepository interface {
	Create(ctx context.Context, input CreatePasswordResetTokenInput) (PasswordResetTokenRecord, error)
	GetByToken(ctx context.Context, token PasswordResetToken) (PasswordResetTokenRecord, error)
	// GetByTokenForUpdate locks the row until the surrounding unit of work ends.
	GetByTokenForUpdate(ctx context.Context, token PasswordResetToken) (PasswordResetTokenRecord, error)
	DeleteByID(ctx context.Context, id PasswordResetTokenID) error
	DeleteByEmail(ctx context.Context, email c.Email) (deleted int64, err error)
}

type PasswordResetTokenGenerator interface {
	GeneratePasswordResetToken() (PasswordResetToken, error)
}
