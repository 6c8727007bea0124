package email

import (
	"context"
	"errors"
	c "remindme/internal/core/domain/common"
	"time"
)

var ErrNotConfigured = errors.New("email delivery is not configured")

type Message struct {
	To      c.Email `json:"to"`
	Subject string  `json:"subject"`
	HTML    string  `json:"html"`
	Text    string  `json:"text"`
}

type Sender interface {
	// IsConfigured reports whether messages are actually delivered.
	IsConfigured() bool
	Send(ctx context.Context, msg Message) error
}

type PasswordResetParams struct {
	To        c.Email
	Name      c.Optional[string]
	ResetURL  string
	ExpiresAt time.Time
	Now       time.Time
}

type Composer interface {
	ComposePasswordReset(params PasswordResetParams) (Message, error)
	ComposeTest(to c.Email, at time.Time) (Message, error)
}
