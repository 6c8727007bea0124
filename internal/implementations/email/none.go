package email

import (
	"context"

	domain "remindme/internal/core/domain/email"
)

// None never delivers anything. With it the password reset flow runs in
// development mode and discloses reset links in responses.
type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) IsConfigured() bool {
	return false
}

func (n *None) Send(ctx context.Context, msg domain.Message) error {
	return domain.ErrNotConfigured
}
