package deliveremail

import (
	"context"
	"errors"
	"remindme/internal/core/domain/email"
	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/logging"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var MESSAGE = email.Message{To: "to@test.test", Subject: "Subject", HTML: "<p>html</p>", Text: "text"}

func TestMessageDelivered(t *testing.T) {
	sender := email.NewFakeSender(true)
	service := New(logging.NewFakeLogger(), sender, time.Second)

	_, err := service.Run(context.Background(), Input{Message: MESSAGE})

	require.Nil(t, err)
	require.Equal(t, MESSAGE, sender.LastSent())
}

func TestDeliveryFailure(t *testing.T) {
	sender := email.NewFakeSender(true)
	sender.ReturnError = true
	service := New(logging.NewFakeLogger(), sender, time.Second)

	_, err := service.Run(context.Background(), Input{Message: MESSAGE})

	var deliveryErr *e.DeliveryError
	require.True(t, errors.As(err, &deliveryErr))
}

func TestSenderNotConfigured(t *testing.T) {
	service := New(logging.NewFakeLogger(), email.NewFakeSender(false), time.Second)

	_, err := service.Run(context.Background(), Input{Message: MESSAGE})

	require.ErrorIs(t, err, email.ErrNotConfigured)
}

func TestMessageWithoutRecipient(t *testing.T) {
	sender := email.NewFakeSender(true)
	service := New(logging.NewFakeLogger(), sender, time.Second)

	_, err := service.Run(context.Background(), Input{Message: email.Message{Subject: "Subject"}})

	var stateErr *e.InvalidStateError
	require.True(t, errors.As(err, &stateErr))
	require.Equal(t, 0, sender.SentCount())
}
