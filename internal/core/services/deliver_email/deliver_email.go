package deliveremail

import (
	"context"
	"errors"
	"remindme/internal/core/domain/email"
	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/logging"
	"remindme/internal/core/services"
	"time"
)

type Input struct {
	Message email.Message
}

type Result struct{}

type service struct {
	log         logging.Logger
	sender      email.Sender
	sendTimeout time.Duration
}

// New creates the service the mailer process runs for every message taken
// from the e-mail queue.
func New(
	log logging.Logger,
	sender email.Sender,
	sendTimeout time.Duration,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{
		log:         log,
		sender:      sender,
		sendTimeout: sendTimeout,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Message.To == "" {
		return result, e.NewInvalidStateError("email message has no recipient")
	}
	if !s.sender.IsConfigured() {
		return result, email.ErrNotConfigured
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	err = s.sender.Send(sendCtx, input.Message)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(
			ctx,
			s.log,
			err,
			logging.Entry("to", input.Message.To),
			logging.Entry("subject", input.Message.Subject),
		)
		return result, e.NewDeliveryError(string(input.Message.To), err)
	}

	s.log.Info(
		ctx,
		"Email delivered.",
		logging.Entry("to", input.Message.To),
		logging.Entry("subject", input.Message.Subject),
	)
	return result, nil
}
