package sendtestemail

import (
	"context"
	"errors"
	c "remindme/internal/core/domain/common"
	"remindme/internal/core/domain/email"
	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/logging"
	"remindme/internal/core/domain/user"
	"remindme/internal/core/services"
	"remindme/internal/core/services/auth"
	"strconv"
	"time"
)

type Input struct {
	To   c.Email
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

func (i Input) GetRateLimitKey() string {
	return "send-test-email::" + strconv.FormatInt(int64(i.User.ID), 10)
}

type Result struct{}

type service struct {
	log         logging.Logger
	sender      email.Sender
	composer    email.Composer
	sendTimeout time.Duration
	now         func() time.Time
}

func New(
	log logging.Logger,
	sender email.Sender,
	composer email.Composer,
	sendTimeout time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if composer == nil {
		panic(e.NewNilArgumentError("composer"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:         log,
		sender:      sender,
		composer:    composer,
		sendTimeout: sendTimeout,
		now:         now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if !s.sender.IsConfigured() {
		s.log.Warning(
			ctx,
			"Test email requested, but email delivery is not configured.",
			logging.Entry("userId", input.User.ID),
		)
		return result, email.ErrNotConfigured
	}

	msg, err := s.composer.ComposeTest(input.To, s.now())
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("to", input.To))
		return result, e.NewDeliveryError(string(input.To), err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	err = s.sender.Send(sendCtx, msg)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("to", input.To), logging.Entry("userId", input.User.ID))
		return result, e.NewDeliveryError(string(input.To), err)
	}

	s.log.Info(
		ctx,
		"Test email sent.",
		logging.Entry("to", input.To),
		logging.Entry("userId", input.User.ID),
	)
	return result, nil
}
