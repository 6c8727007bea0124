package requestpasswordreset

import (
	"context"
	"errors"
	"net/url"
	c "remindme/internal/core/domain/common"
	"remindme/internal/core/domain/email"
	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/logging"
	"remindme/internal/core/domain/user"
	"remindme/internal/core/services"
	"time"

	"github.com/golang-module/carbon/v2"
)

const TOKEN_QUERY_PARAM = "token"

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "request-password-reset::" + string(i.Email)
}

// Result is empty unless email delivery is not configured, in which case
// the reset link is disclosed to the caller.
type Result struct {
	DevMode   bool
	ResetURL  string
	ExpiresAt time.Time
}

type service struct {
	log             logging.Logger
	userRepository  user.UserRepository
	tokenRepository user.PasswordResetTokenRepository
	tokenGenerator  user.PasswordResetTokenGenerator
	emailSender     email.Sender
	emailComposer   email.Composer
	resetBaseURL    url.URL
	validDuration   time.Duration
	sendTimeout     time.Duration
	now             func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenRepository user.PasswordResetTokenRepository,
	tokenGenerator user.PasswordResetTokenGenerator,
	emailSender email.Sender,
	emailComposer email.Composer,
	resetBaseURL url.URL,
	validDuration time.Duration,
	sendTimeout time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if emailSender == nil {
		panic(e.NewNilArgumentError("emailSender"))
	}
	if emailComposer == nil {
		panic(e.NewNilArgumentError("emailComposer"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if validDuration <= 0 {
		panic("validDuration must be positive")
	}
	if sendTimeout <= 0 {
		panic("sendTimeout must be positive")
	}
	return &service{
		log:             log,
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		tokenGenerator:  tokenGenerator,
		emailSender:     emailSender,
		emailComposer:   emailComposer,
		resetBaseURL:    resetBaseURL,
		validDuration:   validDuration,
		sendTimeout:     sendTimeout,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Password reset requested for unknown email.", logging.Entry("email", input.Email))
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("email", input.Email))
		return result, e.NewStorageError("get user by email", err)
	}

	token, err := s.tokenGenerator.GeneratePasswordResetToken()
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, err
	}
	now := s.now()
	expiresAt := now.Add(s.validDuration)

	deleted, err := s.tokenRepository.DeleteByEmail(ctx, u.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, e.NewStorageError("delete password reset tokens", err)
	}
	if deleted > 0 {
		s.log.Info(
			ctx,
			"Previous password reset tokens have been superseded.",
			logging.Entry("userID", u.ID),
			logging.Entry("deleted", deleted),
		)
	}

	_, err = s.tokenRepository.Create(ctx, user.CreatePasswordResetTokenInput{
		Email:     u.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	})
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, e.NewStorageError("create password reset token", err)
	}

	resetURL := s.buildResetURL(token)

	if !s.emailSender.IsConfigured() {
		s.log.Warning(
			ctx,
			"Email delivery is not configured, password reset link is disclosed in response.",
			logging.Entry("userID", u.ID),
			logging.Entry("email", u.Email),
			logging.Entry("resetURL", resetURL),
			logging.Entry("expiresAt", carbon.Time2Carbon(expiresAt).ToDateTimeString()),
		)
		return Result{DevMode: true, ResetURL: resetURL, ExpiresAt: expiresAt}, nil
	}

	msg, err := s.emailComposer.ComposePasswordReset(email.PasswordResetParams{
		To:        u.Email,
		Name:      u.Name,
		ResetURL:  resetURL,
		ExpiresAt: expiresAt,
		Now:       now,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, e.NewDeliveryError(string(u.Email), err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	if err := s.emailSender.Send(sendCtx, msg); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, e.NewDeliveryError(string(u.Email), err)
	}

	s.log.Info(ctx, "Password reset email has been sent.", logging.Entry("userID", u.ID))
	return result, nil
}

func (s *service) buildResetURL(token user.PasswordResetToken) string {
	u := s.resetBaseURL
	query := u.Query()
	query.Set(TOKEN_QUERY_PARAM, string(token))
	u.RawQuery = query.Encode()
	return u.String()
}
