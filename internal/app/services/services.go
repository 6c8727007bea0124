package services

import (
	"remindme/internal/app/deps"
	drl "remindme/internal/core/domain/rate_limiter"
	"remindme/internal/core/services"
	"remindme/internal/core/services/auth"
	deliveremail "remindme/internal/core/services/deliver_email"
	getuserbysessiontoken "remindme/internal/core/services/get_user_by_session_token"
	loginwithemail "remindme/internal/core/services/log_in_with_email"
	logout "remindme/internal/core/services/log_out"
	ratelimiting "remindme/internal/core/services/rate_limiting"
	requestpasswordreset "remindme/internal/core/services/request_password_reset"
	resetpassword "remindme/internal/core/services/reset_password"
	sendtestemail "remindme/internal/core/services/send_test_email"
	signupwithemail "remindme/internal/core/services/sign_up_with_email"
)

type Services struct {
	SignUpWithEmail       services.Service[signupwithemail.Input, signupwithemail.Result]
	LogInWithEmail        services.Service[loginwithemail.Input, loginwithemail.Result]
	LogOut                services.Service[logout.Input, logout.Result]
	GetUserBySessionToken services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]

	RequestPasswordReset services.Service[requestpasswordreset.Input, requestpasswordreset.Result]
	ResetPassword        services.Service[resetpassword.Input, resetpassword.Result]

	SendTestEmail services.Service[sendtestemail.Input, sendtestemail.Result]
	DeliverEmail  services.Service[deliveremail.Input, deliveremail.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUpWithEmail = signupwithemail.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)
	s.LogInWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.UserSessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.GetUserBySessionToken = auth.WithAuthentication(
		deps.SessionRepository,
		getuserbysessiontoken.New(deps.Logger),
	)

	s.RequestPasswordReset = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		requestpasswordreset.New(
			deps.Logger,
			deps.UserRepository,
			deps.PasswordResetTokenRepository,
			deps.PasswordResetTokenGenerator,
			deps.EmailSender,
			deps.EmailComposer,
			deps.Config.PasswordResetBaseURL,
			deps.Config.PasswordResetValidDuration,
			deps.Config.EmailSendTimeout,
			deps.Now,
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)

	// Authentication goes first, the rate limit key depends on the user.
	s.SendTestEmail = auth.WithAuthentication(
		deps.SessionRepository,
		ratelimiting.WithRateLimiting(
			deps.Logger,
			deps.RateLimiter,
			drl.Limit{Interval: drl.Hour, Value: 5},
			sendtestemail.New(
				deps.Logger,
				deps.EmailSender,
				deps.EmailComposer,
				deps.Config.EmailSendTimeout,
				deps.Now,
			),
		),
	)
	s.DeliverEmail = deliveremail.New(
		deps.Logger,
		deps.SMTPSender,
		deps.Config.EmailSendTimeout,
	)

	return s
}
