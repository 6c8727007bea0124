package reset_password

import (
	"context"
	"errors"
	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/logging"
	uow "remindme/internal/core/domain/unit_of_work"
	"remindme/internal/core/domain/user"
	"remindme/internal/core/services"
	"time"
)

type Input struct {
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

type Result struct{}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

// Run consumes the token. The token row stays locked for the whole unit of
// work, so of two concurrent calls with the same token only one can succeed.
// Tokens are deleted only together with the password update.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, e.NewStorageError("begin unit of work", err)
	}
	defer uow.Rollback(ctx)

	tokens := uow.PasswordResetTokens()
	record, err := tokens.GetByTokenForUpdate(ctx, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrPasswordResetTokenDoesNotExist) {
		s.log.Info(ctx, "Password reset token not found.")
		return result, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, e.NewStorageError("get password reset token", err)
	}

	if record.IsExpired(s.now()) {
		return result, s.deleteExpired(ctx, uow, record)
	}

	u, err := uow.Users().GetByEmail(ctx, record.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Warning(
			ctx,
			"User referenced by password reset token does not exist.",
			logging.Entry("tokenID", record.ID),
			logging.Entry("email", record.Email),
		)
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("tokenID", record.ID))
		return result, e.NewStorageError("get user by email", err)
	}

	err = uow.Users().SetPassword(ctx, u.ID, newPasswordHash)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Warning(ctx, "Could not update user password, user does not exist.", logging.Entry("userID", u.ID))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, e.NewStorageError("set password", err)
	}

	err = tokens.DeleteByID(ctx, record.ID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrPasswordResetTokenDoesNotExist) {
		s.log.Info(ctx, "Password reset token vanished before it was consumed.", logging.Entry("tokenID", record.ID))
		return result, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, e.NewStorageError("delete password reset token", err)
	}

	if _, err := tokens.DeleteByEmail(ctx, record.Email); err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, e.NewStorageError("delete password reset tokens", err)
	}

	if err := uow.Commit(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		logging.Error(ctx, s.log, err, logging.Entry("userID", u.ID))
		return result, e.NewStorageError("commit unit of work", err)
	}

	s.log.Info(ctx, "New password has been successfully set.", logging.Entry("userID", u.ID))
	return result, nil
}

func (s *service) deleteExpired(ctx context.Context, uow uow.Context, record user.PasswordResetTokenRecord) error {
	err := uow.PasswordResetTokens().DeleteByID(ctx, record.ID)
	if errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil && !errors.Is(err, user.ErrPasswordResetTokenDoesNotExist) {
		logging.Error(ctx, s.log, err, logging.Entry("tokenID", record.ID))
		return e.NewStorageError("delete expired password reset token", err)
	}
	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("tokenID", record.ID))
		return e.NewStorageError("commit unit of work", err)
	}
	s.log.Info(
		ctx,
		"Expired password reset token has been deleted.",
		logging.Entry("tokenID", record.ID),
		logging.Entry("expiresAt", record.ExpiresAt),
	)
	return user.ErrPasswordResetTokenExpired
}
