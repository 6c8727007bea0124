package getuserbysessiontoken

import (
	"context"
	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/logging"
	"remindme/internal/core/domain/user"
	"remindme/internal/core/services"
	"remindme/internal/core/services/auth"
)

// Input is filled by auth.WithAuthentication from the bearer token of the request.
type Input struct {
	User user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.User = u
	return i
}

type Result struct {
	User user.User
}

type service struct {
	log logging.Logger
}

func New(log logging.Logger) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &service{log: log}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.User.Validate(); err != nil {
		s.log.Error(ctx, "Authenticated user is in invalid state.", logging.Entry("err", err))
		return result, err
	}
	return Result{User: input.User}, nil
}
