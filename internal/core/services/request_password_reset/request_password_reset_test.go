package requestpasswordreset

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	c "remindme/internal/core/domain/common"
	"remindme/internal/core/domain/email"
	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/logging"
	"remindme/internal/core/domain/user"
	"remindme/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "a@x.com"
	PASSWORD_HASH = "test-password-hash"
	TOKEN         = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	TOKEN_2       = "fedcba9876543210fedcba9876543210fedcba9876543210fedcba9876543210"
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger          *logging.FakeLogger
	UserRepository  *user.FakeUserRepository
	TokenRepository *user.FakePasswordResetTokenRepository
	TokenGenerator  *user.FakePasswordResetTokenGenerator
	EmailSender     *email.FakeSender
	Service         services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.TokenRepository = user.NewFakePasswordResetTokenRepository()
	suite.TokenGenerator = user.NewFakePasswordResetTokenGenerator(TOKEN, TOKEN_2)
	suite.EmailSender = email.NewFakeSender(true)
	suite.Service = suite.createService()
}

func (suite *testSuite) createService() services.Service[Input, Result] {
	baseURL, err := url.Parse("http://localhost:3000/reset-password")
	if err != nil {
		panic(err)
	}
	return New(
		suite.Logger,
		suite.UserRepository,
		suite.TokenRepository,
		suite.TokenGenerator,
		suite.EmailSender,
		email.NewFakeComposer(),
		*baseURL,
		time.Hour,
		5*time.Second,
		func() time.Time { return NOW },
	)
}

func TestRequestPasswordResetService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestTokenCreatedAndEmailSent() {
	s.createUser()

	result, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	s.Nil(err)
	s.Equal(Result{}, result)
	s.Require().Len(s.TokenRepository.Records, 1)
	record := s.TokenRepository.Records[0]
	s.Equal(c.Email(EMAIL), record.Email)
	s.Equal(user.PasswordResetToken(TOKEN), record.Token)
	s.Equal(NOW.Add(time.Hour), record.ExpiresAt)

	s.Equal(1, s.EmailSender.SentCount())
	sent := s.EmailSender.LastSent()
	s.Equal(c.Email(EMAIL), sent.To)
	s.Contains(sent.Text, "token="+TOKEN)
}

func (s *testSuite) TestUnknownEmailIsIndistinguishableFromKnown() {
	s.createUser()

	knownResult, knownErr := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})
	unknownResult, unknownErr := s.Service.Run(context.Background(), Input{Email: c.NewEmail("nobody@x.com")})

	s.Nil(knownErr)
	s.Nil(unknownErr)
	s.Equal(knownResult, unknownResult)
	s.Equal(1, s.EmailSender.SentCount())
	s.Equal(0, s.TokenRepository.CountByEmail(c.Email("nobody@x.com")))
}

func (s *testSuite) TestDevModeWhenDeliveryNotConfigured() {
	s.EmailSender.Configured = false
	s.createUser()

	result, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	s.Nil(err)
	s.True(result.DevMode)
	s.Equal(NOW.Add(3600*time.Second), result.ExpiresAt)
	s.Equal(0, s.EmailSender.SentCount())

	resetURL, err := url.Parse(result.ResetURL)
	s.Require().Nil(err)
	s.Equal("/reset-password", resetURL.Path)
	s.Regexp(regexp.MustCompile("^[0-9a-f]{64}$"), resetURL.Query().Get(TOKEN_QUERY_PARAM))
}

func (s *testSuite) TestUnknownEmailInDevModeDisclosesNothing() {
	s.EmailSender.Configured = false

	result, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	s.Nil(err)
	s.Equal(Result{}, result)
	s.Empty(s.TokenRepository.Records)
}

func (s *testSuite) TestLaterCreatedUserGetsToken() {
	s.EmailSender.Configured = false

	result, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})
	s.Nil(err)
	s.False(result.DevMode)

	s.createUser()
	result, err = s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})
	s.Nil(err)
	s.True(result.DevMode)
	s.Contains(result.ResetURL, "token="+TOKEN)
}

func (s *testSuite) TestSecondRequestSupersedesFirstToken() {
	s.createUser()

	_, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})
	s.Nil(err)
	_, err = s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})
	s.Nil(err)

	s.Require().Len(s.TokenRepository.Records, 1)
	s.Equal(user.PasswordResetToken(TOKEN_2), s.TokenRepository.Records[0].Token)
	_, err = s.TokenRepository.GetByToken(context.Background(), user.PasswordResetToken(TOKEN))
	s.ErrorIs(err, user.ErrPasswordResetTokenDoesNotExist)
}

func (s *testSuite) TestStorageErrorIfTokenCouldNotBeCreated() {
	s.createUser()
	s.TokenRepository.CreateError = errors.New("relation does not exist")

	_, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	var storageErr *e.StorageError
	s.True(errors.As(err, &storageErr))
	s.Equal(0, s.EmailSender.SentCount())
}

func (s *testSuite) TestStorageErrorIfPreviousTokensCouldNotBeDeleted() {
	s.createUser()
	s.TokenRepository.DeleteByEmailError = errors.New("connection reset")

	_, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	var storageErr *e.StorageError
	s.True(errors.As(err, &storageErr))
	s.Empty(s.TokenRepository.Records)
}

func (s *testSuite) TestStorageErrorIfUserLookupFails() {
	s.UserRepository.ReturnError = true

	_, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	var storageErr *e.StorageError
	s.True(errors.As(err, &storageErr))
}

func (s *testSuite) TestDeliveryErrorKeepsToken() {
	s.createUser()
	s.EmailSender.ReturnError = true

	_, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	var deliveryErr *e.DeliveryError
	s.True(errors.As(err, &deliveryErr))
	s.Equal(1, s.TokenRepository.CountByEmail(c.Email(EMAIL)))
}

func (s *testSuite) TestRateLimitKeyDependsOnEmailOnly() {
	s.Equal(
		Input{Email: c.NewEmail("A@X.com")}.GetRateLimitKey(),
		Input{Email: c.NewEmail("a@x.com")}.GetRateLimitKey(),
	)
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			PasswordHash: user.PasswordHash(PASSWORD_HASH),
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	return u
}
