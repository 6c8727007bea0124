package resetpassword

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	e "remindme/internal/core/domain/errors"
	"remindme/internal/core/domain/user"
	resetpassword "remindme/internal/core/services/reset_password"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *resetpassword.Input
}

func (s *stubService) Run(ctx context.Context, input resetpassword.Input) (resetpassword.Result, error) {
	s.input = &input
	return resetpassword.Result{}, s.err
}

func TestResetPasswordHandler(t *testing.T) {
	cases := []struct {
		id               string
		body             string
		err              error
		expectedStatus   int
		expectedResponse map[string]interface{}
		serviceCalled    bool
	}{
		{
			id:               "success",
			body:             `{"token": "abc", "password": "new-password"}`,
			expectedStatus:   http.StatusOK,
			expectedResponse: map[string]interface{}{"message": MSG_SUCCESS},
			serviceCalled:    true,
		},
		{
			id:               "short password",
			body:             `{"token": "abc", "password": "12345"}`,
			expectedStatus:   http.StatusBadRequest,
			expectedResponse: map[string]interface{}{"error": "Invalid password: the length must be between 6 and 256"},
		},
		{
			id:               "short multibyte password",
			body:             `{"token": "abc", "password": "ééé"}`,
			expectedStatus:   http.StatusBadRequest,
			expectedResponse: map[string]interface{}{"error": "Invalid password: the length must be between 6 and 256"},
		},
		{
			id:               "multibyte password counted by characters",
			body:             `{"token": "abc", "password": "日本語のパス"}`,
			expectedStatus:   http.StatusOK,
			expectedResponse: map[string]interface{}{"message": MSG_SUCCESS},
			serviceCalled:    true,
		},
		{
			id:               "missing token",
			body:             `{"password": "new-password"}`,
			expectedStatus:   http.StatusBadRequest,
			expectedResponse: map[string]interface{}{"error": "Invalid token: cannot be blank"},
		},
		{
			id:               "invalid token",
			body:             `{"token": "abc", "password": "new-password"}`,
			err:              user.ErrInvalidPasswordResetToken,
			expectedStatus:   http.StatusBadRequest,
			expectedResponse: map[string]interface{}{"error": MSG_INVALID_TOKEN},
			serviceCalled:    true,
		},
		{
			id:               "expired token",
			body:             `{"token": "abc", "password": "new-password"}`,
			err:              user.ErrPasswordResetTokenExpired,
			expectedStatus:   http.StatusBadRequest,
			expectedResponse: map[string]interface{}{"error": MSG_EXPIRED_TOKEN},
			serviceCalled:    true,
		},
		{
			id:               "user not found",
			body:             `{"token": "abc", "password": "new-password"}`,
			err:              user.ErrUserDoesNotExist,
			expectedStatus:   http.StatusNotFound,
			expectedResponse: map[string]interface{}{"error": MSG_USER_NOT_FOUND},
			serviceCalled:    true,
		},
		{
			id:               "storage error",
			body:             `{"token": "abc", "password": "new-password"}`,
			err:              e.NewStorageError("set password", errors.New("db is down")),
			expectedStatus:   http.StatusInternalServerError,
			expectedResponse: map[string]interface{}{"error": "internal error"},
			serviceCalled:    true,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			s := &stubService{err: testcase.err}
			req := httptest.NewRequest(http.MethodPost, "/reset/consume", strings.NewReader(testcase.body))
			rw := httptest.NewRecorder()

			New(s).ServeHTTP(rw, req)

			assert.Equal(t, testcase.expectedStatus, rw.Code)
			assert.Equal(t, testcase.serviceCalled, s.input != nil)
			body := map[string]interface{}{}
			assert.Nil(t, json.Unmarshal(rw.Body.Bytes(), &body))
			assert.Equal(t, testcase.expectedResponse, body)
		})
	}
}

func TestServiceReceivesTokenAndPassword(t *testing.T) {
	s := &stubService{}
	req := httptest.NewRequest(
		http.MethodPost,
		"/reset/consume",
		strings.NewReader(`{"token": "abc", "password": "new-password"}`),
	)

	New(s).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, &resetpassword.Input{
		Token:       user.PasswordResetToken("abc"),
		NewPassword: user.RawPassword("new-password"),
	}, s.input)
}
