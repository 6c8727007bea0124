package loginwithemail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ratelimiter "remindme/internal/core/domain/rate_limiter"
	"remindme/internal/core/domain/user"
	loginwithemail "remindme/internal/core/services/log_in_with_email"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	result loginwithemail.Result
	err    error
}

func (s *stubService) Run(
	ctx context.Context,
	input loginwithemail.Input,
) (loginwithemail.Result, error) {
	return s.result, s.err
}

func TestLogInWithEmail(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{
			id:             "success",
			body:           `{"email": "test@test.test", "password": "secret1"}`,
			expectedStatus: http.StatusOK,
		},
		{
			id:             "invalid credentials",
			body:           `{"email": "test@test.test", "password": "secret1"}`,
			err:            user.ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  MSG_INVALID_CREDENTIALS,
		},
		{
			id:             "rate limited",
			body:           `{"email": "test@test.test", "password": "secret1"}`,
			err:            ratelimiter.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
			expectedError:  "rate limit exceeded",
		},
		{
			id:             "missing password",
			body:           `{"email": "test@test.test"}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid password: cannot be blank",
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			s := &stubService{
				result: loginwithemail.Result{Token: user.SessionToken("session-token")},
				err:    testcase.err,
			}
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(testcase.body))
			rw := httptest.NewRecorder()

			New(s).ServeHTTP(rw, req)

			assert.Equal(t, testcase.expectedStatus, rw.Code)
			body := map[string]interface{}{}
			assert.Nil(t, json.Unmarshal(rw.Body.Bytes(), &body))
			if testcase.expectedError != "" {
				assert.Equal(t, testcase.expectedError, body["error"])
				return
			}
			assert.Equal(t, "session-token", body["token"])
		})
	}
}
