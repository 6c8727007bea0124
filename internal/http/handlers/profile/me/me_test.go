package me

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	c "remindme/internal/core/domain/common"
	"remindme/internal/core/domain/user"
	service "remindme/internal/core/services/get_user_by_session_token"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	result service.Result
	err    error
}

func (s *stubService) Run(ctx context.Context, input service.Input) (service.Result, error) {
	return s.result, s.err
}

func TestMe(t *testing.T) {
	s := &stubService{result: service.Result{User: user.User{
		ID:        1,
		Email:     c.Email("test@test.test"),
		CreatedAt: time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC),
	}}}
	rw := httptest.NewRecorder()

	New(s).ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/profile/me", nil))

	assert.Equal(t, http.StatusOK, rw.Code)
	assert.JSONEq(
		t,
		`{"user": {"id": 1, "name": null, "email": "test@test.test", "createdAt": "2023-05-01T12:00:00Z"}}`,
		rw.Body.String(),
	)
}

func TestMeUnauthorized(t *testing.T) {
	s := &stubService{err: user.ErrUserDoesNotExist}
	rw := httptest.NewRecorder()

	New(s).ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/profile/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rw.Code)
}
