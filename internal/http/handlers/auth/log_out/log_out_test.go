package logout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"remindme/internal/core/domain/user"
	logout "remindme/internal/core/services/log_out"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *logout.Input
}

func (s *stubService) Run(ctx context.Context, input logout.Input) (logout.Result, error) {
	s.input = &input
	return logout.Result{}, s.err
}

func TestLogOut(t *testing.T) {
	s := &stubService{}
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer session-token")
	rw := httptest.NewRecorder()

	New(s).ServeHTTP(rw, req)

	assert.Equal(t, http.StatusOK, rw.Code)
	assert.Equal(t, user.SessionToken("session-token"), s.input.Token)
}

func TestLogOutWithoutToken(t *testing.T) {
	s := &stubService{}
	rw := httptest.NewRecorder()

	New(s).ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusUnauthorized, rw.Code)
	assert.Nil(t, s.input)
}

func TestLogOutUnknownSession(t *testing.T) {
	s := &stubService{err: user.ErrSessionDoesNotExist}
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer session-token")
	rw := httptest.NewRecorder()

	New(s).ServeHTTP(rw, req)

	assert.Equal(t, http.StatusUnauthorized, rw.Code)
}
