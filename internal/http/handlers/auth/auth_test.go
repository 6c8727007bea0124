package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"remindme/internal/core/domain/user"
	"remindme/internal/core/services/auth"

	"github.com/stretchr/testify/assert"
)

func TestParseToken(t *testing.T) {
	cases := []struct {
		header   string
		expected user.SessionToken
		ok       bool
	}{
		{header: "Bearer abc", expected: "abc", ok: true},
		{header: "", ok: false},
		{header: "Token abc", ok: false},
		{header: "Bearer " + strings.Repeat("a", AUTH_TOKEN_MAX_LEN+1), ok: false},
	}

	for _, testcase := range cases {
		t.Run(testcase.header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", testcase.header)

			token, ok := ParseToken(req)

			assert.Equal(t, testcase.ok, ok)
			assert.Equal(t, testcase.expected, token)
		})
	}
}

func TestSetAuthTokenToContext(t *testing.T) {
	var token interface{}
	next := http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		token = r.Context().Value(auth.CONTEXT_AUTH_TOKEN_KEY)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc")

	SetAuthTokenToContext(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, user.SessionToken("abc"), token)
}
