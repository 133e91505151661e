package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	a := New("secret-token")

	assert.True(t, a.Authorize("secret-token"))
	assert.False(t, a.Authorize("wrong-token"))
	assert.False(t, a.Authorize(""))
	assert.False(t, a.Authorize("secret-token-with-suffix"))

	// A server configured without a token accepts nothing.
	assert.False(t, New("").Authorize(""))
	assert.False(t, New("").Authorize("anything"))
}

func TestMiddleware(t *testing.T) {
	a := New("secret-token")

	reached := false
	handler := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name   string
		header string
		status int
		passes bool
	}{
		{"valid token", "Bearer secret-token", http.StatusOK, true},
		{"wrong token", "Bearer nope", http.StatusUnauthorized, false},
		{"missing header", "", http.StatusUnauthorized, false},
		{"malformed header", "secret-token", http.StatusUnauthorized, false},
		{"wrong scheme", "Basic secret-token", http.StatusUnauthorized, false},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, false},
		{"case-insensitive scheme", "bearer secret-token", http.StatusOK, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			reached = false
			req := httptest.NewRequest(http.MethodGet, "/sse", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, c.status, rec.Code)
			// Rejected requests must never reach the inner handler, which is
			// what guarantees no outbound call is attempted.
			assert.Equal(t, c.passes, reached)
			if !c.passes {
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
			}
		})
	}
}
