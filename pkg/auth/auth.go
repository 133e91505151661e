// Package auth gates tool invocations behind a static bearer token.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
)

// Authenticator validates presented bearer tokens against the configured secret.
type Authenticator struct {
	token string
}

// New creates an Authenticator for the given secret token.
func New(token string) *Authenticator {
	return &Authenticator{token: token}
}

// Authorize reports whether the presented token matches the configured secret.
// Comparison is constant time.
func (a *Authenticator) Authorize(presented string) bool {
	if a.token == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a.token), []byte(presented)) == 1
}

// Middleware rejects requests without a valid Authorization: Bearer header
// before they reach the MCP endpoints. Unauthorized requests never trigger
// tool handlers, and therefore never trigger outbound calls.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok || !a.Authorize(token) {
			log.Warn("Rejected unauthorized request", "path", r.URL.Path, "remote", r.RemoteAddr)
			w.Header().Set("WWW-Authenticate", `Bearer realm="puch-mcp"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
