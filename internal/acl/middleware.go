// internal/acl/middleware.go
//
// Chi middleware helpers that enforce authentication and RBAC.
//
// RequireSession turns a bearer token or session cookie into an
// auth.Principal on the request context.  RequireRole then admits only the
// listed roles.  Both answer with a JSON `{"message": …}` body so API
// clients never have to parse plain text.

package acl

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/smskills/institute/internal/auth"
	"github.com/smskills/institute/internal/session"
)

// Verifier resolves a token into a principal.  *session.Registry satisfies
// it.
type Verifier interface {
	Verify(token string) (auth.Principal, error)
}

// RequireSession rejects requests without a live session.
func RequireSession(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok, err := session.TokenFromRequest(r)
			if err != nil {
				deny(w, http.StatusUnauthorized, "authentication required")
				return
			}
			p, err := v.Verify(tok)
			if err != nil {
				if !errors.Is(err, session.ErrRevoked) && !errors.Is(err, auth.ErrInvalidToken) {
					zap.S().Errorw("acl verify session", "err", err)
				}
				deny(w, http.StatusUnauthorized, "session invalid or expired")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole ensures the current principal holds ANY of the supplied roles.
func RequireRole(names ...string) func(http.Handler) http.Handler {
	if len(names) == 0 {
		panic("acl.RequireRole: at least one role name must be supplied")
	}
	allowSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		allowSet[n] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.PrincipalFrom(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if _, ok := allowSet[p.Role]; !ok {
				zap.S().Infow("acl denied", "user", p.Username, "role", p.Role, "path", r.URL.Path)
				deny(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func deny(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
