// internal/acl/middleware_test.go
//
// Unit-tests for the session and role middleware.
//
// Run: go test ./internal/acl -v

package acl

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smskills/institute/internal/auth"
	"github.com/smskills/institute/internal/content"
	"github.com/smskills/institute/internal/session"
)

type fakeVerifier map[string]auth.Principal

func (f fakeVerifier) Verify(tok string) (auth.Principal, error) {
	if p, ok := f[tok]; ok {
		return p, nil
	}
	return auth.Principal{}, session.ErrRevoked
}

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if _, found := auth.PrincipalFrom(r.Context()); !found {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, token string) int {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireSessionAndRole(t *testing.T) {
	v := fakeVerifier{
		"super":  {Username: "admin", Role: content.RoleSuperAdmin},
		"editor": {Username: "editor", Role: content.RoleContentManager},
	}
	superOnly := RequireSession(v)(RequireRole(content.RoleSuperAdmin)(ok))
	anyStaff := RequireSession(v)(RequireRole(content.RoleSuperAdmin, content.RoleContentManager)(ok))

	tests := []struct {
		name  string
		h     http.Handler
		token string
		want  int
	}{
		{"no token", superOnly, "", http.StatusUnauthorized},
		{"revoked token", superOnly, "stale", http.StatusUnauthorized},
		{"super admin allowed", superOnly, "super", http.StatusOK},
		{"editor forbidden", superOnly, "editor", http.StatusForbidden},
		{"editor on shared route", anyStaff, "editor", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := serve(tt.h, tt.token); got != tt.want {
				t.Fatalf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	if got := serve(RequireRole(content.RoleSuperAdmin)(ok), ""); got != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", got)
	}
}

func TestRequireRolePanicsWithoutRoles(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	RequireRole()
}
