package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/smskills/institute/internal/content"
)

func newTestAuthenticator(t *testing.T, th *Throttle) *Authenticator {
	t.Helper()
	users, err := SeedUsers(bcrypt.MinCost)
	require.NoError(t, err)
	a, err := NewAuthenticator(users, th, nil)
	require.NoError(t, err)
	return a
}

func TestAuthenticateSeedAccounts(t *testing.T) {
	a := newTestAuthenticator(t, nil)

	u, ok := a.Authenticate("admin", "admin")
	assert.True(t, ok)
	assert.Equal(t, content.RoleSuperAdmin, u.Role)

	_, ok = a.Authenticate("admin", "wrong")
	assert.False(t, ok)
	_, ok = a.Authenticate("Admin", "admin")
	assert.False(t, ok, "usernames are case-sensitive")
	_, ok = a.Authenticate("admin", "ADMIN")
	assert.False(t, ok, "credentials are case-sensitive")
	_, ok = a.Authenticate("nobody", "admin")
	assert.False(t, ok)

	u, ok = a.Authenticate("editor", "editor")
	assert.True(t, ok)
	assert.Equal(t, content.RoleContentManager, u.Role)
}

func TestUsersNeverExposePlaintext(t *testing.T) {
	a := newTestAuthenticator(t, nil)
	for _, u := range a.Users() {
		assert.True(t, strings.HasPrefix(u.PasswordHash, "$2"), "bcrypt digest expected")
		assert.NotEqual(t, u.Username, u.PasswordHash)
	}
}

func TestThrottleBlocksAfterBurst(t *testing.T) {
	a := newTestAuthenticator(t, NewThrottle(0, 2, 0))

	_, err := a.Check("admin", "x")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = a.Check("admin", "y")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = a.Check("admin", "admin")
	assert.ErrorIs(t, err, ErrThrottled, "correct password is refused once throttled")

	_, err = a.Check("editor", "editor")
	assert.NoError(t, err, "buckets are per username")
}

func TestThrottleResetsOnSuccess(t *testing.T) {
	a := newTestAuthenticator(t, NewThrottle(0, 2, 0))

	_, err := a.Check("admin", "x")
	require.ErrorIs(t, err, ErrBadCredentials)
	_, err = a.Check("admin", "admin")
	require.NoError(t, err)

	_, err = a.Check("admin", "x")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = a.Check("admin", "x")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestThrottleSurvivesUsernameCycling(t *testing.T) {
	th := NewThrottle(0, 2, 4)
	assert.True(t, th.Allow("admin"))
	assert.True(t, th.Allow("admin"))
	assert.False(t, th.Allow("admin"))

	for i := 0; i < 100; i++ {
		th.Allow(fmt.Sprintf("junk-%d", i))
	}
	assert.False(t, th.Allow("admin"), "evicting the bucket must not restore the burst")

	th.Reset("admin")
	assert.True(t, th.Allow("admin"))
}

func TestThrottleRestoresHeldBucket(t *testing.T) {
	th := NewThrottle(0, 2, 2)
	assert.True(t, th.Allow("a"))
	assert.True(t, th.Allow("a"))
	th.Allow("b")
	th.Allow("c") // pushes out a while exhausted
	assert.Contains(t, th.held, "a")

	assert.False(t, th.Allow("a"))
	assert.NotContains(t, th.held, "a")
}

func TestThrottleHeldTableIsBounded(t *testing.T) {
	th := NewThrottle(0, 1, 2)
	for i := 0; i < 20; i++ {
		th.Allow(fmt.Sprintf("u%d", i))
	}
	assert.LessOrEqual(t, len(th.held), 2)
	assert.Equal(t, 2, th.buckets.Len())
}

func TestNewThrottleDisabled(t *testing.T) {
	assert.Nil(t, NewThrottle(1, 0, 0))
}

func TestNewAuthenticatorRejectsBadInput(t *testing.T) {
	_, err := NewAuthenticator([]content.AdminUser{{Username: "a", PasswordHash: "plain"}}, nil, nil)
	assert.Error(t, err)

	h, _ := HashPassword("x", bcrypt.MinCost)
	_, err = NewAuthenticator([]content.AdminUser{
		{ID: "1", Username: "a", PasswordHash: h},
		{ID: "2", Username: "a", PasswordHash: h},
	}, nil, nil)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	iss, err := NewIssuer([]byte(strings.Repeat("k", 32)), time.Hour)
	require.NoError(t, err)

	tok, claims, err := iss.Issue(content.AdminUser{ID: "1", Username: "admin", Role: content.RoleSuperAdmin})
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	got, err := iss.Parse(tok)
	require.NoError(t, err)
	p := got.Principal()
	assert.Equal(t, "admin", p.Username)
	assert.Equal(t, content.RoleSuperAdmin, p.Role)
	assert.Equal(t, claims.ID, p.SessionID)
}

func TestTokenRejections(t *testing.T) {
	secret := []byte(strings.Repeat("k", 32))
	iss, _ := NewIssuer(secret, time.Hour)
	tok, _, _ := iss.Issue(content.AdminUser{ID: "1", Username: "admin"})

	other, _ := NewIssuer([]byte(strings.Repeat("z", 32)), time.Hour)
	_, err := other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	late, _ := NewIssuer(secret, time.Hour)
	late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = late.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = iss.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewIssuerShortSecret(t *testing.T) {
	_, err := NewIssuer([]byte("short"), time.Hour)
	assert.Error(t, err)
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), Principal{Username: "admin"})
	p, ok := PrincipalFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "admin", p.Username)
}
