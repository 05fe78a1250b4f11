// internal/auth/password.go
//
// Credential verification.
//
// Context
// -------
// Console accounts are a fixed list loaded at startup.  Each carries a
// bcrypt digest; plaintext credentials never leave this file.  Every login
// attempt first passes through a per-username token bucket, and unknown
// usernames still pay for one bcrypt comparison so response time does not
// reveal which names exist.
//
// Notes
// -----
// • A successful login resets that username's bucket.
// • Oxford commas, two spaces after periods.

package auth

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/smskills/institute/internal/content"
)

var (
	// ErrBadCredentials covers unknown usernames and wrong passwords alike.
	ErrBadCredentials = errors.New("auth: invalid username or password")
	// ErrThrottled means the username exhausted its attempt budget.
	ErrThrottled = errors.New("auth: too many attempts")
)

// HashPassword returns a bcrypt digest of pw at the given cost.  cost <= 0
// selects bcrypt.DefaultCost.
func HashPassword(pw string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(b), nil
}

// SeedUsers hashes the development seed accounts.  Used only when the
// configuration declares no users.
func SeedUsers(cost int) ([]content.AdminUser, error) {
	seeds := content.SeedAccounts()
	out := make([]content.AdminUser, 0, len(seeds))
	for _, s := range seeds {
		h, err := HashPassword(s.Password, cost)
		if err != nil {
			return nil, err
		}
		out = append(out, content.AdminUser{ID: s.ID, Username: s.Username, Role: s.Role, PasswordHash: h})
	}
	return out, nil
}

// Authenticator verifies console credentials.  Safe for concurrent use.
type Authenticator struct {
	users    map[string]content.AdminUser
	ordered  []content.AdminUser
	dummy    []byte
	throttle *Throttle
	log      *zap.SugaredLogger
}

// NewAuthenticator indexes users by exact username.  throttle may be nil
// to disable rate limiting.
func NewAuthenticator(users []content.AdminUser, throttle *Throttle, log *zap.SugaredLogger) (*Authenticator, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	a := &Authenticator{
		users:    make(map[string]content.AdminUser, len(users)),
		ordered:  append([]content.AdminUser(nil), users...),
		throttle: throttle,
		log:      log,
	}

	cost := bcrypt.DefaultCost
	for _, u := range users {
		if _, dup := a.users[u.Username]; dup {
			return nil, fmt.Errorf("auth: duplicate username %q", u.Username)
		}
		c, err := bcrypt.Cost([]byte(u.PasswordHash))
		if err != nil {
			return nil, fmt.Errorf("auth: user %q: %w", u.Username, err)
		}
		cost = c
		a.users[u.Username] = u
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("institute-timing-pad"), cost)
	if err != nil {
		return nil, fmt.Errorf("auth: dummy hash: %w", err)
	}
	a.dummy = dummy
	return a, nil
}

// Users returns the account list in declaration order.
func (a *Authenticator) Users() []content.AdminUser {
	return append([]content.AdminUser(nil), a.ordered...)
}

// Check verifies username and credential.  Matching is exact and
// case-sensitive.
func (a *Authenticator) Check(username, credential string) (content.AdminUser, error) {
	if a.throttle != nil && !a.throttle.Allow(username) {
		a.log.Warnw("login throttled", "username", username)
		return content.AdminUser{}, ErrThrottled
	}

	u, ok := a.users[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(a.dummy, []byte(credential))
		a.log.Infow("login failed", "username", username, "reason", "unknown user")
		return content.AdminUser{}, ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(credential)); err != nil {
		a.log.Infow("login failed", "username", username, "reason", "bad password")
		return content.AdminUser{}, ErrBadCredentials
	}

	if a.throttle != nil {
		a.throttle.Reset(username)
	}
	a.log.Infow("login ok", "username", username, "role", u.Role)
	return u, nil
}

// Authenticate is Check collapsed to a boolean.
func (a *Authenticator) Authenticate(username, credential string) (content.AdminUser, bool) {
	u, err := a.Check(username, credential)
	return u, err == nil
}
