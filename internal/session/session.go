// internal/session/session.go
//
// Console sessions.
//
// Context
//   A login yields an HS256 bearer token whose `jti` claim names a session
//   held in memory.  Verifying a request checks the signature and expiry
//   and then confirms the session is still registered, so logout revokes a
//   token immediately even though it has not expired.  Browsers may carry
//   the same token in the `institute_session` cookie instead of the
//   Authorization header.
//
//   Sessions live in a sync.Map with a last-seen stamp.  A background loop
//   drops expired and idle entries and trims the oldest ones under size
//   pressure (see evictor.go).
//
// Style
//   Two-space sentence spacing, Oxford comma, terse inline notes.
//
//------------------------------------------------------------------------------

package session

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/smskills/institute/internal/auth"
	"github.com/smskills/institute/internal/content"
	"github.com/smskills/institute/internal/metrics"
)

// CookieName carries the bearer token for browser clients.
const CookieName = "institute_session"

// Defaults for the eviction loop.
const (
	IdleTTL       = 2 * time.Hour
	MaxEntries    = 1000
	EvictInterval = 5 * time.Minute
)

var (
	// ErrNoToken means the request carried neither header nor cookie.
	ErrNoToken = errors.New("session: no token")
	// ErrRevoked means the token is valid but its session is gone.
	ErrRevoked = errors.New("session: revoked or expired")
)

type entry struct {
	principal auth.Principal
	expires   time.Time
	lastSeen  int64 // unix nano, atomic
}

// Registry tracks live sessions.  Create with New and stop with Close.
type Registry struct {
	issuer     *auth.Issuer
	log        *zap.SugaredLogger
	m          sync.Map // session id → *entry
	idleTTL    time.Duration
	maxEntries int
	ticker     *time.Ticker
	done       chan struct{}
	closeOnce  sync.Once
}

// New constructs a Registry and starts the background evictor.
func New(issuer *auth.Issuer, log *zap.SugaredLogger, idleTTL time.Duration, maxEntries int) *Registry {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	r := &Registry{
		issuer:     issuer,
		log:        log,
		idleTTL:    idleTTL,
		maxEntries: maxEntries,
		ticker:     time.NewTicker(EvictInterval),
		done:       make(chan struct{}),
	}
	go r.evictLoop()
	return r
}

// Close stops the evictor.
func (r *Registry) Close() {
	r.closeOnce.Do(func() {
		r.ticker.Stop()
		close(r.done)
	})
}

// Login issues a token for u and registers its session.
func (r *Registry) Login(u content.AdminUser) (token string, expires time.Time, err error) {
	token, claims, err := r.issuer.Issue(u)
	if err != nil {
		return "", time.Time{}, err
	}
	expires = claims.ExpiresAt.Time
	r.m.Store(claims.ID, &entry{
		principal: claims.Principal(),
		expires:   expires,
		lastSeen:  time.Now().UnixNano(),
	})
	metrics.ActiveSessions.Inc()
	r.log.Infow("session opened", "user", u.Username, "session", claims.ID)
	return token, expires, nil
}

// Verify checks token and returns the principal of its live session.
func (r *Registry) Verify(token string) (auth.Principal, error) {
	claims, err := r.issuer.Parse(token)
	if err != nil {
		return auth.Principal{}, err
	}
	v, ok := r.m.Load(claims.ID)
	if !ok {
		return auth.Principal{}, ErrRevoked
	}
	ent := v.(*entry)
	if time.Now().After(ent.expires) {
		r.remove(claims.ID)
		return auth.Principal{}, ErrRevoked
	}
	atomic.StoreInt64(&ent.lastSeen, time.Now().UnixNano())
	return ent.principal, nil
}

// Revoke ends the session with the given id.  Unknown ids are ignored.
func (r *Registry) Revoke(sessionID string) {
	if r.remove(sessionID) {
		r.log.Infow("session revoked", "session", sessionID)
	}
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	n := 0
	r.m.Range(func(_, _ any) bool { n++; return true })
	return n
}

func (r *Registry) remove(id string) bool {
	if _, loaded := r.m.LoadAndDelete(id); loaded {
		metrics.ActiveSessions.Dec()
		return true
	}
	return false
}

//
// Transport helpers
//

// TokenFromRequest reads "Authorization: Bearer <t>" and falls back to the
// session cookie.
func TokenFromRequest(req *http.Request) (string, error) {
	if h := req.Header.Get("Authorization"); h != "" {
		scheme, tok, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(tok) != "" {
			return strings.TrimSpace(tok), nil
		}
		return "", ErrNoToken
	}
	if c, err := req.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", ErrNoToken
}

// SetCookie stores token in an HttpOnly cookie that expires with it.
func SetCookie(w http.ResponseWriter, req *http.Request, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   req.TLS != nil, // only send over HTTPS
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	})
}

// ClearCookie removes the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
