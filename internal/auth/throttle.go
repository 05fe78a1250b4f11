package auth

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/smskills/institute/internal/cache"
)

// DefaultThrottleEntries bounds how many usernames keep a limiter in the
// LRU.  A bucket pushed out while exhausted moves to a side table, so
// cycling through throwaway usernames cannot hand a locked-out name a
// fresh burst.  The side table has the same bound: refilled buckets are
// swept when it is full, and if it is still full the evicted bucket is
// dropped.  Filling it costs a full burst of bcrypt checks per name.
const DefaultThrottleEntries = 4096

// Throttle keeps a token bucket per username.  Safe for concurrent use.
type Throttle struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	entries int
	buckets *cache.LRU[string, *rate.Limiter]
	held    map[string]*rate.Limiter // evicted while exhausted
}

// NewThrottle returns nil when burst <= 0, which disables throttling.
// perSecond is the refill rate.
func NewThrottle(perSecond float64, burst, entries int) *Throttle {
	if burst <= 0 {
		return nil
	}
	if entries <= 0 {
		entries = DefaultThrottleEntries
	}
	t := &Throttle{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		entries: entries,
		held:    make(map[string]*rate.Limiter),
	}
	t.buckets = cache.NewWithEvict(entries, t.evicted)
	return t
}

// Allow spends one attempt for username.
func (t *Throttle) Allow(username string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.buckets.Get(username)
	if !ok {
		if l, ok = t.held[username]; ok {
			delete(t.held, username)
		} else {
			l = rate.NewLimiter(t.limit, t.burst)
		}
		t.buckets.Add(username, l)
	}
	return l.Allow()
}

// Reset forgets username's bucket.
func (t *Throttle) Reset(username string) {
	t.mu.Lock()
	t.buckets.Remove(username)
	delete(t.held, username)
	t.mu.Unlock()
}

// evicted runs under mu from inside buckets.Add.
func (t *Throttle) evicted(username string, l *rate.Limiter) {
	if l.Tokens() >= 1 {
		return
	}
	if len(t.held) >= t.entries {
		for name, hl := range t.held {
			if t.full(hl) {
				delete(t.held, name)
			}
		}
		if len(t.held) >= t.entries {
			return
		}
	}
	t.held[username] = l
}

func (t *Throttle) full(l *rate.Limiter) bool {
	return l.Tokens() >= float64(t.burst)
}
