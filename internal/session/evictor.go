// evictor.go houses the eviction loop for Registry.  Every EvictInterval it
// scans the map and removes:
//
//   - sessions past their token expiry or idle longer than idleTTL
//   - least-recently-used sessions when the map exceeds maxEntries
package session

import (
	"sort"
	"sync/atomic"
	"time"
)

func (r *Registry) evictLoop() {
	for {
		select {
		case <-r.done:
			return
		case now := <-r.ticker.C:
			r.evict(now)
		}
	}
}

func (r *Registry) evict(now time.Time) {
	var count int

	// ----------------------------------------------------------------
	// Expiry and idle pass
	// ----------------------------------------------------------------
	r.m.Range(func(key, value any) bool {
		ent := value.(*entry)
		idle := time.Duration(now.UnixNano() - atomic.LoadInt64(&ent.lastSeen))
		if now.After(ent.expires) || (r.idleTTL > 0 && idle > r.idleTTL) {
			if r.remove(key.(string)) {
				r.log.Debugw("session evicted", "session", key, "idle", idle.Truncate(time.Second))
			}
			return true
		}
		count++
		return true
	})

	// ----------------------------------------------------------------
	// LRU pass
	// ----------------------------------------------------------------
	if r.maxEntries <= 0 || count <= r.maxEntries {
		return
	}
	type kv struct {
		key string
		at  int64
	}
	all := make([]kv, 0, count)
	r.m.Range(func(key, value any) bool {
		all = append(all, kv{key: key.(string), at: atomic.LoadInt64(&value.(*entry).lastSeen)})
		return true
	})
	sort.Slice(all, func(i, j int) bool { return all[i].at < all[j].at })
	for i := 0; i < len(all)-r.maxEntries; i++ {
		if r.remove(all[i].key) {
			r.log.Debugw("session evicted (LRU pressure)", "session", all[i].key)
		}
	}
}
