// internal/datasvc/service.go
//
// Institute data service.
//
// Context
// -------
// Service is the single access point for reading and mutating site
// content.  It is built once at startup and handed to the HTTP layer, the
// CLI, and the remote fallback path.  All state lives in memory; every
// mutation writes the whole affected collection through a store.Store and
// then signals subscribers that data changed.
//
// Failure semantics
// -----------------
//   • Reads never fail.  Missing snapshots fall back to seed data.
//   • A mutation first persists a copy of the next state.  Only when the
//     write succeeds is the copy swapped in and the change signal raised.
//     A failed write returns false and leaves memory untouched.
//   • Update or delete of an unknown id is a silent no-op that returns
//     true, writes nothing, and raises no signal.
//
// Concurrency
// -----------
// Writers serialise on wmu so each one sees the previous writer's result.
// Readers take mu only for the pointer swap, so a slow store never blocks
// page views.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.
package datasvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/smskills/institute/internal/auth"
	"github.com/smskills/institute/internal/content"
	"github.com/smskills/institute/internal/metrics"
	"github.com/smskills/institute/internal/notify"
	"github.com/smskills/institute/internal/store"
)

// Options tunes a Service.
type Options struct {
	// EnquiryLatency simulates a network round trip before an enquiry is
	// stored.  Zero disables it.
	EnquiryLatency time.Duration
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Service implements the content operations.  Safe for concurrent use.
type Service struct {
	store   store.Store
	authn   *auth.Authenticator
	broker  *notify.Broker
	log     *zap.SugaredLogger
	latency time.Duration
	now     func() time.Time

	wmu sync.Mutex   // serialises mutations
	mu  sync.RWMutex // guards the fields below

	settings      content.Settings
	courses       []content.Course
	notices       []content.Notice
	enquiries     []content.Enquiry // newest first
	pages         map[string]content.Page
	gallery       []content.GalleryImage
	lastEnquiryID int64
}

// New loads every collection from st, falling back to seed data for keys
// that were never written.  A snapshot that fails to decode is logged and
// replaced by seed data.  Only a store read error aborts construction.
func New(ctx context.Context, st store.Store, authn *auth.Authenticator, log *zap.SugaredLogger, opts Options) (*Service, error) {
	if st == nil || authn == nil {
		return nil, errors.New("datasvc: store and authenticator are required")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Service{
		store:   st,
		authn:   authn,
		broker:  notify.New(),
		log:     log,
		latency: opts.EnquiryLatency,
		now:     opts.Now,
	}

	var err error
	if s.settings, err = load(ctx, s, store.KeySettings, content.SeedSettings); err != nil {
		return nil, err
	}
	if s.courses, err = load(ctx, s, store.KeyCourses, content.SeedCourses); err != nil {
		return nil, err
	}
	if s.notices, err = load(ctx, s, store.KeyNotices, content.SeedNotices); err != nil {
		return nil, err
	}
	if s.enquiries, err = load(ctx, s, store.KeyEnquiries, func() []content.Enquiry { return []content.Enquiry{} }); err != nil {
		return nil, err
	}
	if s.pages, err = load(ctx, s, store.KeyPages, content.SeedPages); err != nil {
		return nil, err
	}
	if s.gallery, err = load(ctx, s, store.KeyGallery, content.SeedGallery); err != nil {
		return nil, err
	}

	sortNewestFirst(s.enquiries)
	for _, e := range s.enquiries {
		s.lastEnquiryID = max(s.lastEnquiryID, e.ID)
	}

	log.Infow("data service ready",
		"courses", len(s.courses),
		"notices", len(s.notices),
		"enquiries", len(s.enquiries),
		"pages", len(s.pages),
	)
	return s, nil
}

func load[T any](ctx context.Context, s *Service, key string, seed func() T) (T, error) {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return seed(), nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("datasvc: load %s: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Errorw("snapshot unreadable, using seed data", "key", key, "err", err)
		return seed(), nil
	}
	return v, nil
}

// persist writes v under key.  Callers hold wmu.
func (s *Service) persist(ctx context.Context, key string, v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Errorw("snapshot encode failed", "key", key, "err", err)
		metrics.StoreErrorsTotal.WithLabelValues(key).Inc()
		return false
	}
	if err := s.store.Put(ctx, key, raw); err != nil {
		s.log.Errorw("snapshot write failed", "key", key, "bytes", len(raw), "err", err)
		metrics.StoreErrorsTotal.WithLabelValues(key).Inc()
		return false
	}
	metrics.MutationsTotal.WithLabelValues(key).Inc()
	return true
}

// commit swaps state under mu and raises the change signal.
func (s *Service) commit(apply func()) {
	s.mu.Lock()
	apply()
	s.mu.Unlock()
	s.broker.Publish()
}

//
// Change notification
//

// Subscribe returns a channel that receives a value after every successful
// mutation.  Signals coalesce; consumers re-read whatever they display.
// Call cancel to unsubscribe.
func (s *Service) Subscribe() (<-chan struct{}, func()) { return s.broker.Subscribe() }

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error { return s.store.Ping(ctx) }

// Close releases subscribers.  The store is owned by the caller.
func (s *Service) Close() { s.broker.Close() }

//
// Settings
//

// Settings returns the current settings, or the seed defaults when never
// updated.
func (s *Service) Settings() content.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSettings(s.settings)
}

// UpdateSettings replaces the settings record wholesale.
func (s *Service) UpdateSettings(ctx context.Context, next content.Settings) bool {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	next = cloneSettings(next)
	if !s.persist(ctx, store.KeySettings, next) {
		return false
	}
	s.commit(func() { s.settings = next })
	s.log.Infow("settings updated", "site_name", next.SiteName)
	return true
}

func cloneSettings(in content.Settings) content.Settings {
	in.Socials = maps.Clone(in.Socials)
	return in
}

//
// Users
//

// Users returns the fixed account list.  Password digests are included for
// the caller's own use and are never serialised by content.AdminUser.
func (s *Service) Users() []content.AdminUser { return s.authn.Users() }

// Authenticate verifies a console login.
func (s *Service) Authenticate(username, credential string) (content.AdminUser, bool) {
	u, err := s.CheckCredentials(username, credential)
	return u, err == nil
}

// CheckCredentials is Authenticate with the failure reason
// (auth.ErrBadCredentials or auth.ErrThrottled).
func (s *Service) CheckCredentials(username, credential string) (content.AdminUser, error) {
	u, err := s.authn.Check(username, credential)
	switch {
	case err == nil:
		metrics.LoginTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, auth.ErrThrottled):
		metrics.LoginTotal.WithLabelValues("throttled").Inc()
	default:
		metrics.LoginTotal.WithLabelValues("bad_credentials").Inc()
	}
	return u, err
}

//
// Stats
//

// Stats summarises collection sizes for the dashboard.
type Stats struct {
	Courses          int `json:"courses"`
	PublishedCourses int `json:"publishedCourses"`
	Notices          int `json:"notices"`
	ActiveNotices    int `json:"activeNotices"`
	Enquiries        int `json:"enquiries"`
	NewEnquiries     int `json:"newEnquiries"`
	GalleryImages    int `json:"galleryImages"`
}

// Stats counts the current state.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{
		Courses:       len(s.courses),
		Notices:       len(s.notices),
		Enquiries:     len(s.enquiries),
		GalleryImages: len(s.gallery),
	}
	for _, c := range s.courses {
		if c.Published {
			st.PublishedCourses++
		}
	}
	for _, n := range s.notices {
		if n.Active {
			st.ActiveNotices++
		}
	}
	for _, e := range s.enquiries {
		if e.Status == content.StatusNew {
			st.NewEnquiries++
		}
	}
	return st
}

// nextID returns one more than the largest id in items.
func nextID[T any](items []T, id func(T) int64) int64 {
	var hi int64
	for _, it := range items {
		hi = max(hi, id(it))
	}
	return hi + 1
}

func without[T any](items []T, match func(T) bool) ([]T, bool) {
	i := slices.IndexFunc(items, match)
	if i < 0 {
		return items, false
	}
	return slices.Delete(slices.Clone(items), i, i+1), true
}
