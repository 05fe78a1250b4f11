package datasvc

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/smskills/institute/internal/content"
	"github.com/smskills/institute/internal/metrics"
	"github.com/smskills/institute/internal/store"
)

// Enquiries returns every lead, newest first.
func (s *Service) Enquiries() []content.Enquiry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.enquiries)
}

// SubmitEnquiry stores a new lead.  Every text field is sanitised, the id
// is derived from the clock in milliseconds and is strictly greater than
// any id issued before, and the status starts at NEW.  The optional
// simulated latency elapses first; cancelling ctx during it abandons the
// submission.  Failures are reported through the boolean only.
func (s *Service) SubmitEnquiry(ctx context.Context, in content.EnquiryInput) (content.Enquiry, bool) {
	if s.latency > 0 {
		t := time.NewTimer(s.latency)
		select {
		case <-ctx.Done():
			t.Stop()
			s.log.Infow("enquiry abandoned", "err", ctx.Err())
			metrics.EnquiriesTotal.WithLabelValues("failed").Inc()
			return content.Enquiry{}, false
		case <-t.C:
		}
	}

	s.wmu.Lock()
	defer s.wmu.Unlock()

	now := s.now()
	if len(s.enquiries) > 0 && now.Before(s.enquiries[0].Timestamp) {
		now = s.enquiries[0].Timestamp // clock stepped back; keep newest-first
	}
	id := max(now.UnixMilli(), s.lastEnquiryID+1)

	clean := in.Sanitized()
	e := content.Enquiry{
		ID:        id,
		Timestamp: now,
		Name:      clean.Name,
		Phone:     clean.Phone,
		Email:     clean.Email,
		Course:    clean.Course,
		Message:   clean.Message,
		Status:    content.StatusNew,
	}

	next := make([]content.Enquiry, 0, len(s.enquiries)+1)
	next = append(next, e)
	next = append(next, s.enquiries...)
	if !s.persist(ctx, store.KeyEnquiries, next) {
		metrics.EnquiriesTotal.WithLabelValues("failed").Inc()
		return content.Enquiry{}, false
	}
	s.commit(func() {
		s.enquiries = next
		s.lastEnquiryID = id
	})
	metrics.EnquiriesTotal.WithLabelValues("accepted").Inc()
	s.log.Infow("enquiry stored", "id", id, "course", e.Course)
	return e, true
}

// UpdateEnquiryStatus sets the status of lead id.  Any known status may
// follow any other.  An unknown status is refused; an unknown id is a
// no-op.
func (s *Service) UpdateEnquiryStatus(ctx context.Context, id int64, status content.Status) bool {
	if !status.Valid() {
		s.log.Warnw("enquiry status refused", "id", id, "status", status)
		return false
	}

	s.wmu.Lock()
	defer s.wmu.Unlock()

	i := slices.IndexFunc(s.enquiries, func(e content.Enquiry) bool { return e.ID == id })
	if i < 0 {
		return true
	}
	if s.enquiries[i].Status == status {
		return true
	}
	next := slices.Clone(s.enquiries)
	next[i].Status = status
	if !s.persist(ctx, store.KeyEnquiries, next) {
		return false
	}
	s.commit(func() { s.enquiries = next })
	s.log.Infow("enquiry status changed", "id", id, "status", status)
	return true
}

// DeleteEnquiry removes lead id.  Unknown ids are a no-op.
func (s *Service) DeleteEnquiry(ctx context.Context, id int64) bool {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	next, found := without(s.enquiries, func(e content.Enquiry) bool { return e.ID == id })
	if !found {
		return true
	}
	if !s.persist(ctx, store.KeyEnquiries, next) {
		return false
	}
	s.commit(func() { s.enquiries = next })
	s.log.Infow("enquiry deleted", "id", id)
	return true
}

func sortNewestFirst(es []content.Enquiry) {
	sort.SliceStable(es, func(i, j int) bool {
		if !es[i].Timestamp.Equal(es[j].Timestamp) {
			return es[i].Timestamp.After(es[j].Timestamp)
		}
		return es[i].ID > es[j].ID
	})
}
