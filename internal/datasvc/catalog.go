package datasvc

import (
	"context"
	"slices"

	"github.com/smskills/institute/internal/content"
	"github.com/smskills/institute/internal/store"
)

//
// Courses
//

// Courses returns every course in display order.
func (s *Service) Courses() []content.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.courses)
}

// PublishedCourses returns the courses shown on public pages.
func (s *Service) PublishedCourses() []content.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]content.Course, 0, len(s.courses))
	for _, c := range s.courses {
		if c.Published {
			out = append(out, c)
		}
	}
	return out
}

// SaveCourse upserts by id.  A matching id replaces the course in place;
// otherwise the course is appended, receiving a fresh id when c.ID is zero.
// The stored course is returned.
func (s *Service) SaveCourse(ctx context.Context, c content.Course) (content.Course, bool) {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	next, saved := upsert(s.courses, c, func(c content.Course) int64 { return c.ID },
		func(c *content.Course, id int64) { c.ID = id })
	if !s.persist(ctx, store.KeyCourses, next) {
		return content.Course{}, false
	}
	s.commit(func() { s.courses = next })
	s.log.Infow("course saved", "id", saved.ID, "name", saved.Name)
	return saved, true
}

// DeleteCourse removes the course with id.  Unknown ids are a no-op.
func (s *Service) DeleteCourse(ctx context.Context, id int64) bool {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	next, found := without(s.courses, func(c content.Course) bool { return c.ID == id })
	if !found {
		return true
	}
	if !s.persist(ctx, store.KeyCourses, next) {
		return false
	}
	s.commit(func() { s.courses = next })
	s.log.Infow("course deleted", "id", id)
	return true
}

//
// Notices
//

// Notices returns every notice in display order.
func (s *Service) Notices() []content.Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notices)
}

// ActiveNotices returns the notices shown on the public board.
func (s *Service) ActiveNotices() []content.Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]content.Notice, 0, len(s.notices))
	for _, n := range s.notices {
		if n.Active {
			out = append(out, n)
		}
	}
	return out
}

// SaveNotice upserts by id with the same contract as SaveCourse.
func (s *Service) SaveNotice(ctx context.Context, n content.Notice) (content.Notice, bool) {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	next, saved := upsert(s.notices, n, func(n content.Notice) int64 { return n.ID },
		func(n *content.Notice, id int64) { n.ID = id })
	if !s.persist(ctx, store.KeyNotices, next) {
		return content.Notice{}, false
	}
	s.commit(func() { s.notices = next })
	s.log.Infow("notice saved", "id", saved.ID, "title", saved.Title)
	return saved, true
}

// DeleteNotice removes the notice with id.  Unknown ids are a no-op.
func (s *Service) DeleteNotice(ctx context.Context, id int64) bool {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	next, found := without(s.notices, func(n content.Notice) bool { return n.ID == id })
	if !found {
		return true
	}
	if !s.persist(ctx, store.KeyNotices, next) {
		return false
	}
	s.commit(func() { s.notices = next })
	s.log.Infow("notice deleted", "id", id)
	return true
}

//
// Gallery
//

// Gallery returns every image in display order.
func (s *Service) Gallery() []content.GalleryImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.gallery)
}

// AddGalleryImage appends img with a fresh id.
func (s *Service) AddGalleryImage(ctx context.Context, img content.GalleryImage) (content.GalleryImage, bool) {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	img.ID = nextID(s.gallery, func(g content.GalleryImage) int64 { return g.ID })
	next := append(slices.Clone(s.gallery), img)
	if !s.persist(ctx, store.KeyGallery, next) {
		return content.GalleryImage{}, false
	}
	s.commit(func() { s.gallery = next })
	s.log.Infow("gallery image added", "id", img.ID, "category", img.Category)
	return img, true
}

// RemoveGalleryImage deletes the image with id.  Unknown ids are a no-op.
func (s *Service) RemoveGalleryImage(ctx context.Context, id int64) bool {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	next, found := without(s.gallery, func(g content.GalleryImage) bool { return g.ID == id })
	if !found {
		return true
	}
	if !s.persist(ctx, store.KeyGallery, next) {
		return false
	}
	s.commit(func() { s.gallery = next })
	s.log.Infow("gallery image removed", "id", id)
	return true
}

// upsert returns a new slice with item replaced in place (matching id) or
// appended (no match).  A zero id is replaced by the next free id.
func upsert[T any](items []T, item T, id func(T) int64, setID func(*T, int64)) ([]T, T) {
	next := slices.Clone(items)
	if want := id(item); want != 0 {
		if i := slices.IndexFunc(next, func(x T) bool { return id(x) == want }); i >= 0 {
			next[i] = item
			return next, item
		}
	} else {
		setID(&item, nextID(items, id))
	}
	return append(next, item), item
}
