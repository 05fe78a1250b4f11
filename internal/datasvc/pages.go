package datasvc

import (
	"context"
	"maps"

	"github.com/smskills/institute/internal/content"
	"github.com/smskills/institute/internal/store"
)

// Page returns the page with id, or the default page when id is unknown.
// The default page keeps its own id so callers can tell a fallback apart.
func (s *Service) Page(id string) content.Page {
	s.mu.RLock()
	p, ok := s.pages[id]
	s.mu.RUnlock()
	if !ok {
		return content.DefaultPage()
	}
	return clonePage(p)
}

// PagePatch carries a partial page update.  Nil fields are left alone and
// Sections merges key by key, a nil value deleting that key.
type PagePatch struct {
	Title    *string        `json:"title"`
	Subtitle *string        `json:"subtitle"`
	Sections map[string]any `json:"sections"`
	SEO      *content.SEO   `json:"seo"`
}

// UpdatePage merges patch into page id, creating the page when absent.
func (s *Service) UpdatePage(ctx context.Context, id string, patch PagePatch) (content.Page, bool) {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	p, ok := s.pages[id]
	if ok {
		p = clonePage(p)
	} else {
		p = content.Page{ID: id, Sections: map[string]any{}}
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		p.Subtitle = *patch.Subtitle
	}
	if patch.SEO != nil {
		p.SEO = *patch.SEO
	}
	if p.Sections == nil {
		p.Sections = map[string]any{}
	}
	for k, v := range patch.Sections {
		if v == nil {
			delete(p.Sections, k)
			continue
		}
		p.Sections[k] = cloneValue(v)
	}

	next := maps.Clone(s.pages)
	if next == nil {
		next = map[string]content.Page{}
	}
	next[id] = p
	if !s.persist(ctx, store.KeyPages, next) {
		return content.Page{}, false
	}
	s.commit(func() { s.pages = next })
	s.log.Infow("page updated", "id", id)
	return clonePage(p), true
}

func clonePage(p content.Page) content.Page {
	if p.Sections != nil {
		p.Sections = cloneValue(p.Sections).(map[string]any)
	}
	return p
}

// cloneValue deep-copies the JSON shapes a section can hold.  Scalars are
// returned as is.
func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
