package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smskills/institute/internal/config"
	"github.com/smskills/institute/internal/content"
)

type fakeLocal struct{}

func (fakeLocal) PublishedCourses() []content.Course {
	return []content.Course{{ID: 1, Name: "Local course", Published: true}}
}

func (fakeLocal) ActiveNotices() []content.Notice {
	return []content.Notice{{ID: 1, Title: "Local notice", Active: true}}
}

func newClient(t *testing.T, base string) *Client {
	t.Helper()
	c, err := New(config.Remote{APIBaseURL: base, Timeout: time.Second}, fakeLocal{}, nil)
	require.NoError(t, err)
	return c
}

func TestCoursesFromBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/courses", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":7,"name":"Remote","isPublished":true}]}`))
	}))
	defer srv.Close()

	got, src := newClient(t, srv.URL+"/api/").Courses(context.Background())
	assert.Equal(t, SourceRemote, src)
	require.Len(t, got, 1)
	assert.Equal(t, "Remote", got[0].Name)
}

func TestReadFallsBackToLocal(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) }},
		{"bad json", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`<html>`)) }},
		{"missing data", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`{}`)) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			c := newClient(t, srv.URL)

			courses, src := c.Courses(context.Background())
			assert.Equal(t, SourceLocal, src)
			assert.Equal(t, "Local course", courses[0].Name)

			notices, src := c.Notices(context.Background())
			assert.Equal(t, SourceLocal, src)
			assert.Equal(t, "Local notice", notices[0].Title)
		})
	}
}

func TestUnreachableBackendFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, src := newClient(t, url).Courses(context.Background())
	assert.Equal(t, SourceLocal, src)
}

func TestNoBaseURLIsOffline(t *testing.T) {
	c := newClient(t, "")
	assert.False(t, c.Online())
	_, src := c.Notices(context.Background())
	assert.Equal(t, SourceLocal, src)

	_, err := c.SubmitEnquiry(context.Background(), content.EnquiryInput{Name: "A", Phone: "1"})
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, MsgOffline, rerr.Message)
}

func TestConcurrentReadsShareOneRequest(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()
	c := newClient(t, srv.URL)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, src := c.Courses(context.Background())
			assert.Equal(t, SourceRemote, src)
		}()
	}
	// let the goroutines pile up behind the first request
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()
	assert.LessOrEqual(t, hits.Load(), int32(2))
}

func TestSubmitEnquiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/enquiry", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":42,"name":"A","status":"NEW"}}`))
	}))
	defer srv.Close()

	e, err := newClient(t, srv.URL).SubmitEnquiry(context.Background(), content.EnquiryInput{Name: "A", Phone: "1"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), e.ID)
	assert.Equal(t, content.StatusNew, e.Status)
}

func TestSubmitEnquiryErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"validation failed"}`))
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL).SubmitEnquiry(context.Background(), content.EnquiryInput{})
	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, http.StatusBadRequest, rerr.Status)
	assert.Equal(t, "validation failed", rerr.Message)

	dead := httptest.NewServer(http.NotFoundHandler())
	url := dead.URL
	dead.Close()
	_, err = newClient(t, url).SubmitEnquiry(context.Background(), content.EnquiryInput{})
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, MsgOffline, rerr.Message)
	assert.Zero(t, rerr.Status)
}
