// internal/remote/client.go
//
// Backend fetch client.
//
// Context
// -------
// Front ends that talk to a separately deployed backend use Client.  Reads
// (courses, notices) try the backend first and quietly fall back to the
// local data service when the backend is missing, slow, or broken, so the
// public site keeps rendering.  Writes never fall back: an enquiry that did
// not reach the backend is reported to the caller with a message fit for
// the visitor.
//
// Concurrency
// -----------
// Identical concurrent reads share one in-flight request through a
// singleflight.Group.  The shared call runs on a context detached from any single
// caller so one cancelled request cannot fail its peers; the client
// timeout still bounds it.
//
// Notes
// -----
//   • No retries.  A failed read costs one round trip, then local data.
//   • Oxford commas, two spaces after periods.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/smskills/institute/internal/config"
	"github.com/smskills/institute/internal/content"
	"github.com/smskills/institute/internal/metrics"
)

// DefaultTimeout applies when config.Remote.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// maxResponse caps how much of a backend body is read.
const maxResponse = 4 << 20

// MsgOffline is shown when the backend cannot be reached at all.
const MsgOffline = "backend is offline or unreachable"

// Source names where a read was served from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Local is the fallback for reads.  *datasvc.Service satisfies it.
type Local interface {
	PublishedCourses() []content.Course
	ActiveNotices() []content.Notice
}

// Error is a failed write.  Message is safe to show to end users.
type Error struct {
	Status  int // 0 for transport failures
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote: %s: %v", e.Message, e.Err)
	}
	return "remote: " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Client talks to one backend base URL.
type Client struct {
	base  string
	http  *http.Client
	local Local
	log   *zap.SugaredLogger
	sfg   singleflight.Group
}

// New builds a Client.  An empty cfg.APIBaseURL yields a client that always
// serves reads locally and refuses writes.
func New(cfg config.Remote, local Local, log *zap.SugaredLogger) (*Client, error) {
	if local == nil {
		return nil, errors.New("remote: local fallback is required")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = cfg.Timeout
	if hc.Timeout <= 0 {
		hc.Timeout = DefaultTimeout
	}
	return &Client{
		base:  strings.TrimRight(cfg.APIBaseURL, "/"),
		http:  hc,
		local: local,
		log:   log,
	}, nil
}

// Online reports whether a backend URL is configured.
func (c *Client) Online() bool { return c.base != "" }

// Courses returns the published courses.
func (c *Client) Courses(ctx context.Context) ([]content.Course, Source) {
	var out []content.Course
	if err := c.read(ctx, "/courses", &out); err != nil {
		c.fallback("courses", err)
		return c.local.PublishedCourses(), SourceLocal
	}
	return out, SourceRemote
}

// Notices returns the active notices.
func (c *Client) Notices(ctx context.Context) ([]content.Notice, Source) {
	var out []content.Notice
	if err := c.read(ctx, "/notices", &out); err != nil {
		c.fallback("notices", err)
		return c.local.ActiveNotices(), SourceLocal
	}
	return out, SourceRemote
}

func (c *Client) fallback(resource string, err error) {
	metrics.RemoteFallbackTotal.WithLabelValues(resource).Inc()
	if c.Online() {
		c.log.Warnw("backend read failed, serving local data", "resource", resource, "err", err)
	}
}

var errOffline = errors.New("no backend configured")

// read GETs path and decodes its `{data: …}` body into dst.
func (c *Client) read(ctx context.Context, path string, dst any) error {
	if !c.Online() {
		return errOffline
	}
	v, err, shared := c.sfg.Do(path, func() (any, error) {
		return c.get(context.WithoutCancel(ctx), path)
	})
	if err != nil {
		return err
	}
	if shared {
		c.log.Debugw("backend read shared", "path", path)
	}
	var body struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(v.([]byte), &body); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if len(body.Data) == 0 || string(body.Data) == "null" {
		return fmt.Errorf("decode %s: missing data", path)
	}
	return json.Unmarshal(body.Data, dst)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return raw, nil
}

// SubmitEnquiry posts in to the backend.  Failures come back as *Error.
func (c *Client) SubmitEnquiry(ctx context.Context, in content.EnquiryInput) (content.Enquiry, error) {
	if !c.Online() {
		return content.Enquiry{}, &Error{Message: MsgOffline, Err: errOffline}
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return content.Enquiry{}, &Error{Message: "could not encode enquiry", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/enquiry", bytes.NewReader(payload))
	if err != nil {
		return content.Enquiry{}, &Error{Message: MsgOffline, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warnw("enquiry post failed", "err", err)
		return content.Enquiry{}, &Error{Message: MsgOffline, Err: err}
	}
	defer resp.Body.Close()

	var body struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    content.Enquiry `json:"data"`
	}
	decErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponse)).Decode(&body)
	if resp.StatusCode/100 != 2 {
		msg := body.Message
		if msg == "" {
			msg = fmt.Sprintf("backend answered %d", resp.StatusCode)
		}
		return content.Enquiry{}, &Error{Status: resp.StatusCode, Message: msg}
	}
	if decErr != nil {
		return content.Enquiry{}, &Error{Status: resp.StatusCode, Message: "unreadable backend response", Err: decErr}
	}
	return body.Data, nil
}
