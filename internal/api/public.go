package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smskills/institute/internal/content"
	"github.com/smskills/institute/internal/form"
	"github.com/smskills/institute/internal/metrics"
	"github.com/smskills/institute/internal/requestinfo"
)

// healthPingTimeout bounds the store probe made by /api/health.
const healthPingTimeout = 2 * time.Second

type healthServices struct {
	Database string `json:"database"`
	API      string `json:"api"`
}

type healthBody struct {
	Status    string         `json:"status"`
	Uptime    float64        `json:"uptime"`
	Timestamp string         `json:"timestamp"`
	Services  healthServices `json:"services"`
	Version   string         `json:"version,omitempty"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	db := "ok"
	if err := h.svc.Ping(ctx); err != nil {
		h.log.Warnw("health: store unreachable", "err", err)
		db = "unavailable"
	}
	writeJSON(w, http.StatusOK, healthBody{
		Status:    "ok",
		Uptime:    time.Since(h.started).Seconds(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  healthServices{Database: db, API: "ok"},
		Version:   h.version,
	})
}

func (h *handlers) getSettings(w http.ResponseWriter, _ *http.Request) {
	writeData(w, h.svc.Settings())
}

func (h *handlers) publicCourses(w http.ResponseWriter, _ *http.Request) {
	writeData(w, h.svc.PublishedCourses())
}

func (h *handlers) publicNotices(w http.ResponseWriter, _ *http.Request) {
	writeData(w, h.svc.ActiveNotices())
}

func (h *handlers) getPage(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.svc.Page(chi.URLParam(r, "pageID")))
}

func (h *handlers) getGallery(w http.ResponseWriter, _ *http.Request) {
	writeData(w, h.svc.Gallery())
}

// submitEnquiry is the public lead intake.
func (h *handlers) submitEnquiry(w http.ResponseWriter, r *http.Request) {
	var in content.EnquiryInput
	if err := form.Decode(w, r, &in); err != nil {
		metrics.EnquiriesTotal.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, envelope{
			Success: ptr(false),
			Message: "validation failed",
			Errors:  form.Fields(err),
		})
		return
	}

	e, ok := h.svc.SubmitEnquiry(r.Context(), in)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, envelope{
			Success: ptr(false),
			Message: "could not save enquiry, please try again",
		})
		return
	}

	if info := requestinfo.FromContext(r.Context()); info != nil {
		h.log.Infow("lead received",
			"id", e.ID,
			"device", info.UA.Device,
			"browser", info.UA.Browser,
			"country", info.Geo.CountryISO,
		)
	}
	writeJSON(w, http.StatusOK, envelope{Success: ptr(true), Data: e})
}
