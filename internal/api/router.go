// internal/api/router.go
//
// HTTP surface.
//
// Context
// -------
// One chi router serves the public site API, the enquiry intake, the
// console API behind a session, the SSE change stream, health, and
// Prometheus metrics.  Every body is JSON; unmatched routes answer 404 and
// handler panics answer 500, both with a `{"message": …}` body.
//
// Middleware order (outermost first)
// ----------------------------------
//  1. RequestID       – chi, tags log lines.
//  2. requestinfo     – UA + GeoIP for logs and leads.
//  3. AccessLog       – zap line + Prometheus counters.
//  4. recoverer       – panic → 500 JSON.
//  5. Security        – response headers.
//  6. ForceHTTPS      – only when http.force_https is set.
//  7. CORS            – http.allowed_origins.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/smskills/institute/internal/acl"
	"github.com/smskills/institute/internal/config"
	"github.com/smskills/institute/internal/content"
	"github.com/smskills/institute/internal/datasvc"
	"github.com/smskills/institute/internal/middleware"
	"github.com/smskills/institute/internal/requestinfo"
	"github.com/smskills/institute/internal/session"
)

// Deps carries everything the handlers need.
type Deps struct {
	Service  *datasvc.Service
	Sessions *session.Registry
	Geo      requestinfo.GeoLookup // optional
	HTTP     config.HTTP
	Log      *zap.SugaredLogger
	Version  string
	Started  time.Time
}

type handlers struct {
	svc      *datasvc.Service
	sessions *session.Registry
	log      *zap.SugaredLogger
	version  string
	started  time.Time
}

// NewRouter wires every route.
func NewRouter(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = zap.NewNop().Sugar()
	}
	if d.Started.IsZero() {
		d.Started = time.Now()
	}
	h := &handlers{
		svc:      d.Service,
		sessions: d.Sessions,
		log:      d.Log,
		version:  d.Version,
		started:  d.Started,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestinfo.NewEnricher(d.Geo).Middleware)
	r.Use(middleware.AccessLog(d.Log))
	r.Use(recoverer(d.Log))
	r.Use(middleware.Security)
	if d.HTTP.ForceHTTPS {
		r.Use(middleware.ForceHTTPS)
	}
	if len(d.HTTP.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.HTTP.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/settings", h.getSettings)
		r.Get("/courses", h.publicCourses)
		r.Get("/notices", h.publicNotices)
		r.Get("/pages/{pageID}", h.getPage)
		r.Get("/gallery", h.getGallery)
		r.Post("/enquiry", h.submitEnquiry)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", h.login)

			r.Group(func(r chi.Router) {
				r.Use(acl.RequireSession(d.Sessions))
				r.Use(acl.RequireRole(content.RoleSuperAdmin, content.RoleContentManager))

				r.Post("/logout", h.logout)
				r.Get("/events", h.events)
				r.Get("/stats", h.stats)

				r.Get("/enquiries", h.listEnquiries)
				r.Get("/enquiries.csv", h.exportEnquiries)
				r.Patch("/enquiries/{id}", h.updateEnquiryStatus)
				r.Delete("/enquiries/{id}", h.deleteEnquiry)

				r.Get("/courses", h.listCourses)
				r.Post("/courses", h.saveCourse)
				r.Put("/courses/{id}", h.saveCourse)
				r.Delete("/courses/{id}", h.deleteCourse)

				r.Get("/notices", h.listNotices)
				r.Post("/notices", h.saveNotice)
				r.Put("/notices/{id}", h.saveNotice)
				r.Delete("/notices/{id}", h.deleteNotice)

				r.Put("/pages/{pageID}", h.updatePage)
				r.Post("/gallery", h.addGalleryImage)
				r.Delete("/gallery/{id}", h.removeGalleryImage)

				r.With(acl.RequireRole(content.RoleSuperAdmin)).Put("/settings", h.updateSettings)
				r.With(acl.RequireRole(content.RoleSuperAdmin)).Get("/users", h.listUsers)
			})
		})
	})
	return r
}
