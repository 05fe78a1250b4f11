package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/smskills/institute/internal/auth"
	"github.com/smskills/institute/internal/content"
	"github.com/smskills/institute/internal/datasvc"
	"github.com/smskills/institute/internal/form"
	"github.com/smskills/institute/internal/session"
)

const msgSaveFailed = "could not save changes, please try again"

//
// Session
//

type loginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=256"`
}

type loginResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      content.AdminUser `json:"user"`
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := form.Decode(w, r, &req); err != nil {
		writeInvalid(w, err)
		return
	}
	u, err := h.svc.CheckCredentials(req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrThrottled):
		writeMessage(w, http.StatusUnauthorized, "too many attempts, try again later")
		return
	case err != nil:
		writeMessage(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, expires, err := h.sessions.Login(u)
	if err != nil {
		h.log.Errorw("token issue failed", "user", u.Username, "err", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}
	session.SetCookie(w, r, token, expires)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires, User: u})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	if p, ok := auth.PrincipalFrom(r.Context()); ok {
		h.sessions.Revoke(p.SessionID)
	}
	session.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) stats(w http.ResponseWriter, _ *http.Request) {
	writeData(w, h.svc.Stats())
}

//
// Enquiries
//

type statusRequest struct {
	Status content.Status `json:"status" validate:"required,oneof=NEW CONTACTED CLOSED"`
}

func (h *handlers) listEnquiries(w http.ResponseWriter, _ *http.Request) {
	writeData(w, h.svc.Enquiries())
}

func (h *handlers) exportEnquiries(w http.ResponseWriter, _ *http.Request) {
	name := "enquiries-" + time.Now().UTC().Format("20060102") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := content.WriteEnquiriesCSV(w, h.svc.Enquiries()); err != nil {
		h.log.Warnw("csv export interrupted", "err", err)
	}
}

func (h *handlers) updateEnquiryStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		notFound(w, r)
		return
	}
	var req statusRequest
	if err := form.Decode(w, r, &req); err != nil {
		writeInvalid(w, err)
		return
	}
	if !h.svc.UpdateEnquiryStatus(r.Context(), id, req.Status) {
		writeMessage(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) deleteEnquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		notFound(w, r)
		return
	}
	h.done(w, h.svc.DeleteEnquiry(r.Context(), id))
}

//
// Courses and notices
//

func (h *handlers) listCourses(w http.ResponseWriter, _ *http.Request) {
	writeData(w, h.svc.Courses())
}

// saveCourse serves both POST (create) and PUT /{id} (replace).
func (h *handlers) saveCourse(w http.ResponseWriter, r *http.Request) {
	var c content.Course
	if err := form.Decode(w, r, &c); err != nil {
		writeInvalid(w, err)
		return
	}
	if !bindID(w, r, &c.ID) {
		return
	}
	saved, ok := h.svc.SaveCourse(r.Context(), c)
	if !ok {
		writeMessage(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}
	writeData(w, saved)
}

func (h *handlers) deleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		notFound(w, r)
		return
	}
	h.done(w, h.svc.DeleteCourse(r.Context(), id))
}

func (h *handlers) listNotices(w http.ResponseWriter, _ *http.Request) {
	writeData(w, h.svc.Notices())
}

func (h *handlers) saveNotice(w http.ResponseWriter, r *http.Request) {
	var n content.Notice
	if err := form.Decode(w, r, &n); err != nil {
		writeInvalid(w, err)
		return
	}
	if !bindID(w, r, &n.ID) {
		return
	}
	saved, ok := h.svc.SaveNotice(r.Context(), n)
	if !ok {
		writeMessage(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}
	writeData(w, saved)
}

func (h *handlers) deleteNotice(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		notFound(w, r)
		return
	}
	h.done(w, h.svc.DeleteNotice(r.Context(), id))
}

//
// Pages and gallery
//

func (h *handlers) updatePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "pageID")
	if !content.ValidPageID(id) {
		writeInvalid(w, form.Invalid("id", "Page id must be lower-case letters, digits, and dashes."))
		return
	}
	var patch datasvc.PagePatch
	if err := form.Decode(w, r, &patch); err != nil {
		writeInvalid(w, err)
		return
	}
	p, ok := h.svc.UpdatePage(r.Context(), id, patch)
	if !ok {
		writeMessage(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}
	writeData(w, p)
}

func (h *handlers) addGalleryImage(w http.ResponseWriter, r *http.Request) {
	var img content.GalleryImage
	if err := form.Decode(w, r, &img); err != nil {
		writeInvalid(w, err)
		return
	}
	saved, ok := h.svc.AddGalleryImage(r.Context(), img)
	if !ok {
		writeMessage(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}
	writeData(w, saved)
}

func (h *handlers) removeGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		notFound(w, r)
		return
	}
	h.done(w, h.svc.RemoveGalleryImage(r.Context(), id))
}

//
// Super-admin only
//

func (h *handlers) updateSettings(w http.ResponseWriter, r *http.Request) {
	var s content.Settings
	if err := form.Decode(w, r, &s); err != nil {
		writeInvalid(w, err)
		return
	}
	if !h.svc.UpdateSettings(r.Context(), s) {
		writeMessage(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}
	writeData(w, h.svc.Settings())
}

func (h *handlers) listUsers(w http.ResponseWriter, _ *http.Request) {
	writeData(w, h.svc.Users())
}

//
// Helpers
//

// bindID copies the {id} route parameter into *dst on PUT routes.  POST
// bodies keep whatever id they carry, zero meaning "assign one".
func bindID(w http.ResponseWriter, r *http.Request, dst *int64) bool {
	if chi.URLParam(r, "id") == "" {
		return true
	}
	id, ok := idParam(r)
	if !ok {
		notFound(w, r)
		return false
	}
	*dst = id
	return true
}

func (h *handlers) done(w http.ResponseWriter, ok bool) {
	if !ok {
		writeMessage(w, http.StatusInternalServerError, msgSaveFailed)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
