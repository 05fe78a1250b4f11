// internal/content/model.go
//
// Institute content model.
//
// Context
// -------
// These structs describe every record the data service hands to views and
// the HTTP layer: the singular Settings record, Courses, Notices, Enquiries
// (leads), Pages, Gallery images, and the fixed AdminUser seed.  All records
// are flat; no relational integrity is enforced between them.
//
// Notes
// -----
//   - JSON tags match the persisted layout, so a store snapshot written by
//     one release is readable by the next.
//   - Course and Notice ids are unique within their collection only.
//   - Two spaces after periods, Oxford commas.
package content

import "time"

//
// Settings
//

// Socials maps platform name → profile URL.
type Socials map[string]string

// Settings is the single site-wide record.  It is replaced wholesale on
// update.
type Settings struct {
	SiteName        string  `json:"siteName"        validate:"required,max=120"`
	Tagline         string  `json:"tagline"         validate:"max=200"`
	LogoURL         string  `json:"logoUrl,omitempty"`
	Phone           string  `json:"phone"           validate:"max=40"`
	Email           string  `json:"email"           validate:"omitempty,email"`
	AdmissionsEmail string  `json:"admissionsEmail" validate:"omitempty,email"`
	Address         string  `json:"address"         validate:"max=300"`
	Socials         Socials `json:"socials"`
}

//
// Courses
//

// Delivery modes offered for a course.
const (
	ModeOnline  = "Online"
	ModeOffline = "Offline"
	ModeHybrid  = "Hybrid"
)

// Course is one programme.  Insertion order is display order.
type Course struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"max=4000"`
	Duration    string `json:"duration"    validate:"max=60"`
	Mode        string `json:"mode"        validate:"omitempty,oneof=Online Offline Hybrid"`
	Published   bool   `json:"isPublished"`
	Image       string `json:"image,omitempty"`
}

//
// Notices
//

// Notice is one notice-board entry.  Date is a display string
// ("2024-03-25"), not a timestamp.
type Notice struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"  validate:"max=40"`
	Tag         string `json:"tag,omitempty"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"desc"  validate:"max=4000"`
	Active      bool   `json:"isActive"`
}

//
// Enquiries
//

// Status is the lead-handling state of an Enquiry.  Transitions are
// unconstrained.
type Status string

const (
	StatusNew       Status = "NEW"
	StatusContacted Status = "CONTACTED"
	StatusClosed    Status = "CLOSED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusClosed:
		return true
	}
	return false
}

// EnquiryInput carries the caller-supplied fields of a new lead.
type EnquiryInput struct {
	Name    string `json:"name"    validate:"required,max=120"`
	Phone   string `json:"phone"   validate:"required,max=40"`
	Email   string `json:"email"   validate:"omitempty,email,max=254"`
	Course  string `json:"course"  validate:"max=200"`
	Message string `json:"message" validate:"max=4000"`
}

// Enquiry is a stored lead.  ID is derived from the creation time in
// milliseconds and is strictly increasing.
type Enquiry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Course    string    `json:"course"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
}

//
// Pages
//

// SEO holds the metadata a page publishes in its <head>.
type SEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Page is a static content record keyed by a string id ("home", "about").
type Page struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Subtitle string         `json:"subtitle,omitempty"`
	Sections map[string]any `json:"sections"`
	SEO      SEO            `json:"seo"`
}

//
// Gallery
//

// GalleryImage is one picture on the gallery page.
type GalleryImage struct {
	ID       int64  `json:"id"`
	Category string `json:"category" validate:"required,max=60"`
	Src      string `json:"src"      validate:"required,url"`
	Alt      string `json:"alt"      validate:"max=200"`
}

//
// Admin users
//

// Role names.  Roles gate admin routes; they are never edited at runtime.
const (
	RoleSuperAdmin     = "SUPER_ADMIN"
	RoleContentManager = "CONTENT_MANAGER"
)

// AdminUser is one console account.  PasswordHash is a bcrypt digest and is
// never serialised to clients.
type AdminUser struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}
