// internal/content/sanitize.go
//
// Free-text sanitization policy.
//
// Every enquiry string field is trimmed and then HTML-escaped before it is
// stored: the five reserved characters & < > " ' become entities.  Stored
// values therefore render as inert text in any consumer, including ones
// that forget to escape on output.  Consumers must not escape again.
package content

import (
	"html"
	"strings"
)

// Sanitize trims s and escapes the HTML-reserved characters.
func Sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// Normalize trims surrounding whitespace from every field in place.
func (in *EnquiryInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Course = strings.TrimSpace(in.Course)
	in.Message = strings.TrimSpace(in.Message)
}

// Sanitized returns a copy of in with every field passed through Sanitize.
func (in EnquiryInput) Sanitized() EnquiryInput {
	return EnquiryInput{
		Name:    Sanitize(in.Name),
		Phone:   Sanitize(in.Phone),
		Email:   Sanitize(in.Email),
		Course:  Sanitize(in.Course),
		Message: Sanitize(in.Message),
	}
}
