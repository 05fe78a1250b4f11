package content

import "strings"

// maxSlug caps page ids.
const maxSlug = 64

// Slug lowers s and folds every run of characters outside [a-z0-9] into a
// single "-", trimming dashes at both ends.  The result may be empty.
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	dash := false
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if len(out) > maxSlug {
		out = strings.TrimRight(out[:maxSlug], "-")
	}
	return out
}

// ValidPageID reports whether id is already in slug form.  Page ids are
// used as URL segments, so the admin API refuses anything else.
func ValidPageID(id string) bool {
	return id != "" && Slug(id) == id
}
