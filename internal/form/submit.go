// internal/form/submit.go
//
// Consolidated decode-and-validate helper.
//
// Context
//   Most handlers want one call that reads a JSON body, rejects unknown or
//   oversized input, and validates the result.  Decode provides that
//   convenience so handler code stays terse.
//
//------------------------------------------------------------------------------

package form

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// MaxBody caps request bodies accepted by Decode.
const MaxBody = 64 << 10

// Normalizer is implemented by inputs that tidy themselves (trim, fold
// case) after decoding.  Decode calls it before validation so rules like
// `required` see the normalized value.
type Normalizer interface {
	Normalize()
}

// Decode reads r's JSON body into dst and validates it.  Malformed JSON is
// reported as a validation error on the empty field name.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			return Invalid("", "Request body too large.")
		case errors.Is(err, io.EOF):
			return Invalid("", "Request body is empty.")
		case strings.HasPrefix(err.Error(), "json: unknown field"):
			return Invalid(strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`), "Unknown field.")
		default:
			return Invalid("", "Malformed JSON.")
		}
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	return Validate(dst)
}
