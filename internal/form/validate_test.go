package form

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smskills/institute/internal/content"
)

func TestValidateEnquiryInput(t *testing.T) {
	err := Validate(&content.EnquiryInput{Name: "Jane", Phone: "555", Email: "j@x.com"})
	assert.NoError(t, err)

	err = Validate(&content.EnquiryInput{Email: "not-an-email"})
	require.True(t, IsValidationError(err))

	byName := map[string]string{}
	for _, f := range Fields(err) {
		byName[f.Name] = f.Message
	}
	assert.Equal(t, "This field is required.", byName["name"])
	assert.Equal(t, "This field is required.", byName["phone"])
	assert.Equal(t, "Enter a valid email address.", byName["email"])
}

func TestValidateCourseMode(t *testing.T) {
	err := Validate(&content.Course{Name: "X", Mode: "Telepathy"})
	fields := Fields(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "mode", fields[0].Name)
	assert.Contains(t, fields[0].Message, "Online, Offline, Hybrid")
}

func TestIsValidationErrorOnOtherErrors(t *testing.T) {
	assert.False(t, IsValidationError(errors.New("boom")))
	assert.Nil(t, Fields(errors.New("boom")))
}

func decode(body string) error {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var in content.EnquiryInput
	return Decode(httptest.NewRecorder(), req, &in)
}

func TestDecode(t *testing.T) {
	assert.NoError(t, decode(`{"name":"Jane","phone":"555"}`))

	tests := []struct {
		name, body, field string
	}{
		{"empty", ``, ""},
		{"malformed", `{"name":`, ""},
		{"unknown field", `{"name":"Jane","phone":"1","admin":true}`, "admin"},
		{"too large", `{"name":"` + strings.Repeat("a", MaxBody) + `"}`, ""},
		{"missing phone", `{"name":"Jane"}`, "phone"},
		{"whitespace phone", `{"name":"Jane","phone":"   "}`, "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decode(tt.body)
			require.True(t, IsValidationError(err), "got %v", err)
			assert.Equal(t, tt.field, Fields(err)[0].Name)
		})
	}
}

func TestDecodeNormalizesBeforeValidating(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"  Jane ","phone":" 555 "}`))
	var in content.EnquiryInput
	require.NoError(t, Decode(httptest.NewRecorder(), req, &in))
	assert.Equal(t, "Jane", in.Name)
	assert.Equal(t, "555", in.Phone)
}
