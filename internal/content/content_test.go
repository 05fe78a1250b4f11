package content

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"script tag", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"trims whitespace", "  Jane  ", "Jane"},
		{"all reserved characters", `&<>"'`, "&amp;&lt;&gt;&#34;&#39;"},
		{"plain text untouched", "hello world", "hello world"},
		{"attribute injection", `<img src=x onerror="x()">`, "&lt;img src=x onerror=&#34;x()&#34;&gt;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitizedLeavesNoMarkup(t *testing.T) {
	in := EnquiryInput{
		Name:    "<b>Jane</b>",
		Phone:   "<i>555</i>",
		Email:   "j@x.com",
		Course:  "<a href='x'>CS</a>",
		Message: "<script>alert(1)</script>",
	}.Sanitized()

	for _, v := range []string{in.Name, in.Phone, in.Email, in.Course, in.Message} {
		assert.NotContains(t, v, "<")
		assert.NotContains(t, v, ">")
	}
	assert.True(t, strings.HasPrefix(in.Message, "&lt;script&gt;"))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusNew.Valid())
	assert.True(t, StatusContacted.Valid())
	assert.True(t, StatusClosed.Valid())
	assert.False(t, Status("ARCHIVED").Valid())
	assert.False(t, Status("new").Valid())
}

func TestSeedHelpersReturnCopies(t *testing.T) {
	a := SeedCourses()
	a[0].Name = "changed"
	assert.Equal(t, "Computer Science Engineering", SeedCourses()[0].Name)

	s := SeedSettings()
	s.Socials["facebook"] = "changed"
	assert.Equal(t, "#", SeedSettings().Socials["facebook"])
}

func TestWriteEnquiriesCSV(t *testing.T) {
	es := []Enquiry{
		{
			ID:        1700000000000,
			Timestamp: time.Date(2024, 3, 25, 10, 0, 0, 0, time.UTC),
			Name:      Sanitize("Tom & Jerry"),
			Phone:     "+91 98765",
			Email:     "tom@example.com",
			Course:    "Web",
			Message:   "=HYPERLINK(\"x\")",
			Status:    StatusNew,
		},
	}
	var buf strings.Builder
	require.NoError(t, WriteEnquiriesCSV(&buf, es))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,timestamp,name,phone,email,course,message,status", lines[0])
	assert.Contains(t, lines[1], "Tom & Jerry")
	assert.Contains(t, lines[1], "'+91 98765")
	assert.Contains(t, lines[1], `"'=HYPERLINK(""x"")"`)
	assert.Contains(t, lines[1], "2024-03-25T10:00:00Z")
	assert.True(t, strings.HasSuffix(lines[1], ",NEW"))
}

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"About Us", "about-us"},
		{"  --Hello,   World!--  ", "hello-world"},
		{"Café 2024", "caf-2024"},
		{"!!!", ""},
		{strings.Repeat("a", 70), strings.Repeat("a", 64)},
		{strings.Repeat("a", 63) + " b", strings.Repeat("a", 63)},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Slug(tc.in), tc.in)
	}

	assert.True(t, ValidPageID("home"))
	assert.True(t, ValidPageID("privacy-policy"))
	assert.False(t, ValidPageID(""))
	assert.False(t, ValidPageID("About"))
	assert.False(t, ValidPageID("a--b"))
}
