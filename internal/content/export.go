package content

import (
	"encoding/csv"
	"html"
	"io"
	"strconv"
	"time"
)

// csvHeader is the column order of WriteEnquiriesCSV.
var csvHeader = []string{"id", "timestamp", "name", "phone", "email", "course", "message", "status"}

// WriteEnquiriesCSV writes es as CSV with a header row.  Stored values are
// unescaped back to plain text, and cells that a spreadsheet would treat as
// a formula get a leading apostrophe.
func WriteEnquiriesCSV(w io.Writer, es []Enquiry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range es {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Timestamp.UTC().Format(time.RFC3339),
			csvCell(e.Name),
			csvCell(e.Phone),
			csvCell(e.Email),
			csvCell(e.Course),
			csvCell(e.Message),
			string(e.Status),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvCell(s string) string {
	s = html.UnescapeString(s)
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
