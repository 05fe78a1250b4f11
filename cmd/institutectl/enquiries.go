package main

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/smskills/institute/internal/content"
)

var (
	enquiryStatus string
	enquiryLimit  int
	exportPath    string
)

var enquiriesCmd = &cobra.Command{
	Use:   "enquiries",
	Short: "Inspect and export leads",
}

var enquiriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leads, newest first",
	Long: `List prints stored enquiries, newest first.

Example:
  institutectl enquiries list
  institutectl enquiries list --status NEW --limit 20
  institutectl enquiries list --json`,
	RunE: runEnquiriesList,
}

var enquiriesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every lead as CSV",
	Long: `Export writes all enquiries as CSV to stdout or to --out.

Example:
  institutectl enquiries export --out leads.csv`,
	RunE: runEnquiriesExport,
}

func init() {
	enquiriesListCmd.Flags().StringVar(&enquiryStatus, "status", "", "filter by status (NEW, CONTACTED, CLOSED)")
	enquiriesListCmd.Flags().IntVar(&enquiryLimit, "limit", 0, "maximum number of rows (0 = no limit)")
	enquiriesExportCmd.Flags().StringVarP(&exportPath, "out", "o", "", "output file (default: stdout)")

	enquiriesCmd.AddCommand(enquiriesListCmd)
	enquiriesCmd.AddCommand(enquiriesExportCmd)
}

func runEnquiriesList(cmd *cobra.Command, args []string) error {
	status := content.Status(strings.ToUpper(enquiryStatus))
	if status != "" && !status.Valid() {
		return fmt.Errorf("unknown status %q", enquiryStatus)
	}
	rows := filterEnquiries(inst.Service.Enquiries(), status, enquiryLimit)

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	printEnquiryTable(out, rows, time.Now())
	return nil
}

func filterEnquiries(es []content.Enquiry, status content.Status, limit int) []content.Enquiry {
	out := make([]content.Enquiry, 0, len(es))
	for _, e := range es {
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// printEnquiryTable prints leads in a human-readable table.
func printEnquiryTable(w io.Writer, es []content.Enquiry, now time.Time) {
	if len(es) == 0 {
		fmt.Fprintln(w, "No enquiries.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tRECEIVED\tNAME\tPHONE\tCOURSE\tSTATUS")
	for _, e := range es {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			humanize.RelTime(e.Timestamp, now, "ago", "from now"),
			truncate(html.UnescapeString(e.Name), 24),
			html.UnescapeString(e.Phone),
			truncate(html.UnescapeString(e.Course), 30),
			e.Status,
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%s lead(s)\n", humanize.Comma(int64(len(es))))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func runEnquiriesExport(cmd *cobra.Command, args []string) error {
	es := inst.Service.Enquiries()
	if exportPath == "" {
		return content.WriteEnquiriesCSV(cmd.OutOrStdout(), es)
	}
	f, err := os.Create(exportPath)
	if err != nil {
		return err
	}
	if err := content.WriteEnquiriesCSV(f, es); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d lead(s) to %s\n", len(es), exportPath)
	return nil
}
