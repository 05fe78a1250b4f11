package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smskills/institute/internal/content"
	"github.com/smskills/institute/internal/remote"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List published courses as the public site sees them",
	Long: `Courses fetches published courses from remote.api_base_url and falls
back to the local store when the backend is unreachable.  The source
is printed with the table.

Example:
  INSTITUTE_REMOTE__API_BASE_URL=https://api.example/api institutectl courses`,
	RunE: runCourses,
}

func runCourses(cmd *cobra.Command, args []string) error {
	cl, err := remote.New(inst.Config.Remote, inst.Service, inst.Log)
	if err != nil {
		return err
	}
	courses, src := cl.Courses(context.Background())

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(courses)
	}
	printCourseTable(out, courses, src)
	return nil
}

func printCourseTable(w io.Writer, cs []content.Course, src remote.Source) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDURATION\tMODE")
	for _, c := range cs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, truncate(c.Name, 40), c.Duration, c.Mode)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d course(s) from %s data\n", len(cs), src)
}
