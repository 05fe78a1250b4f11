package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smskills/institute/internal/content"
	"github.com/smskills/institute/internal/store"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write default content for every collection not yet stored",
	Long: `Seed writes the built-in default settings, courses, notices, pages,
gallery, and an empty enquiry list.  Collections that already exist are
left alone unless --force is given; --force never touches enquiries.

Example:
  institutectl seed
  institutectl seed --force`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "overwrite existing content (enquiries are kept)")
}

// seedValues maps each store key to its default value.
func seedValues() map[string]any {
	return map[string]any{
		store.KeySettings:  content.SeedSettings(),
		store.KeyCourses:   content.SeedCourses(),
		store.KeyNotices:   content.SeedNotices(),
		store.KeyEnquiries: []content.Enquiry{},
		store.KeyPages:     content.SeedPages(),
		store.KeyGallery:   content.SeedGallery(),
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	n, err := seed(context.Background(), inst.Store, seedForce)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d collection(s)\n", n)
	return nil
}

func seed(ctx context.Context, st store.Store, force bool) (int, error) {
	values := seedValues()
	written := 0
	for _, key := range store.Keys {
		_, err := st.Get(ctx, key)
		switch {
		case errors.Is(err, store.ErrNotFound):
		case err != nil:
			return written, fmt.Errorf("read %s: %w", key, err)
		case !force || key == store.KeyEnquiries:
			continue
		}
		raw, err := json.Marshal(values[key])
		if err != nil {
			return written, err
		}
		if err := st.Put(ctx, key, raw); err != nil {
			return written, fmt.Errorf("write %s: %w", key, err)
		}
		written++
	}
	return written, nil
}
