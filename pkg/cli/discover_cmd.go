package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"lookupdoc/internal/storage"
)

func newDiscoverCmd(s *settings, d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "List lookup files found under the base URL on the object store",
		Long: "Lists objects directly under the base URL prefix that carry the catalog's\n" +
			"file extension. Tables that are also in the catalog are marked with '*'.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := storage.ParseBaseURL(s.catalog.BaseURL)
			if err != nil {
				return err
			}

			names, err := d.newLister(loc, s.cfg.S3Region).ListTables(cmd.Context(), s.catalog.Extension)
			if err != nil {
				return err
			}
			s.logger.Info("discovered lookup files", "bucket", loc.Bucket, "prefix", loc.Prefix, "count", len(names))

			known := make(map[string]bool, len(s.catalog.Tables))
			for _, t := range s.catalog.Tables {
				known[t.Name] = true
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				mark := " "
				if known[name] {
					mark = "*"
				}
				if _, err := fmt.Fprintf(out, "%s %s\n", mark, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
