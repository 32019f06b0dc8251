package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTablesCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the lookup tables and the file each one is read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, t := range s.catalog.Tables {
				if _, err := fmt.Fprintf(out, "%s\t%s\n", t.Name, s.catalog.Location(t)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
