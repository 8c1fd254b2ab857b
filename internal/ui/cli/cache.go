package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or prune the persistent record cache",
	}

	var asJSON bool
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show how many parsed files are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime(cmd, root)
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			st, err := rt.service.CacheStats()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), st)
			}
			if !st.Store {
				fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render("no cache_file configured"))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d records in %s\n", titleStyle.Render("cache"), st.Persisted, rt.paths.CacheFile)
			return nil
		},
	}
	stats.Flags().BoolVar(&asJSON, "json", false, "print stats as JSON")

	prune := &cobra.Command{
		Use:   "prune",
		Short: "Remove cached records for files that no longer exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := newRuntime(cmd, root)
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			removed, err := rt.service.PruneCache()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d records\n", removed)
			return nil
		},
	}

	cmd.AddCommand(stats, prune)
	return cmd
}
