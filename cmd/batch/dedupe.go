package batch

import (
	"github.com/spf13/cobra"
)

var dedupeApply bool

var resolveDuplicatesCmd = &cobra.Command{
	Use:   "resolve-duplicates",
	Short: "Find and resolve duplicate customers sharing a national id",
	Long: "Resolves each duplicate group to one canonical record. Dry run by " +
		"default: the full resolution is reported before anything is deleted; " +
		"pass --apply to delete the losing records and rescan for residuals.",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cfg, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		report, err := deps.ResolveDuplicates(cmd.Context(), dedupeApply)
		if err != nil {
			return err
		}
		return finishRun(report, cfg)
	},
}

func init() {
	resolveDuplicatesCmd.Flags().BoolVar(&dedupeApply, "apply", false, "actually delete losing records (default: dry run)")
}
