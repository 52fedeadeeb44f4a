package batch

import (
	"github.com/spf13/cobra"
)

var assignSuffixesCmd = &cobra.Command{
	Use:   "assign-suffixes",
	Short: "Assign participant suffix codes to all customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cfg, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		report, err := deps.AssignSuffixes(cmd.Context())
		if err != nil {
			return err
		}
		return finishRun(report, cfg)
	},
}

var verifySuffixesCmd = &cobra.Command{
	Use:   "verify-suffixes",
	Short: "Verify suffix compliance for all customers (report only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cfg, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		report, err := deps.VerifySuffixes(cmd.Context())
		if err != nil {
			return err
		}
		return finishRun(report, cfg)
	},
}
