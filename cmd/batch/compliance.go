package batch

import (
	"github.com/spf13/cobra"
)

var applySuspensionsCmd = &cobra.Command{
	Use:   "apply-suspensions",
	Short: "Compute payment arrears and apply status transitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cfg, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		report, err := deps.ApplySuspensions(cmd.Context())
		if err != nil {
			return err
		}
		return finishRun(report, cfg)
	},
}

var verifyComplianceCmd = &cobra.Command{
	Use:   "verify-compliance",
	Short: "Cross-check stored statuses against the grace-period model (report only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cfg, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		report, err := deps.VerifyCompliance(cmd.Context())
		if err != nil {
			return err
		}
		return finishRun(report, cfg)
	},
}
