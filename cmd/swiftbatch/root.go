package swiftbatch

import (
	"github.com/spf13/cobra"
)

// BuildSwiftBatchCmd returns the root command of the swiftbatch CLI.
func BuildSwiftBatchCmd() *cobra.Command {
	var envPath string

	cmd := cobra.Command{
		Use:          "swiftbatch",
		Short:        "Validate and simulate transaction batches",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&envPath, "env", ".env", "Path to the .env file holding the deployment configuration")

	cmd.AddCommand(buildValidateCmd(&envPath))
	cmd.AddCommand(buildSimulateCmd(&envPath))
	cmd.AddCommand(buildLimitsCmd(&envPath))

	return &cmd
}
