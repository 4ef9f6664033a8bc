package swiftbatch

import (
	"github.com/spf13/cobra"

	"github.com/SwiftBridge/swift-batch-transactions-contract/config"
)

func buildLimitsCmd(envPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Print the effective batch limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			limits, err := config.LoadLimits(*envPath)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), limits)
		},
	}
}
