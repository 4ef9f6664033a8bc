package swiftbatch

import (
	"fmt"

	"github.com/spf13/cobra"

	swiftbatch "github.com/SwiftBridge/swift-batch-transactions-contract"
	"github.com/SwiftBridge/swift-batch-transactions-contract/config"
	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

func buildValidateCmd(envPath *string) *cobra.Command {
	var batchPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a batch file against the configured limits",
		RunE: func(cmd *cobra.Command, args []string) error {
			limits, err := config.LoadLimits(*envPath)
			if err != nil {
				return err
			}

			batch, err := loadBatch(batchPath)
			if err != nil {
				return err
			}

			if err = swiftbatch.ValidateOperations(batch.Operations, limits); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Batch is valid: %d transactions\n", len(batch.Operations))
			estimated := types.TotalGasLimit(batch.Operations)
			fmt.Fprintf(out, "Estimated gas: %d\n", estimated)
			fmt.Fprintf(out, "Suggested gas limit: %d\n", limits.SuggestGasLimit(estimated))
			fmt.Fprintf(out, "Total value: %s wei\n", types.TotalValue(batch.Operations))
			fmt.Fprintf(out, "Batch fee: %s wei\n", limits.BatchFee)

			return nil
		},
	}

	cmd.Flags().StringVar(&batchPath, "batch", "", "Path to the JSON batch file")
	_ = cmd.MarkFlagRequired("batch")

	return cmd
}
