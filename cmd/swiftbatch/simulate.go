package swiftbatch

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	swiftbatch "github.com/SwiftBridge/swift-batch-transactions-contract"
	"github.com/SwiftBridge/swift-batch-transactions-contract/config"
	"github.com/SwiftBridge/swift-batch-transactions-contract/sdk"
	"github.com/SwiftBridge/swift-batch-transactions-contract/sdk/evm"
	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

func buildSimulateCmd(envPath *string) *cobra.Command {
	var (
		batchPath     string
		chainSelector uint64
		withdraw      bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Dry-run a batch against a live EVM chain",
		Long: `Creates the batch in a fresh in-memory contract and executes it, dry-running every
transaction with eth_call against the chain configured by RPC_URL_<selector>.
Nothing is sent to the chain unless --withdraw is set.

When PRIVATE_KEY is set the ledger transacts from that account, which also becomes the
contract address if CONTRACT_ADDRESS is unset. --withdraw then sends the collected batch fee
from it to the owner.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSimulationConfig(*envPath, chainSelector)
			if err != nil {
				return err
			}
			if cfg.RPCURL == "" {
				return errors.New(config.RPCURLKey(cfg.ChainSelector) + " not found in environment or .env file")
			}

			auth, err := loadTransactor(cfg)
			if err != nil {
				return err
			}
			if withdraw && auth == nil {
				return errors.New(config.EnvPrivateKey + " is required to withdraw fees")
			}

			address := cfg.ContractAddress
			if auth != nil && address == (common.Address{}) {
				address = auth.From
			}

			batch, err := loadBatch(batchPath)
			if err != nil {
				return err
			}

			client, err := ethclient.Dial(cfg.RPCURL)
			if err != nil {
				return fmt.Errorf("failed to dial %s: %w", config.RPCURLKey(cfg.ChainSelector), err)
			}
			defer client.Close()

			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			ctx := sdk.ContextWithLogger(cmd.Context(), logger.Sugar())

			var events []types.Event
			contract, err := swiftbatch.NewBatchContract(cfg.Owner, evm.NewLedger(client, auth, cfg.GasBudget),
				swiftbatch.WithLimits(cfg.Limits),
				swiftbatch.WithAddress(address),
				swiftbatch.WithObserver(func(_ context.Context, e types.Event) { events = append(events, e) }),
			)
			if err != nil {
				return err
			}

			creator := batch.Creator
			if creator == (common.Address{}) {
				creator = cfg.Owner
			}

			id, err := contract.CreateBatch(ctx, creator, batch.Operations, cfg.Limits.BatchFee)
			if err != nil {
				return err
			}

			result, err := contract.ExecuteBatch(ctx, cfg.Owner, id)
			if err != nil {
				return err
			}

			report := simulationReport{Result: result}
			if withdraw {
				amount, werr := contract.Withdraw(ctx, cfg.Owner)
				if werr != nil {
					return werr
				}
				report.Withdrawn = amount.String()
			}
			report.Events = eventNames(events)

			return printJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&batchPath, "batch", "", "Path to the JSON batch file")
	cmd.Flags().Uint64Var(&chainSelector, "selector", 0, "Chain selector to simulate against, overrides CHAIN_SELECTOR")
	cmd.Flags().BoolVar(&withdraw, "withdraw", false, "Withdraw the collected fee to the owner after execution")
	_ = cmd.MarkFlagRequired("batch")

	return cmd
}

type simulationReport struct {
	Result    types.ExecutionResult `json:"result"`
	Withdrawn string                `json:"withdrawn,omitempty"`
	Events    []string              `json:"events"`
}

func loadSimulationConfig(envPath string, selector uint64) (config.Config, error) {
	var overrides map[string]string
	if selector != 0 {
		overrides = map[string]string{config.EnvChainSelector: strconv.FormatUint(selector, 10)}
	}

	return config.LoadWithOverrides(overrides, envPath)
}

func eventNames(events []types.Event) []string {
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.EventName())
	}

	return names
}
