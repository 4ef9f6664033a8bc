// Package config loads the settings of a batch contract deployment from the environment and
// .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/SwiftBridge/swift-batch-transactions-contract/internal/utils/safecast"
	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

// Environment variables read by Load.
const (
	EnvOwner           = "OWNER"
	EnvChainSelector   = "CHAIN_SELECTOR"
	EnvContractAddress = "CONTRACT_ADDRESS"
	EnvBatchFee        = "BATCH_FEE_WEI"
	EnvMaxOperations   = "MAX_OPERATIONS"
	EnvMaxBatchValue   = "MAX_BATCH_VALUE_WEI"
	EnvPendingWindow   = "PENDING_WINDOW"
	EnvGasBudget       = "GAS_BUDGET"
	EnvPrivateKey      = "PRIVATE_KEY"

	// rpcURLPrefix is followed by the chain selector, e.g. RPC_URL_16015286601757825753.
	rpcURLPrefix = "RPC_URL_"
)

// DefaultGasBudget is the gas available to a simulated batch execution when GAS_BUDGET is unset.
const DefaultGasBudget = uint64(30_000_000)

// Config is the deployment configuration of a batch contract.
type Config struct {
	Owner           common.Address      `validate:"required"`
	ChainSelector   types.ChainSelector `validate:"required"`
	ContractAddress common.Address
	RPCURL          string `validate:"omitempty,url"`
	PrivateKey      string
	GasBudget       uint64 `validate:"gt=0"`
	Limits          types.Limits
}

// RPCURLKey returns the environment variable holding the RPC endpoint of sel.
func RPCURLKey(sel types.ChainSelector) string {
	return fmt.Sprintf("%s%d", rpcURLPrefix, sel)
}

// Load reads the configuration from the process environment, falling back to the given .env
// files (".env" when none are given). Variables already set in the environment win. Missing
// files are ignored.
func Load(paths ...string) (Config, error) {
	return LoadWithOverrides(nil, paths...)
}

// LoadWithOverrides is Load with overrides taking precedence over both the environment and the
// .env files.
func LoadWithOverrides(overrides map[string]string, paths ...string) (Config, error) {
	lookup, err := envLookup(paths)
	if err != nil {
		return Config{}, err
	}

	return FromEnv(func(key string) (string, bool) {
		if v, ok := overrides[key]; ok {
			return v, true
		}

		return lookup(key)
	})
}

// LoadLimits reads only the batch limits, the same way Load does. It needs no owner or chain.
func LoadLimits(paths ...string) (types.Limits, error) {
	lookup, err := envLookup(paths)
	if err != nil {
		return types.Limits{}, err
	}

	limits := types.DefaultLimits()
	if err = parseLimits(trimmed(lookup), &limits); err != nil {
		return types.Limits{}, err
	}
	if err = validateLimits(limits); err != nil {
		return types.Limits{}, err
	}

	return limits, nil
}

func envLookup(paths []string) (func(string) (string, bool), error) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	fileEnv := make(map[string]string)
	for _, p := range paths {
		vars, err := godotenv.Read(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		for k, v := range vars {
			if _, ok := fileEnv[k]; !ok {
				fileEnv[k] = v
			}
		}
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]

		return v, ok
	}, nil
}

// trimmed treats blank values as unset.
func trimmed(lookup func(string) (string, bool)) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)

		return v, ok && v != ""
	}
}

// FromEnv builds the configuration from lookup. Unset limits keep their defaults.
func FromEnv(lookup func(key string) (string, bool)) (Config, error) {
	cfg := Config{
		GasBudget: DefaultGasBudget,
		Limits:    types.DefaultLimits(),
	}

	get := trimmed(lookup)

	var err error
	if v, ok := get(EnvOwner); ok {
		if cfg.Owner, err = parseAddress(EnvOwner, v); err != nil {
			return Config{}, err
		}
	}
	if v, ok := get(EnvContractAddress); ok {
		if cfg.ContractAddress, err = parseAddress(EnvContractAddress, v); err != nil {
			return Config{}, err
		}
	}
	if v, ok := get(EnvChainSelector); ok {
		sel, cerr := cast.ToUint64E(v)
		if cerr != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvChainSelector, v, cerr)
		}
		cfg.ChainSelector = types.ChainSelector(sel)
	}
	if v, ok := get(EnvGasBudget); ok {
		if cfg.GasBudget, err = cast.ToUint64E(v); err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvGasBudget, v, err)
		}
	}
	if err = parseLimits(get, &cfg.Limits); err != nil {
		return Config{}, err
	}
	if cfg.ChainSelector != 0 {
		cfg.RPCURL, _ = get(RPCURLKey(cfg.ChainSelector))
	}
	cfg.PrivateKey, _ = get(EnvPrivateKey)

	return cfg, cfg.Validate()
}

// Validate checks the configuration is complete and targets a supported chain.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if _, err := types.GetChainSelectorFamily(c.ChainSelector); err != nil {
		return err
	}

	return validateLimits(c.Limits)
}

func parseLimits(get func(string) (string, bool), limits *types.Limits) error {
	var err error
	if v, ok := get(EnvMaxOperations); ok {
		n, cerr := cast.ToUint64E(v)
		if cerr != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxOperations, v, cerr)
		}
		if limits.MaxOperations, err = safecast.Uint64ToInt(n); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxOperations, err)
		}
	}
	if v, ok := get(EnvBatchFee); ok {
		if limits.BatchFee, err = parseWei(EnvBatchFee, v); err != nil {
			return err
		}
	}
	if v, ok := get(EnvMaxBatchValue); ok {
		if limits.MaxBatchValue, err = parseWei(EnvMaxBatchValue, v); err != nil {
			return err
		}
	}
	if v, ok := get(EnvPendingWindow); ok {
		if limits.PendingWindow, err = types.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPendingWindow, err)
		}
	}

	return nil
}

func validateLimits(l types.Limits) error {
	if err := validator.New().Struct(l); err != nil {
		return err
	}
	if l.PendingWindow.Duration <= 0 {
		return errors.New("pending window must be positive")
	}

	return nil
}

func parseAddress(key, v string) (common.Address, error) {
	if !common.IsHexAddress(v) {
		return common.Address{}, fmt.Errorf("invalid %s: %q is not a hex address", key, v)
	}

	return common.HexToAddress(v), nil
}

func parseWei(key, v string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(v, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid %s: %q is not a non-negative integer", key, v)
	}

	return n, nil
}
