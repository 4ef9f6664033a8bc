package config

import (
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	chainsel "github.com/smartcontractkit/chain-selectors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gotestassert "gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

var (
	sepolia      = types.ChainSelector(chainsel.ETHEREUM_TESTNET_SEPOLIA.Selector)
	testOwnerHex = "0x00000000000000000000000000000000000000A1"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		EnvOwner:         testOwnerHex,
		EnvChainSelector: strconv.FormatUint(uint64(sepolia), 10),
	}
}

func TestFromEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    func(env map[string]string)
		want    func(cfg *Config)
		wantErr string
	}{
		{
			name: "defaults",
			give: func(map[string]string) {},
			want: func(*Config) {},
		},
		{
			name: "overrides",
			give: func(env map[string]string) {
				env[EnvContractAddress] = "0x00000000000000000000000000000000000000c1"
				env[EnvBatchFee] = "5"
				env[EnvMaxOperations] = "10"
				env[EnvMaxBatchValue] = "1000"
				env[EnvPendingWindow] = "30m"
				env[EnvGasBudget] = "1000000"
				env[RPCURLKey(sepolia)] = "http://localhost:8545"
				env[EnvPrivateKey] = "abc"
			},
			want: func(cfg *Config) {
				cfg.ContractAddress = common.HexToAddress("0x00000000000000000000000000000000000000c1")
				cfg.Limits.BatchFee = big.NewInt(5)
				cfg.Limits.MaxOperations = 10
				cfg.Limits.MaxBatchValue = big.NewInt(1000)
				cfg.Limits.PendingWindow = types.NewDuration(30 * time.Minute)
				cfg.GasBudget = 1_000_000
				cfg.RPCURL = "http://localhost:8545"
				cfg.PrivateKey = "abc"
			},
		},
		{
			name: "pending window in seconds",
			give: func(env map[string]string) { env[EnvPendingWindow] = "120" },
			want: func(cfg *Config) { cfg.Limits.PendingWindow = types.NewDuration(2 * time.Minute) },
		},
		{
			name:    "missing owner",
			give:    func(env map[string]string) { delete(env, EnvOwner) },
			wantErr: "Field validation for 'Owner' failed on the 'required' tag",
		},
		{
			name:    "invalid owner",
			give:    func(env map[string]string) { env[EnvOwner] = "0xnope" },
			wantErr: `invalid OWNER: "0xnope" is not a hex address`,
		},
		{
			name:    "invalid selector",
			give:    func(env map[string]string) { env[EnvChainSelector] = "sepolia" },
			wantErr: `invalid CHAIN_SELECTOR "sepolia"`,
		},
		{
			name: "non-evm selector",
			give: func(env map[string]string) {
				env[EnvChainSelector] = strconv.FormatUint(chainsel.SOLANA_DEVNET.Selector, 10)
			},
			wantErr: "unsupported chain family: solana",
		},
		{
			name:    "negative fee",
			give:    func(env map[string]string) { env[EnvBatchFee] = "-1" },
			wantErr: `invalid BATCH_FEE_WEI: "-1" is not a non-negative integer`,
		},
		{
			name:    "zero max operations",
			give:    func(env map[string]string) { env[EnvMaxOperations] = "0" },
			wantErr: "Field validation for 'MaxOperations' failed on the 'gt' tag",
		},
		{
			name:    "zero gas budget",
			give:    func(env map[string]string) { env[EnvGasBudget] = "0" },
			wantErr: "Field validation for 'GasBudget' failed on the 'gt' tag",
		},
		{
			name:    "invalid rpc url",
			give:    func(env map[string]string) { env[RPCURLKey(sepolia)] = "not a url" },
			wantErr: "Field validation for 'RPCURL' failed on the 'url' tag",
		},
		{
			name:    "zero pending window",
			give:    func(env map[string]string) { env[EnvPendingWindow] = "0s" },
			wantErr: "pending window must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := baseEnv()
			tt.give(env)

			got, err := FromEnv(mapLookup(env))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}
			require.NoError(t, err)

			want := Config{
				Owner:         common.HexToAddress(testOwnerHex),
				ChainSelector: sepolia,
				GasBudget:     DefaultGasBudget,
				Limits:        types.DefaultLimits(),
			}
			tt.want(&want)

			assert.Equal(t, want.Owner, got.Owner)
			assert.Equal(t, want.ChainSelector, got.ChainSelector)
			assert.Equal(t, want.ContractAddress, got.ContractAddress)
			assert.Equal(t, want.RPCURL, got.RPCURL)
			assert.Equal(t, want.PrivateKey, got.PrivateKey)
			assert.Equal(t, want.GasBudget, got.GasBudget)
			assert.Equal(t, want.Limits.MaxOperations, got.Limits.MaxOperations)
			assert.Equal(t, want.Limits.PendingWindow, got.Limits.PendingWindow)
			assert.Equal(t, 0, want.Limits.BatchFee.Cmp(got.Limits.BatchFee))
			assert.Equal(t, 0, want.Limits.MaxBatchValue.Cmp(got.Limits.MaxBatchValue))
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	contents := "OWNER=" + testOwnerHex + "\n" +
		"CHAIN_SELECTOR=" + strconv.FormatUint(uint64(sepolia), 10) + "\n" +
		"MAX_OPERATIONS=7\n" +
		RPCURLKey(sepolia) + "=https://rpc.example.com\n"
	gotestassert.NilError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(filepath.Join(dir, "missing.env"), path)
	gotestassert.NilError(t, err)
	gotestassert.Equal(t, cfg.Owner, common.HexToAddress(testOwnerHex))
	gotestassert.Equal(t, cfg.Limits.MaxOperations, 7)
	gotestassert.Check(t, is.Equal(cfg.RPCURL, "https://rpc.example.com"))
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(path, []byte("OWNER='unterminated\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadLimits(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "limits.env")
	require.NoError(t, os.WriteFile(path, []byte("MAX_OPERATIONS=3\nPENDING_WINDOW=2h\n"), 0o600))

	limits, err := LoadLimits(path)
	require.NoError(t, err)
	assert.Equal(t, 3, limits.MaxOperations)
	assert.Equal(t, 2*time.Hour, limits.PendingWindow.Duration)
	assert.Equal(t, 0, limits.BatchFee.Cmp(types.DefaultBatchFee))

	require.NoError(t, os.WriteFile(path, []byte("MAX_OPERATIONS=0\n"), 0o600))
	_, err = LoadLimits(path)
	require.ErrorContains(t, err, "'MaxOperations' failed on the 'gt' tag")
}

func TestLoadWithOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	contents := "OWNER=" + testOwnerHex + "\n" +
		"CHAIN_SELECTOR=" + strconv.FormatUint(chainsel.SOLANA_DEVNET.Selector, 10) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	_, err := Load(path)
	require.ErrorIs(t, err, types.ErrUnsupportedChainFamily)

	cfg, err := LoadWithOverrides(map[string]string{
		EnvChainSelector: strconv.FormatUint(uint64(sepolia), 10),
	}, path)
	require.NoError(t, err)
	assert.Equal(t, sepolia, cfg.ChainSelector)
}
