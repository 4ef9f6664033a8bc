package swiftbatch

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/SwiftBridge/swift-batch-transactions-contract/config"
	"github.com/SwiftBridge/swift-batch-transactions-contract/types"
)

// batchFile is the on-disk form of a batch.
type batchFile struct {
	// Creator submits the batch. The configured owner is used when unset.
	Creator    common.Address    `json:"creator"`
	Operations []types.Operation `json:"operations"`
}

func loadBatch(path string) (batchFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return batchFile{}, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	var b batchFile
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err = dec.Decode(&b); err != nil {
		return batchFile{}, fmt.Errorf("failed to decode batch file %s: %w", path, err)
	}

	return b, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// loadTransactor builds a transactor for the configured chain from PRIVATE_KEY. It returns nil
// when no key is configured.
func loadTransactor(cfg config.Config) (*bind.TransactOpts, error) {
	if cfg.PrivateKey == "" {
		return nil, nil
	}

	pk, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.EnvPrivateKey, err)
	}

	chainID, err := cfg.ChainSelector.ChainID()
	if err != nil {
		return nil, err
	}

	return bind.NewKeyedTransactorWithChainID(pk, new(big.Int).SetUint64(chainID))
}
