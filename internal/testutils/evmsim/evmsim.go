// package evmsim implements a simulated EVM chain for testing purposes.
package evmsim

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/require"
)

const (
	// DefaultGasLimit is the default gas limit for each transaction in the simulated chain
	DefaultGasLimit = uint64(8000000)

	// DefaultBalance is the default balance for each account in the simulated chain
	DefaultBalance = 1e18

	// SimulatedChainID is the chain ID used for the simulated chain. EVM Simulated chains always use 1337
	//
	// https://pkg.go.dev/github.com/ethereum/go-ethereum/ethclient/simulated#NewBackend
	SimulatedChainID = 1337
)

// Runtime bytecode of minimal test contracts.
var (
	// ReturnCode returns the 32-byte word 0x2a.
	ReturnCode = common.FromHex("0x602a60005260206000f3")

	// RevertCode reverts with empty data.
	RevertCode = common.FromHex("0x60006000fd")

	// SpinCode loops until it runs out of gas.
	SpinCode = common.FromHex("0x5b600056")
)

// SimulatedChain represents a simulated chain with a backend and a list of signers.
type SimulatedChain struct {
	Backend *simulated.Backend
	Signers []*Signer
}

// Signer represents a signer with a private key.
type Signer struct {
	PrivateKey *ecdsa.PrivateKey
}

// NewTransactOpts creates a new transact options with the signer's private key and sets default
// values.
func (s *Signer) NewTransactOpts(t *testing.T) *bind.TransactOpts {
	t.Helper()

	auth, err := bind.NewKeyedTransactorWithChainID(s.PrivateKey, big.NewInt(SimulatedChainID))
	require.NoError(t, err)

	// Set default values
	auth.GasLimit = DefaultGasLimit

	return auth
}

// Address extracts the address from the signer's private key.
func (s *Signer) Address(t *testing.T) common.Address {
	t.Helper()

	publicKeyECDSA, ok := s.PrivateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		t.Fatal("error casting public key from crypto to ecdsa")
	}

	return crypto.PubkeyToAddress(*publicKeyECDSA)
}

// NewSimulatedChain creates a new simulated chain with the given number of funded signers.
func NewSimulatedChain(t *testing.T, numSigners uint64) SimulatedChain {
	t.Helper()

	signers := make([]*Signer, 0, numSigners)
	for range numSigners {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		signers = append(signers, &Signer{PrivateKey: key})
	}

	genesisAlloc := gethTypes.GenesisAlloc{}
	for _, s := range signers {
		genesisAlloc[s.Address(t)] = gethTypes.Account{
			Balance: big.NewInt(DefaultBalance),
		}
	}

	sim := simulated.NewBackend(genesisAlloc,
		simulated.WithBlockGasLimit(DefaultGasLimit),
	)
	t.Cleanup(func() { _ = sim.Close() })

	return SimulatedChain{
		Backend: sim,
		Signers: signers,
	}
}

// DeployCode deploys runtime as a contract from signer and mines it, returning the contract
// address.
func (s *SimulatedChain) DeployCode(t *testing.T, signer *Signer, runtime []byte) common.Address {
	t.Helper()

	ctx := context.Background()
	client := s.Backend.Client()
	from := signer.Address(t)

	nonce, err := client.PendingNonceAt(ctx, from)
	require.NoError(t, err)
	gasPrice, err := client.SuggestGasPrice(ctx)
	require.NoError(t, err)

	tx := gethTypes.NewContractCreation(nonce, big.NewInt(0), DefaultGasLimit/2, gasPrice, initCode(runtime))
	signed, err := signer.NewTransactOpts(t).Signer(from, tx)
	require.NoError(t, err)
	require.NoError(t, client.SendTransaction(ctx, signed))

	s.Backend.Commit()

	receipt, err := client.TransactionReceipt(ctx, signed.Hash())
	require.NoError(t, err)
	require.Equal(t, gethTypes.ReceiptStatusSuccessful, receipt.Status)

	return receipt.ContractAddress
}

// initCode prefixes runtime with a constructor that copies it into memory and returns it.
func initCode(runtime []byte) []byte {
	const prefixLen = 11

	code := []byte{
		0x60, byte(len(runtime)), // PUSH1 len
		0x80,            // DUP1
		0x60, prefixLen, // PUSH1 offset
		0x60, 0x00, // PUSH1 0
		0x39,       // CODECOPY
		0x60, 0x00, // PUSH1 0
		0xf3, // RETURN
	}

	return append(code, runtime...)
}
