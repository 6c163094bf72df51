package ledger

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/verifyx/provenance-api/internal/adapter"
	"github.com/verifyx/provenance-api/internal/domain"
)

// ScanRecord is the raw on-ledger scan tuple before timestamp conversion
type ScanRecord struct {
	Timestamp *big.Int       `abi:"timestamp"`
	Location  string         `abi:"location"`
	Status    string         `abi:"status"`
	Actor     common.Address `abi:"actor"`
}

// Client is the typed wrapper over the provenance contract. Every Submit* call
// consumes one sequence number from the signing identity; nonce management is
// the caller's responsibility (see Sequencer and Coordinator).
//
//go:generate mockgen -source=client.go -destination=../mocks/ledger_client.go -package=mocks -mock_names=Client=MockLedgerClient
type Client interface {
	// SubmitCreateBatch signs and submits a batch creation transaction
	SubmitCreateBatch(ctx context.Context, nonce uint64, id uint64, name, initialLocation string) (common.Hash, error)

	// SubmitRegisterProduct signs and submits a product registration transaction
	SubmitRegisterProduct(ctx context.Context, nonce uint64, serial string, batchID uint64) (common.Hash, error)

	// SubmitScan signs and submits a scan transaction for an existing batch
	SubmitScan(ctx context.Context, nonce uint64, id uint64, location, status string) (common.Hash, error)

	// QueryBatch reads the authoritative batch record from the ledger
	QueryBatch(ctx context.Context, id uint64) (*domain.LedgerBatch, error)

	// QueryHistory reads the full scan history of a batch in ledger append order.
	// Calling this for an uninitialized batch reverts on the ledger side; callers
	// must gate on QueryBatch first.
	QueryHistory(ctx context.Context, id uint64) ([]ScanRecord, error)

	// TransactionReceipt returns the receipt of a mined transaction, or
	// ethereum.NotFound while it is still pending
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)

	// PendingNonce returns the identity's next nonce including pending transactions
	PendingNonce(ctx context.Context) (uint64, error)

	// Close closes the connection
	Close()
}

type client struct {
	identity *Identity
	eth      adapter.EthClient
	parsed   abi.ABI
	gasLimit uint64
}

// NewClient creates a typed ledger client bound to the given identity
func NewClient(identity *Identity, eth adapter.EthClient, gasLimit uint64) (Client, error) {
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	return &client{
		identity: identity,
		eth:      eth,
		parsed:   parsed,
		gasLimit: gasLimit,
	}, nil
}

// SubmitCreateBatch signs and submits a batch creation transaction
func (c *client) SubmitCreateBatch(ctx context.Context, nonce uint64, id uint64, name, initialLocation string) (common.Hash, error) {
	data, err := c.parsed.Pack("createBatch", new(big.Int).SetUint64(id), name, initialLocation)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack createBatch: %w", err)
	}
	return c.submit(ctx, nonce, data)
}

// SubmitRegisterProduct signs and submits a product registration transaction
func (c *client) SubmitRegisterProduct(ctx context.Context, nonce uint64, serial string, batchID uint64) (common.Hash, error) {
	data, err := c.parsed.Pack("registerProduct", serial, new(big.Int).SetUint64(batchID))
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack registerProduct: %w", err)
	}
	return c.submit(ctx, nonce, data)
}

// SubmitScan signs and submits a scan transaction
func (c *client) SubmitScan(ctx context.Context, nonce uint64, id uint64, location, status string) (common.Hash, error) {
	data, err := c.parsed.Pack("scanBatch", new(big.Int).SetUint64(id), location, status)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack scanBatch: %w", err)
	}
	return c.submit(ctx, nonce, data)
}

// submit estimates gas, signs with the reserved nonce, and injects the transaction.
// Revert during estimation means the ledger refuses the arguments (terminal);
// transport failures are reported as unavailability so the caller can retry.
func (c *client) submit(ctx context.Context, nonce uint64, data []byte) (common.Hash, error) {
	contract := c.identity.Contract()
	msg := ethereum.CallMsg{
		From: c.identity.Address(),
		To:   &contract,
		Data: data,
	}

	gas, err := c.eth.EstimateGas(ctx, msg)
	if err != nil {
		if isRevertError(err) {
			return common.Hash{}, fmt.Errorf("%w: %v", domain.ErrLedgerRejected, err)
		}
		return common.Hash{}, fmt.Errorf("%w: gas estimation failed: %v", domain.ErrLedgerUnavailable, err)
	}
	if gas < c.gasLimit {
		gas = c.gasLimit
	}

	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: gas price suggestion failed: %v", domain.ErrLedgerUnavailable, err)
	}

	tx := types.NewTransaction(nonce, contract, big.NewInt(0), gas, gasPrice, data)
	signed, err := c.identity.SignTx(tx)
	if err != nil {
		return common.Hash{}, err
	}

	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		if isRevertError(err) {
			return common.Hash{}, fmt.Errorf("%w: %v", domain.ErrLedgerRejected, err)
		}
		return common.Hash{}, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}

	return signed.Hash(), nil
}

// QueryBatch reads the authoritative batch record from the ledger
func (c *client) QueryBatch(ctx context.Context, id uint64) (*domain.LedgerBatch, error) {
	data, err := c.parsed.Pack("batches", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to pack batches: %w", err)
	}

	result, err := c.call(ctx, data)
	if err != nil {
		return nil, err
	}

	out, err := c.parsed.Unpack("batches", result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack batches: %w", err)
	}

	batchID, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected batch id type %T", out[0])
	}
	name, ok := out[1].(string)
	if !ok {
		return nil, fmt.Errorf("unexpected batch name type %T", out[1])
	}
	initialized, ok := out[2].(bool)
	if !ok {
		return nil, fmt.Errorf("unexpected batch flag type %T", out[2])
	}

	return &domain.LedgerBatch{
		ID:            batchID.Uint64(),
		Name:          name,
		IsInitialized: initialized,
	}, nil
}

// QueryHistory reads the full scan history of a batch in ledger append order
func (c *client) QueryHistory(ctx context.Context, id uint64) ([]ScanRecord, error) {
	data, err := c.parsed.Pack("getBatchHistory", new(big.Int).SetUint64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to pack getBatchHistory: %w", err)
	}

	result, err := c.call(ctx, data)
	if err != nil {
		return nil, err
	}

	var records []ScanRecord
	if err := c.parsed.UnpackIntoInterface(&records, "getBatchHistory", result); err != nil {
		return nil, fmt.Errorf("failed to unpack getBatchHistory: %w", err)
	}

	return records, nil
}

// TransactionReceipt returns the receipt of a mined transaction
func (c *client) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	return c.eth.TransactionReceipt(ctx, txHash)
}

// PendingNonce returns the identity's next nonce including pending transactions
func (c *client) PendingNonce(ctx context.Context) (uint64, error) {
	return c.eth.PendingNonceAt(ctx, c.identity.Address())
}

// Close closes the connection
func (c *client) Close() {
	c.eth.Close()
}

func (c *client) call(ctx context.Context, data []byte) ([]byte, error) {
	contract := c.identity.Contract()
	result, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		if isRevertError(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrLedgerRejected, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrLedgerUnavailable, err)
	}
	return result, nil
}

// isRevertError checks if the error is a contract-side revert rather than a transport failure
func isRevertError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "execution reverted") ||
		strings.Contains(errStr, "revert") ||
		strings.Contains(errStr, "invalid opcode") ||
		strings.Contains(errStr, "always failing transaction")
}
