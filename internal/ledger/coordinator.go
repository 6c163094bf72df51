package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/verifyx/provenance-api/internal/adapter"
	"github.com/verifyx/provenance-api/internal/domain"
	"github.com/verifyx/provenance-api/internal/logger"
)

// Kind identifies the ledger operation being coordinated
type Kind string

const (
	KindCreateBatch     Kind = "create_batch"
	KindRegisterProduct Kind = "register_product"
	KindScan            Kind = "scan"
)

// Receipt is the confirmed outcome of a coordinated submission
type Receipt struct {
	TxHash      string
	ConfirmedAt time.Time
}

// SubmitFunc signs and submits one transaction with the reserved nonce
type SubmitFunc func(ctx context.Context, nonce uint64) (common.Hash, error)

// Coordinator submits transactions through the nonce sequencer, waits for
// confirmation, classifies the outcome, and retries transient failures with the
// same reserved nonce. Submissions are idempotent per caller-supplied token: a
// durably confirmed result is returned again without a second ledger transaction.
//
//go:generate mockgen -source=coordinator.go -destination=../mocks/coordinator.go -package=mocks -mock_names=Coordinator=MockCoordinator
type Coordinator interface {
	Submit(ctx context.Context, kind Kind, token string, submit SubmitFunc) (*Receipt, error)
}

// CoordinatorConfig holds the confirmation and retry policy
type CoordinatorConfig struct {
	ConfirmTimeout  time.Duration
	ConfirmInterval time.Duration
	MaxRetries      uint64
}

type coordinator struct {
	sequencer *Sequencer
	client    Client
	clock     adapter.Clock
	cfg       CoordinatorConfig

	mu        sync.Mutex
	confirmed map[string]*Receipt
}

// NewCoordinator creates a transaction coordinator over the given sequencer and client
func NewCoordinator(sequencer *Sequencer, client Client, clock adapter.Clock, cfg CoordinatorConfig) Coordinator {
	return &coordinator{
		sequencer: sequencer,
		client:    client,
		clock:     clock,
		cfg:       cfg,
		confirmed: make(map[string]*Receipt),
	}
}

// Submit coordinates one transaction end to end
func (c *coordinator) Submit(ctx context.Context, kind Kind, token string, submit SubmitFunc) (*Receipt, error) {
	key := string(kind) + ":" + token

	c.mu.Lock()
	if receipt, ok := c.confirmed[key]; ok {
		c.mu.Unlock()
		logger.DebugCtx(ctx, "returning confirmed receipt for duplicate submission",
			zap.String("kind", string(kind)),
			zap.String("token", token),
			zap.String("tx_hash", receipt.TxHash))
		return receipt, nil
	}
	c.mu.Unlock()

	nonce, err := c.sequencer.Reserve(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve nonce: %w", err)
	}

	txHash, err := c.send(ctx, nonce, submit)
	if err != nil {
		// The transaction never entered the pool; the nonce hole is re-opened
		// for the next reservation.
		c.sequencer.Release(nonce, false)
		return nil, err
	}

	// The pool accepted the transaction, so the nonce is consumed regardless of
	// how confirmation turns out.
	defer c.sequencer.Release(nonce, true)

	receipt, err := c.waitConfirmation(ctx, txHash)
	if err != nil {
		return nil, err
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: transaction %s reverted on chain", domain.ErrLedgerRejected, txHash.Hex())
	}

	result := &Receipt{
		TxHash:      txHash.Hex(),
		ConfirmedAt: c.clock.Now().UTC(),
	}

	c.mu.Lock()
	c.confirmed[key] = result
	c.mu.Unlock()

	logger.InfoCtx(ctx, "ledger transaction confirmed",
		zap.String("kind", string(kind)),
		zap.String("token", token),
		zap.Uint64("nonce", nonce),
		zap.String("tx_hash", result.TxHash))

	return result, nil
}

// send submits the transaction, retrying transient unavailability with backoff
// while reusing the same reserved nonce. Rejection is terminal and never retried.
func (c *coordinator) send(ctx context.Context, nonce uint64, submit SubmitFunc) (common.Hash, error) {
	var txHash common.Hash

	operation := func() error {
		hash, err := submit(ctx, nonce)
		if err != nil {
			if errors.Is(err, domain.ErrLedgerRejected) {
				return backoff.Permanent(err)
			}
			logger.WarnCtx(ctx, "ledger submission failed, retrying with same nonce",
				zap.Uint64("nonce", nonce),
				zap.Error(err))
			return err
		}
		txHash = hash
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.cfg.MaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return common.Hash{}, err
	}

	return txHash, nil
}

// waitConfirmation polls for the receipt until the bounded timeout. On timeout
// it re-checks the status once more before reporting, since the transaction may
// have landed while the poll slept.
func (c *coordinator) waitConfirmation(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	deadline := c.clock.Now().Add(c.cfg.ConfirmTimeout)

	for {
		receipt, err := c.client.TransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return receipt, nil
		}
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			logger.WarnCtx(ctx, "receipt check failed",
				zap.String("tx_hash", txHash.Hex()),
				zap.Error(err))
		}

		if !c.clock.Now().Before(deadline) {
			// Final status re-check before declaring a timeout.
			receipt, err := c.client.TransactionReceipt(ctx, txHash)
			if err == nil && receipt != nil {
				return receipt, nil
			}
			return nil, fmt.Errorf("%w: no confirmation for %s within %s",
				domain.ErrLedgerTimeout, txHash.Hex(), c.cfg.ConfirmTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.clock.After(c.cfg.ConfirmInterval):
		}
	}
}
