package store

import (
	"context"

	"github.com/verifyx/provenance-api/internal/domain"
	"github.com/verifyx/provenance-api/internal/store/schema"
)

// Store defines the interface for metadata store operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// InsertBatch writes a new batch document. Inserting an already-anchored
	// ledger id is an idempotent no-op reported via ErrAlreadyExists semantics
	// from GetBatchByLedgerID on the caller side.
	InsertBatch(ctx context.Context, batch *schema.Batch) error

	// GetBatchByLocalID retrieves a batch document by its local id, nil when absent
	GetBatchByLocalID(ctx context.Context, localID string) (*schema.Batch, error)

	// GetBatchByLedgerID retrieves a batch document by its ledger join key, nil when absent
	GetBatchByLedgerID(ctx context.Context, ledgerID uint64) (*schema.Batch, error)

	// UpdateBatchStatus patches the mutable lifecycle state of a batch
	UpdateBatchStatus(ctx context.Context, localID string, status domain.BatchStatus) error

	// AppendBatchProductID appends a product local id to the batch's product list
	// with set-union semantics: re-appending an already-present id is a no-op
	AppendBatchProductID(ctx context.Context, batchLocalID string, productLocalID string) error

	// InsertProduct writes a new product document. A duplicate serial number
	// returns domain.ErrDuplicateSerial.
	InsertProduct(ctx context.Context, product *schema.Product) error

	// GetProductBySerial retrieves a product document by serial number, nil when absent
	GetProductBySerial(ctx context.Context, serial string) (*schema.Product, error)

	// IncrementVerificationCount bumps the consumer verification counter for a product
	IncrementVerificationCount(ctx context.Context, serial string) error
}
