package provenance

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/verifyx/provenance-api/internal/adapter"
	"github.com/verifyx/provenance-api/internal/domain"
	"github.com/verifyx/provenance-api/internal/ledger"
	"github.com/verifyx/provenance-api/internal/logger"
	"github.com/verifyx/provenance-api/internal/messaging"
	"github.com/verifyx/provenance-api/internal/store"
	"github.com/verifyx/provenance-api/internal/store/schema"
)

// ScanResult is the confirmed outcome of a scan submission
type ScanResult struct {
	LedgerID    uint64
	TxHash      string
	ConfirmedAt string
}

// Service is the write and read surface exposed to the HTTP layer
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/provenance.go -package=mocks -mock_names=Service=MockProvenanceService
type Service interface {
	// CreateBatch anchors a batch on the ledger and writes its metadata document
	CreateBatch(ctx context.Context, spec domain.BatchSpec) (*schema.Batch, error)

	// CreateProduct registers a product on the ledger, writes its metadata
	// document, and links it to its parent batch
	CreateProduct(ctx context.Context, spec domain.ProductSpec) (*schema.Product, error)

	// ScanBatch appends one immutable scan record to a batch's ledger history
	ScanBatch(ctx context.Context, spec domain.ScanSpec) (*ScanResult, error)

	// GetHistory reconstructs the ordered audit trail of a batch from the ledger
	GetHistory(ctx context.Context, ledgerID uint64) ([]domain.ScanEvent, error)

	// UpdateBatchStatus moves a batch through its metadata lifecycle
	UpdateBatchStatus(ctx context.Context, ledgerID uint64, status domain.BatchStatus) (*schema.Batch, error)

	// VerifyProduct looks up a product by serial and counts the verification
	VerifyProduct(ctx context.Context, serial string) (*schema.Product, error)
}

// Reconciler coordinates the ordered two-phase write: ledger first (source of
// truth), metadata store second (denormalized view). Metadata existence implies
// ledger confirmation; the reverse is the recoverable MetadataWriteLost state.
type Reconciler struct {
	ledger    ledger.Client
	coord     ledger.Coordinator
	store     store.Store
	publisher messaging.Publisher
	json      adapter.JSON
	jcs       adapter.JCS
	clock     adapter.Clock
}

// NewReconciler creates the dual-store reconciler. publisher may be nil when no
// broker is configured.
func NewReconciler(
	ledgerClient ledger.Client,
	coord ledger.Coordinator,
	metaStore store.Store,
	publisher messaging.Publisher,
	jsonAdapter adapter.JSON,
	jcsAdapter adapter.JCS,
	clock adapter.Clock,
) *Reconciler {
	return &Reconciler{
		ledger:    ledgerClient,
		coord:     coord,
		store:     metaStore,
		publisher: publisher,
		json:      jsonAdapter,
		jcs:       jcsAdapter,
		clock:     clock,
	}
}

// CreateBatch anchors a batch on the ledger and writes its metadata document.
// Retrying after a lost metadata write reuses the confirmed ledger transaction
// through the coordinator's idempotency cache and redoes only the metadata step.
func (r *Reconciler) CreateBatch(ctx context.Context, spec domain.BatchSpec) (*schema.Batch, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	ledgerID, err := r.deriveLedgerID(spec.BrandID, spec.BatchNumber)
	if err != nil {
		return nil, err
	}

	// Fully idempotent replay: both stores already hold the batch.
	if existing, err := r.store.GetBatchByLedgerID(ctx, ledgerID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	token := fmt.Sprintf("%d", ledgerID)
	receipt, err := r.coord.Submit(ctx, ledger.KindCreateBatch, token,
		func(ctx context.Context, nonce uint64) (common.Hash, error) {
			return r.ledger.SubmitCreateBatch(ctx, nonce, ledgerID, spec.BatchNumber, spec.InitialLocation)
		})
	if err != nil {
		// A rejection for an id with no metadata row can mean the batch was
		// anchored by a previous process whose metadata write was lost. The
		// ledger is authoritative: if the slot is initialized, backfill the
		// metadata document instead of failing.
		if errors.Is(err, domain.ErrLedgerRejected) {
			return r.backfillBatch(ctx, ledgerID, spec, err)
		}
		return nil, err
	}

	batch := &schema.Batch{
		LocalID:          uuid.NewString(),
		BatchNumber:      spec.BatchNumber,
		ProductName:      spec.ProductName,
		BrandID:          spec.BrandID,
		Quantity:         spec.Quantity,
		Status:           domain.BatchStatusActive,
		ProductIDs:       datatypes.JSON([]byte("[]")),
		LedgerID:         ledgerID,
		LedgerTxHash:     receipt.TxHash,
		LedgerAnchoredAt: receipt.ConfirmedAt,
	}

	if err := r.store.InsertBatch(ctx, batch); err != nil {
		// The ledger entry is confirmed but invisible in the metadata store.
		// Surface the partial failure with the anchor so the metadata step can
		// be retried alone; the ledger step must not run again.
		return nil, &domain.MetadataWriteLostError{
			Ref: domain.LedgerRef{LedgerID: ledgerID, TxHash: receipt.TxHash, AnchoredAt: receipt.ConfirmedAt},
			Err: err,
		}
	}

	r.publish(ctx, &domain.ProvenanceEvent{
		Type:       domain.EventTypeBatchCreated,
		LedgerID:   ledgerID,
		TxHash:     receipt.TxHash,
		LocalID:    batch.LocalID,
		OccurredAt: receipt.ConfirmedAt,
	})

	return batch, nil
}

// backfillBatch repairs the half-written state left by a crash between ledger
// confirmation and the metadata insert. The rejection is trusted only after the
// ledger confirms the slot is initialized for this id; anything else keeps the
// original rejection. The confirming transaction predates this process, so the
// document carries no tx hash and records the backfill time as its anchor.
func (r *Reconciler) backfillBatch(ctx context.Context, ledgerID uint64, spec domain.BatchSpec, rejectErr error) (*schema.Batch, error) {
	onLedger, err := r.ledger.QueryBatch(ctx, ledgerID)
	if err != nil || !onLedger.IsInitialized {
		return nil, rejectErr
	}

	logger.WarnCtx(ctx, "backfilling metadata for ledger-anchored batch",
		zap.Uint64("ledger_id", ledgerID),
		zap.String("batch_number", spec.BatchNumber))

	batch := &schema.Batch{
		LocalID:          uuid.NewString(),
		BatchNumber:      spec.BatchNumber,
		ProductName:      spec.ProductName,
		BrandID:          spec.BrandID,
		Quantity:         spec.Quantity,
		Status:           domain.BatchStatusActive,
		ProductIDs:       datatypes.JSON([]byte("[]")),
		LedgerID:         ledgerID,
		LedgerAnchoredAt: r.clock.Now().UTC(),
	}

	if err := r.store.InsertBatch(ctx, batch); err != nil {
		return nil, r.metadataLost(ledgerID, "", batch.LedgerAnchoredAt, err)
	}

	r.publish(ctx, &domain.ProvenanceEvent{
		Type:       domain.EventTypeBatchCreated,
		LedgerID:   ledgerID,
		LocalID:    batch.LocalID,
		OccurredAt: batch.LedgerAnchoredAt,
	})

	return batch, nil
}

// CreateProduct registers a product on the ledger, writes its metadata document,
// and links it into the parent batch's product list with set-union semantics.
func (r *Reconciler) CreateProduct(ctx context.Context, spec domain.ProductSpec) (*schema.Product, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	batch, err := r.store.GetBatchByLocalID(ctx, spec.BatchLocalID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("%w: batch %s", domain.ErrBatchNotFound, spec.BatchLocalID)
	}

	// Replay after a lost link: the product document exists, only the parent
	// linkage may be missing. Re-linking is a no-op when already present.
	if existing, err := r.store.GetProductBySerial(ctx, spec.SerialNumber); err != nil {
		return nil, err
	} else if existing != nil {
		if err := r.store.AppendBatchProductID(ctx, existing.BatchLocalID, existing.LocalID); err != nil {
			return nil, r.metadataLost(existing.LedgerBatchID, existing.LedgerTxHash, existing.RegisteredAt, err)
		}
		return existing, nil
	}

	receipt, err := r.coord.Submit(ctx, ledger.KindRegisterProduct, spec.SerialNumber,
		func(ctx context.Context, nonce uint64) (common.Hash, error) {
			return r.ledger.SubmitRegisterProduct(ctx, nonce, spec.SerialNumber, batch.LedgerID)
		})
	if err != nil {
		return nil, err
	}

	product := &schema.Product{
		LocalID:       uuid.NewString(),
		SerialNumber:  spec.SerialNumber,
		Name:          spec.Name,
		BatchLocalID:  batch.LocalID,
		LedgerBatchID: batch.LedgerID,
		LedgerTxHash:  receipt.TxHash,
		RegisteredAt:  receipt.ConfirmedAt,
		IsActive:      true,
	}

	if err := r.store.InsertProduct(ctx, product); err != nil {
		return nil, r.metadataLost(batch.LedgerID, receipt.TxHash, receipt.ConfirmedAt, err)
	}

	if err := r.store.AppendBatchProductID(ctx, batch.LocalID, product.LocalID); err != nil {
		return nil, r.metadataLost(batch.LedgerID, receipt.TxHash, receipt.ConfirmedAt, err)
	}

	r.publish(ctx, &domain.ProvenanceEvent{
		Type:       domain.EventTypeProductRegistered,
		LedgerID:   batch.LedgerID,
		TxHash:     receipt.TxHash,
		LocalID:    product.LocalID,
		Serial:     product.SerialNumber,
		OccurredAt: receipt.ConfirmedAt,
	})

	return product, nil
}

// ScanBatch appends one immutable scan record to a batch's ledger history.
// Scans are events, not documents: every call is a distinct ledger append.
func (r *Reconciler) ScanBatch(ctx context.Context, spec domain.ScanSpec) (*ScanResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	token := uuid.NewString()
	receipt, err := r.coord.Submit(ctx, ledger.KindScan, token,
		func(ctx context.Context, nonce uint64) (common.Hash, error) {
			return r.ledger.SubmitScan(ctx, nonce, spec.LedgerID, spec.Location, spec.Status)
		})
	if err != nil {
		return nil, err
	}

	r.publish(ctx, &domain.ProvenanceEvent{
		Type:       domain.EventTypeBatchScanned,
		LedgerID:   spec.LedgerID,
		TxHash:     receipt.TxHash,
		OccurredAt: receipt.ConfirmedAt,
	})

	return &ScanResult{
		LedgerID:    spec.LedgerID,
		TxHash:      receipt.TxHash,
		ConfirmedAt: receipt.ConfirmedAt.UTC().Format(time.RFC3339),
	}, nil
}

// UpdateBatchStatus moves a batch through its metadata lifecycle. Status lives
// only in the metadata store; the immutable ledger record is untouched, so a
// recall or closure still leaves the full scan history verifiable.
func (r *Reconciler) UpdateBatchStatus(ctx context.Context, ledgerID uint64, status domain.BatchStatus) (*schema.Batch, error) {
	if !domain.IsValidBatchStatus(status) {
		return nil, fmt.Errorf("%w: unknown batch status %q", domain.ErrInvalidInput, status)
	}

	batch, err := r.store.GetBatchByLedgerID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrBatchNotFound, ledgerID)
	}

	if err := r.store.UpdateBatchStatus(ctx, batch.LocalID, status); err != nil {
		return nil, err
	}
	batch.Status = status

	return batch, nil
}

// VerifyProduct looks up a product by serial and counts the verification
func (r *Reconciler) VerifyProduct(ctx context.Context, serial string) (*schema.Product, error) {
	if serial == "" {
		return nil, domain.ErrInvalidInput
	}

	product, err := r.store.GetProductBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	if err := r.store.IncrementVerificationCount(ctx, serial); err != nil {
		logger.WarnCtx(ctx, "failed to count verification", zap.String("serial", serial), zap.Error(err))
	} else {
		product.VerificationCount++
	}

	return product, nil
}

// deriveLedgerID derives a collision-free ledger identifier from the batch's
// natural key. Canonical JSON keeps the hash stable across field ordering;
// distinct natural keys map to distinct ids, and a replay of the same key maps
// to the same id so the ledger's duplicate check catches true duplicates.
// Wall-clock time is never part of the identifier.
func (r *Reconciler) deriveLedgerID(brandID, batchNumber string) (uint64, error) {
	payload, err := r.json.Marshal(struct {
		BrandID     string `json:"brand_id"`
		BatchNumber string `json:"batch_number"`
	}{BrandID: brandID, BatchNumber: batchNumber})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal natural key: %w", err)
	}

	canonical, err := r.jcs.Transform(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to canonicalize natural key: %w", err)
	}

	sum := sha256.Sum256(canonical)
	id := binary.BigEndian.Uint64(sum[:8])
	if id == 0 {
		id = 1 // zero is indistinguishable from an uninitialized slot on the ledger
	}
	return id, nil
}

func (r *Reconciler) metadataLost(ledgerID uint64, txHash string, anchoredAt time.Time, err error) error {
	return &domain.MetadataWriteLostError{
		Ref: domain.LedgerRef{LedgerID: ledgerID, TxHash: txHash, AnchoredAt: anchoredAt},
		Err: err,
	}
}

func (r *Reconciler) publish(ctx context.Context, event *domain.ProvenanceEvent) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.PublishEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to publish provenance event",
			zap.String("type", string(event.Type)),
			zap.Uint64("ledger_id", event.LedgerID),
			zap.Error(err))
	}
}
