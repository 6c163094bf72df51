package provenance_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/verifyx/provenance-api/internal/adapter"
	"github.com/verifyx/provenance-api/internal/domain"
	"github.com/verifyx/provenance-api/internal/ledger"
	"github.com/verifyx/provenance-api/internal/logger"
	"github.com/verifyx/provenance-api/internal/mocks"
	"github.com/verifyx/provenance-api/internal/provenance"
	"github.com/verifyx/provenance-api/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testReconcilerMocks contains all the mocks needed for testing the reconciler
type testReconcilerMocks struct {
	ctrl       *gomock.Controller
	ledger     *mocks.MockLedgerClient
	coord      *mocks.MockCoordinator
	store      *mocks.MockStore
	publisher  *mocks.MockPublisher
	reconciler *provenance.Reconciler
}

// setupTestReconciler creates all the mocks and the reconciler for testing
func setupTestReconciler(t *testing.T) *testReconcilerMocks {
	ctrl := gomock.NewController(t)

	tm := &testReconcilerMocks{
		ctrl:      ctrl,
		ledger:    mocks.NewMockLedgerClient(ctrl),
		coord:     mocks.NewMockCoordinator(ctrl),
		store:     mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
	}

	tm.reconciler = provenance.NewReconciler(
		tm.ledger,
		tm.coord,
		tm.store,
		tm.publisher,
		adapter.NewJSON(),
		adapter.NewJCS(),
		adapter.NewClock(),
	)

	return tm
}

func (tm *testReconcilerMocks) tearDown() {
	tm.ctrl.Finish()
}

func validBatchSpec() domain.BatchSpec {
	return domain.BatchSpec{
		BrandID:         "acme",
		BatchNumber:     "Lot-001",
		ProductName:     "Widget",
		Quantity:        100,
		InitialLocation: "Factory A",
	}
}

// confirmedSubmit runs the submit closure with the given nonce and returns a
// confirmed receipt, mirroring what the real coordinator does on success.
func confirmedSubmit(txHash string, confirmedAt time.Time) func(context.Context, ledger.Kind, string, ledger.SubmitFunc) (*ledger.Receipt, error) {
	return func(ctx context.Context, kind ledger.Kind, token string, submit ledger.SubmitFunc) (*ledger.Receipt, error) {
		if _, err := submit(ctx, 0); err != nil {
			return nil, err
		}
		return &ledger.Receipt{TxHash: txHash, ConfirmedAt: confirmedAt}, nil
	}
}

func TestCreateBatch(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	spec := validBatchSpec()
	confirmedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	var ledgerID uint64
	tm.store.EXPECT().GetBatchByLedgerID(gomock.Any(), gomock.Any()).Return(nil, nil)
	tm.ledger.EXPECT().
		SubmitCreateBatch(gomock.Any(), uint64(0), gomock.Any(), spec.BatchNumber, spec.InitialLocation).
		DoAndReturn(func(ctx context.Context, nonce, id uint64, name, loc string) (common.Hash, error) {
			ledgerID = id
			return common.HexToHash("0xabc"), nil
		})
	tm.coord.EXPECT().
		Submit(gomock.Any(), ledger.KindCreateBatch, gomock.Any(), gomock.Any()).
		DoAndReturn(confirmedSubmit("0xabc", confirmedAt))

	var inserted *schema.Batch
	tm.store.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, batch *schema.Batch) error {
			inserted = batch
			return nil
		})
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *domain.ProvenanceEvent) error {
			assert.Equal(t, domain.EventTypeBatchCreated, event.Type)
			assert.Equal(t, "0xabc", event.TxHash)
			return nil
		})

	batch, err := tm.reconciler.CreateBatch(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, inserted, batch)
	assert.NotEmpty(t, batch.LocalID)
	assert.Equal(t, ledgerID, batch.LedgerID)
	assert.NotZero(t, batch.LedgerID)
	assert.Equal(t, spec.BatchNumber, batch.BatchNumber)
	assert.Equal(t, domain.BatchStatusActive, batch.Status)
	assert.Equal(t, "0xabc", batch.LedgerTxHash)
	assert.Equal(t, confirmedAt, batch.LedgerAnchoredAt)
	assert.JSONEq(t, "[]", string(batch.ProductIDs))
}

func TestCreateBatchInvalidSpec(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	for _, spec := range []domain.BatchSpec{
		{},
		{BrandID: "acme", BatchNumber: "Lot-001", ProductName: "Widget", Quantity: 0, InitialLocation: "A"},
		{BrandID: " ", BatchNumber: "Lot-001", ProductName: "Widget", Quantity: 1, InitialLocation: "A"},
		{BrandID: "acme", BatchNumber: "", ProductName: "Widget", Quantity: 1, InitialLocation: "A"},
	} {
		_, err := tm.reconciler.CreateBatch(context.Background(), spec)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestCreateBatchReplayReturnsExisting(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	existing := &schema.Batch{LocalID: "local-1", LedgerID: 42}
	tm.store.EXPECT().GetBatchByLedgerID(gomock.Any(), gomock.Any()).Return(existing, nil)

	// No coordinator submission, no insert, no event.
	batch, err := tm.reconciler.CreateBatch(context.Background(), validBatchSpec())
	require.NoError(t, err)
	assert.Equal(t, existing, batch)
}

func TestCreateBatchDerivedIDIsDeterministic(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	confirmedAt := time.Now().UTC()
	seen := make(map[uint64]int)

	tm.store.EXPECT().GetBatchByLedgerID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uint64) (*schema.Batch, error) {
			seen[id]++
			return nil, nil
		}).Times(2)
	tm.ledger.EXPECT().SubmitCreateBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(common.HexToHash("0x1"), nil).Times(2)
	tm.coord.EXPECT().Submit(gomock.Any(), ledger.KindCreateBatch, gomock.Any(), gomock.Any()).
		DoAndReturn(confirmedSubmit("0x1", confirmedAt)).Times(2)
	tm.store.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	spec := validBatchSpec()
	_, err := tm.reconciler.CreateBatch(context.Background(), spec)
	require.NoError(t, err)
	_, err = tm.reconciler.CreateBatch(context.Background(), spec)
	require.NoError(t, err)

	// The same natural key maps to the same ledger id on every attempt.
	require.Len(t, seen, 1)
	for _, count := range seen {
		assert.Equal(t, 2, count)
	}
}

func TestCreateBatchDerivedIDsAreCollisionFree(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	const batches = 100

	confirmedAt := time.Now().UTC()
	seen := make(map[uint64]bool)

	tm.store.EXPECT().GetBatchByLedgerID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uint64) (*schema.Batch, error) {
			seen[id] = true
			return nil, nil
		}).Times(batches)
	tm.ledger.EXPECT().SubmitCreateBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(common.HexToHash("0x1"), nil).Times(batches)
	tm.coord.EXPECT().Submit(gomock.Any(), ledger.KindCreateBatch, gomock.Any(), gomock.Any()).
		DoAndReturn(confirmedSubmit("0x1", confirmedAt)).Times(batches)
	tm.store.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Return(nil).Times(batches)
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).Times(batches)

	for i := 0; i < batches; i++ {
		spec := validBatchSpec()
		spec.BatchNumber = fmt.Sprintf("Lot-%03d", i)
		_, err := tm.reconciler.CreateBatch(context.Background(), spec)
		require.NoError(t, err)
	}

	// Distinct natural keys never share a ledger id, even within one instant.
	assert.Len(t, seen, batches)
}

func TestCreateBatchMetadataWriteLost(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	confirmedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	storeErr := errors.New("connection reset")

	tm.store.EXPECT().GetBatchByLedgerID(gomock.Any(), gomock.Any()).Return(nil, nil)
	tm.ledger.EXPECT().SubmitCreateBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(common.HexToHash("0xdead"), nil)
	tm.coord.EXPECT().Submit(gomock.Any(), ledger.KindCreateBatch, gomock.Any(), gomock.Any()).
		DoAndReturn(confirmedSubmit("0xdead", confirmedAt))
	tm.store.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Return(storeErr)

	_, err := tm.reconciler.CreateBatch(context.Background(), validBatchSpec())
	require.Error(t, err)

	// The confirmed ledger anchor must be surfaced so the metadata write can be
	// retried without a second ledger transaction.
	lost, ok := domain.AsMetadataWriteLost(err)
	require.True(t, ok)
	assert.Equal(t, "0xdead", lost.Ref.TxHash)
	assert.Equal(t, confirmedAt, lost.Ref.AnchoredAt)
	assert.NotZero(t, lost.Ref.LedgerID)
	assert.ErrorIs(t, err, storeErr)
}

func TestCreateBatchBackfillsAfterRestart(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	spec := validBatchSpec()

	// A previous process anchored this batch and crashed before the metadata
	// insert. This process has an empty idempotency cache, so the resubmission
	// reaches the ledger and is rejected as a duplicate.
	var ledgerID uint64
	tm.store.EXPECT().GetBatchByLedgerID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uint64) (*schema.Batch, error) {
			ledgerID = id
			return nil, nil
		})
	tm.coord.EXPECT().Submit(gomock.Any(), ledger.KindCreateBatch, gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: execution reverted: batch exists", domain.ErrLedgerRejected))
	tm.ledger.EXPECT().QueryBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uint64) (*domain.LedgerBatch, error) {
			assert.Equal(t, ledgerID, id)
			return &domain.LedgerBatch{ID: id, Name: spec.BatchNumber, IsInitialized: true}, nil
		})

	var inserted *schema.Batch
	tm.store.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, batch *schema.Batch) error {
			inserted = batch
			return nil
		})
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	batch, err := tm.reconciler.CreateBatch(context.Background(), spec)
	require.NoError(t, err)

	// The metadata row is recovered from the ledger-anchored state.
	assert.Equal(t, inserted, batch)
	assert.Equal(t, ledgerID, batch.LedgerID)
	assert.Equal(t, spec.BatchNumber, batch.BatchNumber)
	assert.Equal(t, domain.BatchStatusActive, batch.Status)
	assert.Empty(t, batch.LedgerTxHash)
	assert.False(t, batch.LedgerAnchoredAt.IsZero())
}

func TestCreateBatchRejectionWithoutAnchorIsTerminal(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	rejection := fmt.Errorf("%w: execution reverted", domain.ErrLedgerRejected)

	tm.store.EXPECT().GetBatchByLedgerID(gomock.Any(), gomock.Any()).Return(nil, nil)
	tm.coord.EXPECT().Submit(gomock.Any(), ledger.KindCreateBatch, gomock.Any(), gomock.Any()).
		Return(nil, rejection)
	tm.ledger.EXPECT().QueryBatch(gomock.Any(), gomock.Any()).
		Return(&domain.LedgerBatch{IsInitialized: false}, nil)

	// An uninitialized slot means the rejection was genuine; nothing to backfill.
	_, err := tm.reconciler.CreateBatch(context.Background(), validBatchSpec())
	assert.ErrorIs(t, err, domain.ErrLedgerRejected)
}

func TestCreateBatchBackfillInsertFailureIsMetadataWriteLost(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	storeErr := errors.New("connection reset")

	tm.store.EXPECT().GetBatchByLedgerID(gomock.Any(), gomock.Any()).Return(nil, nil)
	tm.coord.EXPECT().Submit(gomock.Any(), ledger.KindCreateBatch, gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: execution reverted: batch exists", domain.ErrLedgerRejected))
	tm.ledger.EXPECT().QueryBatch(gomock.Any(), gomock.Any()).
		Return(&domain.LedgerBatch{IsInitialized: true}, nil)
	tm.store.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Return(storeErr)

	_, err := tm.reconciler.CreateBatch(context.Background(), validBatchSpec())
	require.Error(t, err)

	lost, ok := domain.AsMetadataWriteLost(err)
	require.True(t, ok)
	assert.NotZero(t, lost.Ref.LedgerID)
	assert.ErrorIs(t, err, storeErr)
}

func TestCreateBatchLedgerFailureWritesNothing(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	tm.store.EXPECT().GetBatchByLedgerID(gomock.Any(), gomock.Any()).Return(nil, nil)
	tm.coord.EXPECT().Submit(gomock.Any(), ledger.KindCreateBatch, gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrLedgerTimeout)

	// No InsertBatch expectation: a failed ledger write leaves no metadata row.
	_, err := tm.reconciler.CreateBatch(context.Background(), validBatchSpec())
	assert.ErrorIs(t, err, domain.ErrLedgerTimeout)
}

func validProductSpec() domain.ProductSpec {
	return domain.ProductSpec{
		SerialNumber: "SN-0001",
		Name:         "Widget",
		BatchLocalID: "batch-local-1",
	}
}

func storedBatch() *schema.Batch {
	return &schema.Batch{
		LocalID:    "batch-local-1",
		LedgerID:   42,
		Status:     domain.BatchStatusActive,
		ProductIDs: datatypes.JSON([]byte("[]")),
	}
}

func TestCreateProduct(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	spec := validProductSpec()
	confirmedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	tm.store.EXPECT().GetBatchByLocalID(gomock.Any(), spec.BatchLocalID).Return(storedBatch(), nil)
	tm.store.EXPECT().GetProductBySerial(gomock.Any(), spec.SerialNumber).Return(nil, nil)
	tm.ledger.EXPECT().
		SubmitRegisterProduct(gomock.Any(), uint64(0), spec.SerialNumber, uint64(42)).
		Return(common.HexToHash("0xp1"), nil)
	tm.coord.EXPECT().
		Submit(gomock.Any(), ledger.KindRegisterProduct, spec.SerialNumber, gomock.Any()).
		DoAndReturn(confirmedSubmit("0xp1", confirmedAt))

	var inserted *schema.Product
	tm.store.EXPECT().InsertProduct(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, product *schema.Product) error {
			inserted = product
			return nil
		})
	tm.store.EXPECT().AppendBatchProductID(gomock.Any(), "batch-local-1", gomock.Any()).
		DoAndReturn(func(ctx context.Context, batchLocalID, productLocalID string) error {
			assert.Equal(t, inserted.LocalID, productLocalID)
			return nil
		})
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *domain.ProvenanceEvent) error {
			assert.Equal(t, domain.EventTypeProductRegistered, event.Type)
			assert.Equal(t, spec.SerialNumber, event.Serial)
			return nil
		})

	product, err := tm.reconciler.CreateProduct(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, inserted, product)
	assert.Equal(t, spec.SerialNumber, product.SerialNumber)
	assert.Equal(t, uint64(42), product.LedgerBatchID)
	assert.Equal(t, "0xp1", product.LedgerTxHash)
	assert.True(t, product.IsActive)
}

func TestCreateProductUnknownBatch(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	tm.store.EXPECT().GetBatchByLocalID(gomock.Any(), "batch-local-1").Return(nil, nil)

	_, err := tm.reconciler.CreateProduct(context.Background(), validProductSpec())
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}

func TestCreateProductReplayRelinksExisting(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	spec := validProductSpec()
	existing := &schema.Product{
		LocalID:       "product-local-1",
		SerialNumber:  spec.SerialNumber,
		BatchLocalID:  "batch-local-1",
		LedgerBatchID: 42,
		LedgerTxHash:  "0xp1",
	}

	tm.store.EXPECT().GetBatchByLocalID(gomock.Any(), spec.BatchLocalID).Return(storedBatch(), nil)
	tm.store.EXPECT().GetProductBySerial(gomock.Any(), spec.SerialNumber).Return(existing, nil)

	// A replay after a lost link redoes only the linkage, never the ledger write.
	tm.store.EXPECT().AppendBatchProductID(gomock.Any(), "batch-local-1", "product-local-1").Return(nil)

	product, err := tm.reconciler.CreateProduct(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, existing, product)
}

func TestCreateProductLinkFailureIsMetadataWriteLost(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	spec := validProductSpec()
	confirmedAt := time.Now().UTC()

	tm.store.EXPECT().GetBatchByLocalID(gomock.Any(), spec.BatchLocalID).Return(storedBatch(), nil)
	tm.store.EXPECT().GetProductBySerial(gomock.Any(), spec.SerialNumber).Return(nil, nil)
	tm.ledger.EXPECT().SubmitRegisterProduct(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(common.HexToHash("0xp2"), nil)
	tm.coord.EXPECT().Submit(gomock.Any(), ledger.KindRegisterProduct, spec.SerialNumber, gomock.Any()).
		DoAndReturn(confirmedSubmit("0xp2", confirmedAt))
	tm.store.EXPECT().InsertProduct(gomock.Any(), gomock.Any()).Return(nil)
	tm.store.EXPECT().AppendBatchProductID(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))

	_, err := tm.reconciler.CreateProduct(context.Background(), spec)
	require.Error(t, err)

	lost, ok := domain.AsMetadataWriteLost(err)
	require.True(t, ok)
	assert.Equal(t, uint64(42), lost.Ref.LedgerID)
	assert.Equal(t, "0xp2", lost.Ref.TxHash)
}

func TestCreateProductDuplicateSerial(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	spec := validProductSpec()
	confirmedAt := time.Now().UTC()

	tm.store.EXPECT().GetBatchByLocalID(gomock.Any(), spec.BatchLocalID).Return(storedBatch(), nil)
	tm.store.EXPECT().GetProductBySerial(gomock.Any(), spec.SerialNumber).Return(nil, nil)
	tm.ledger.EXPECT().SubmitRegisterProduct(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(common.HexToHash("0xp3"), nil)
	tm.coord.EXPECT().Submit(gomock.Any(), ledger.KindRegisterProduct, spec.SerialNumber, gomock.Any()).
		DoAndReturn(confirmedSubmit("0xp3", confirmedAt))
	tm.store.EXPECT().InsertProduct(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicateSerial)

	_, err := tm.reconciler.CreateProduct(context.Background(), spec)
	assert.ErrorIs(t, err, domain.ErrDuplicateSerial)
}

func TestScanBatch(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	spec := domain.ScanSpec{LedgerID: 42, Location: "Warehouse B", Status: "in_transit"}
	confirmedAt := time.Date(2026, 3, 3, 15, 30, 0, 0, time.UTC)

	tm.ledger.EXPECT().
		SubmitScan(gomock.Any(), uint64(0), uint64(42), spec.Location, spec.Status).
		Return(common.HexToHash("0xs1"), nil)
	tm.coord.EXPECT().
		Submit(gomock.Any(), ledger.KindScan, gomock.Any(), gomock.Any()).
		DoAndReturn(confirmedSubmit("0xs1", confirmedAt))
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *domain.ProvenanceEvent) error {
			assert.Equal(t, domain.EventTypeBatchScanned, event.Type)
			assert.Equal(t, uint64(42), event.LedgerID)
			return nil
		})

	result, err := tm.reconciler.ScanBatch(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), result.LedgerID)
	assert.Equal(t, "0xs1", result.TxHash)
	assert.Equal(t, "2026-03-03T15:30:00Z", result.ConfirmedAt)
}

func TestScanBatchEachCallIsDistinct(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	spec := domain.ScanSpec{LedgerID: 42, Location: "Port", Status: "delivered"}
	confirmedAt := time.Now().UTC()

	tokens := make(map[string]bool)
	tm.ledger.EXPECT().SubmitScan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(common.HexToHash("0xs2"), nil).Times(2)
	tm.coord.EXPECT().Submit(gomock.Any(), ledger.KindScan, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, kind ledger.Kind, token string, submit ledger.SubmitFunc) (*ledger.Receipt, error) {
			tokens[token] = true
			if _, err := submit(ctx, 0); err != nil {
				return nil, err
			}
			return &ledger.Receipt{TxHash: "0xs2", ConfirmedAt: confirmedAt}, nil
		}).Times(2)
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	_, err := tm.reconciler.ScanBatch(context.Background(), spec)
	require.NoError(t, err)
	_, err = tm.reconciler.ScanBatch(context.Background(), spec)
	require.NoError(t, err)

	// Identical payloads are still distinct append events, never deduplicated.
	assert.Len(t, tokens, 2)
}

func TestScanBatchInvalidSpec(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	_, err := tm.reconciler.ScanBatch(context.Background(), domain.ScanSpec{LedgerID: 0, Location: "A", Status: "ok"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVerifyProduct(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	stored := &schema.Product{LocalID: "p1", SerialNumber: "SN-1", VerificationCount: 3}
	tm.store.EXPECT().GetProductBySerial(gomock.Any(), "SN-1").Return(stored, nil)
	tm.store.EXPECT().IncrementVerificationCount(gomock.Any(), "SN-1").Return(nil)

	product, err := tm.reconciler.VerifyProduct(context.Background(), "SN-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), product.VerificationCount)
}

func TestVerifyProductUnknownSerial(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	tm.store.EXPECT().GetProductBySerial(gomock.Any(), "SN-missing").Return(nil, nil)

	product, err := tm.reconciler.VerifyProduct(context.Background(), "SN-missing")
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestVerifyProductCountFailureIsNonFatal(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	stored := &schema.Product{LocalID: "p1", SerialNumber: "SN-1", VerificationCount: 3}
	tm.store.EXPECT().GetProductBySerial(gomock.Any(), "SN-1").Return(stored, nil)
	tm.store.EXPECT().IncrementVerificationCount(gomock.Any(), "SN-1").Return(errors.New("connection reset"))

	product, err := tm.reconciler.VerifyProduct(context.Background(), "SN-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), product.VerificationCount)
}

func TestUpdateBatchStatus(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	tm.store.EXPECT().GetBatchByLedgerID(gomock.Any(), uint64(42)).Return(storedBatch(), nil)
	tm.store.EXPECT().UpdateBatchStatus(gomock.Any(), "batch-local-1", domain.BatchStatusRecalled).Return(nil)

	batch, err := tm.reconciler.UpdateBatchStatus(context.Background(), 42, domain.BatchStatusRecalled)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchStatusRecalled, batch.Status)
	assert.Equal(t, "batch-local-1", batch.LocalID)
}

func TestUpdateBatchStatusUnknownStatus(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	// No store interaction: the status is rejected before any lookup.
	_, err := tm.reconciler.UpdateBatchStatus(context.Background(), 42, domain.BatchStatus("destroyed"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateBatchStatusUnknownBatch(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	tm.store.EXPECT().GetBatchByLedgerID(gomock.Any(), uint64(7)).Return(nil, nil)

	_, err := tm.reconciler.UpdateBatchStatus(context.Background(), 7, domain.BatchStatusClosed)
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}

// TestBatchLifecycleCreateScanHistory drives one reconciler through the full
// create, scan, read-back flow against an in-test ledger state: the history
// read immediately after creation sees the batch, and after one scan it holds
// exactly that scan in append order.
func TestBatchLifecycleCreateScanHistory(t *testing.T) {
	tm := setupTestReconciler(t)
	defer tm.tearDown()

	spec := validBatchSpec()
	actor := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	scannedAt := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	// In-test ledger state mutated by the submit calls and served by the queries.
	var (
		anchored uint64
		history  []ledger.ScanRecord
	)

	tm.store.EXPECT().GetBatchByLedgerID(gomock.Any(), gomock.Any()).Return(nil, nil)
	tm.ledger.EXPECT().
		SubmitCreateBatch(gomock.Any(), gomock.Any(), gomock.Any(), spec.BatchNumber, spec.InitialLocation).
		DoAndReturn(func(ctx context.Context, nonce, id uint64, name, loc string) (common.Hash, error) {
			anchored = id
			return common.HexToHash("0xc1"), nil
		})
	tm.ledger.EXPECT().
		SubmitScan(gomock.Any(), gomock.Any(), gomock.Any(), "Warehouse-A", "shipped").
		DoAndReturn(func(ctx context.Context, nonce, id uint64, location, status string) (common.Hash, error) {
			require.Equal(t, anchored, id)
			history = append(history, ledger.ScanRecord{
				Timestamp: big.NewInt(scannedAt.Unix()),
				Location:  location,
				Status:    status,
				Actor:     actor,
			})
			return common.HexToHash("0xc2"), nil
		})
	tm.coord.EXPECT().Submit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(confirmedSubmit("0xc1", time.Now().UTC())).Times(2)
	tm.ledger.EXPECT().QueryBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uint64) (*domain.LedgerBatch, error) {
			return &domain.LedgerBatch{ID: id, Name: spec.BatchNumber, IsInitialized: id == anchored}, nil
		}).Times(2)
	tm.ledger.EXPECT().QueryHistory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, id uint64) ([]ledger.ScanRecord, error) {
			return history, nil
		}).Times(2)
	tm.store.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Return(nil)
	tm.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	batch, err := tm.reconciler.CreateBatch(context.Background(), spec)
	require.NoError(t, err)

	// Creation is immediately visible to readers.
	events, err := tm.reconciler.GetHistory(context.Background(), batch.LedgerID)
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = tm.reconciler.ScanBatch(context.Background(), domain.ScanSpec{
		LedgerID: batch.LedgerID,
		Location: "Warehouse-A",
		Status:   "shipped",
	})
	require.NoError(t, err)

	events, err = tm.reconciler.GetHistory(context.Background(), batch.LedgerID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Warehouse-A", events[0].Location)
	assert.Equal(t, "shipped", events[0].Status)
	assert.Equal(t, scannedAt, events[0].Timestamp)
	assert.Equal(t, actor.Hex(), events[0].Actor)
}
