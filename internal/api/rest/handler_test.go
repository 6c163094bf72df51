package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/verifyx/provenance-api/internal/api/rest"
	"github.com/verifyx/provenance-api/internal/domain"
	"github.com/verifyx/provenance-api/internal/logger"
	"github.com/verifyx/provenance-api/internal/mocks"
	"github.com/verifyx/provenance-api/internal/provenance"
	"github.com/verifyx/provenance-api/internal/store/schema"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

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

// testAPIMocks contains the mocks and router for testing the REST handlers
type testAPIMocks struct {
	ctrl    *gomock.Controller
	service *mocks.MockProvenanceService
	router  *gin.Engine
}

// setupTestAPI creates the mocked service and a router with all routes
func setupTestAPI(t *testing.T) *testAPIMocks {
	ctrl := gomock.NewController(t)

	tm := &testAPIMocks{
		ctrl:    ctrl,
		service: mocks.NewMockProvenanceService(ctrl),
		router:  gin.New(),
	}

	rest.SetupRoutes(tm.router, rest.NewHandler(tm.service))
	return tm
}

func (tm *testAPIMocks) tearDown() {
	tm.ctrl.Finish()
}

func (tm *testAPIMocks) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	w := tm.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateBatchEndpoint(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	spec := domain.BatchSpec{
		BrandID:         "acme",
		BatchNumber:     "Lot-001",
		ProductName:     "Widget",
		Quantity:        100,
		InitialLocation: "Factory A",
	}
	anchoredAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tm.service.EXPECT().CreateBatch(gomock.Any(), spec).Return(&schema.Batch{
		LocalID:          "local-1",
		BatchNumber:      spec.BatchNumber,
		ProductName:      spec.ProductName,
		BrandID:          spec.BrandID,
		Quantity:         spec.Quantity,
		Status:           domain.BatchStatusActive,
		ProductIDs:       datatypes.JSON([]byte("[]")),
		LedgerID:         42,
		LedgerTxHash:     "0xabc",
		LedgerAnchoredAt: anchoredAt,
	}, nil)

	w := tm.do(http.MethodPost, "/api/v1/batches", spec)
	require.Equal(t, http.StatusCreated, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "local-1", got["local_id"])
	assert.Equal(t, "42", got["ledger_id"])
	assert.Equal(t, "0xabc", got["ledger_tx_hash"])
	assert.Equal(t, "2026-03-01T12:00:00Z", got["ledger_anchored_at"])
	assert.Equal(t, "active", got["status"])
}

func TestCreateBatchEndpointInvalidBody(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batches", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bad_request")
}

func TestCreateBatchEndpointValidationError(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	tm.service.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil, domain.ErrInvalidInput)

	w := tm.do(http.MethodPost, "/api/v1/batches", domain.BatchSpec{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBatchEndpointMetadataWriteLost(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	anchoredAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.service.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil, &domain.MetadataWriteLostError{
		Ref: domain.LedgerRef{LedgerID: 42, TxHash: "0xdead", AnchoredAt: anchoredAt},
		Err: fmt.Errorf("connection reset"),
	})

	w := tm.do(http.MethodPost, "/api/v1/batches", domain.BatchSpec{
		BrandID: "acme", BatchNumber: "Lot-001", ProductName: "Widget", Quantity: 1, InitialLocation: "A",
	})

	// Partial failure carries the confirmed anchor so the caller can retry.
	require.Equal(t, http.StatusBadGateway, w.Code)
	var got struct {
		Error struct {
			Code      string            `json:"code"`
			LedgerRef *domain.LedgerRef `json:"ledger_ref"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "metadata_write_lost", got.Error.Code)
	require.NotNil(t, got.Error.LedgerRef)
	assert.Equal(t, uint64(42), got.Error.LedgerRef.LedgerID)
	assert.Equal(t, "0xdead", got.Error.LedgerRef.TxHash)
}

func TestCreateProductEndpoint(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	spec := domain.ProductSpec{SerialNumber: "SN-1", Name: "Widget", BatchLocalID: "batch-1"}
	tm.service.EXPECT().CreateProduct(gomock.Any(), spec).Return(&schema.Product{
		LocalID:       "product-1",
		SerialNumber:  spec.SerialNumber,
		Name:          spec.Name,
		BatchLocalID:  spec.BatchLocalID,
		LedgerBatchID: 42,
		LedgerTxHash:  "0xp1",
		IsActive:      true,
	}, nil)

	w := tm.do(http.MethodPost, "/api/v1/products", spec)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"serial_number":"SN-1"`)
	assert.Contains(t, w.Body.String(), `"ledger_batch_id":"42"`)
}

func TestCreateProductEndpointDuplicateSerial(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	tm.service.EXPECT().CreateProduct(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: SN-1", domain.ErrDuplicateSerial))

	w := tm.do(http.MethodPost, "/api/v1/products", domain.ProductSpec{
		SerialNumber: "SN-1", Name: "Widget", BatchLocalID: "batch-1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "conflict")
}

func TestScanBatchEndpoint(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	tm.service.EXPECT().
		ScanBatch(gomock.Any(), domain.ScanSpec{LedgerID: 42, Location: "Warehouse B", Status: "in_transit"}).
		Return(&provenance.ScanResult{LedgerID: 42, TxHash: "0xs1", ConfirmedAt: "2026-03-03T15:30:00Z"}, nil)

	w := tm.do(http.MethodPost, "/api/v1/batches/42/scans", map[string]string{
		"location": "Warehouse B",
		"status":   "in_transit",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"tx_hash":"0xs1"`)
}

func TestScanBatchEndpointInvalidID(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	w := tm.do(http.MethodPost, "/api/v1/batches/not-a-number/scans", map[string]string{
		"location": "Warehouse B",
		"status":   "in_transit",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScanBatchEndpointRejected(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	tm.service.EXPECT().ScanBatch(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("%w: unknown batch", domain.ErrLedgerRejected))

	w := tm.do(http.MethodPost, "/api/v1/batches/42/scans", map[string]string{
		"location": "Warehouse B",
		"status":   "in_transit",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ledger_rejected")
}

func TestGetHistoryEndpoint(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	events := []domain.ScanEvent{
		{Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Location: "Factory A", Status: "created", Actor: "0xf39F"},
		{Timestamp: time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC), Location: "Warehouse B", Status: "in_transit", Actor: "0xf39F"},
	}
	tm.service.EXPECT().GetHistory(gomock.Any(), uint64(42)).Return(events, nil)

	w := tm.do(http.MethodGet, "/api/v1/batches/42/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got []domain.ScanEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Factory A", got[0].Location)
	assert.Equal(t, "Warehouse B", got[1].Location)
}

func TestGetHistoryEndpointNotFound(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	tm.service.EXPECT().GetHistory(gomock.Any(), uint64(999)).
		Return(nil, fmt.Errorf("%w: 999", domain.ErrBatchNotFound))

	w := tm.do(http.MethodGet, "/api/v1/batches/999/history", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetHistoryEndpointLedgerUnavailable(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	tm.service.EXPECT().GetHistory(gomock.Any(), uint64(42)).
		Return(nil, fmt.Errorf("%w: connection refused", domain.ErrLedgerUnavailable))

	w := tm.do(http.MethodGet, "/api/v1/batches/42/history", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestUpdateBatchStatusEndpoint(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	updated := &schema.Batch{
		LocalID:          "local-1",
		BatchNumber:      "Lot-001",
		Status:           domain.BatchStatusRecalled,
		ProductIDs:       datatypes.JSON([]byte("[]")),
		LedgerID:         42,
		LedgerTxHash:     "0xabc",
		LedgerAnchoredAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	tm.service.EXPECT().UpdateBatchStatus(gomock.Any(), uint64(42), domain.BatchStatusRecalled).
		Return(updated, nil)

	w := tm.do(http.MethodPatch, "/api/v1/batches/42/status", gin.H{"status": "recalled"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"recalled"`)
	assert.Contains(t, w.Body.String(), `"ledger_id":"42"`)
}

func TestUpdateBatchStatusEndpointUnknownStatus(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	tm.service.EXPECT().UpdateBatchStatus(gomock.Any(), uint64(42), domain.BatchStatus("destroyed")).
		Return(nil, fmt.Errorf("%w: unknown batch status %q", domain.ErrInvalidInput, "destroyed"))

	w := tm.do(http.MethodPatch, "/api/v1/batches/42/status", gin.H{"status": "destroyed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bad_request")
}

func TestUpdateBatchStatusEndpointUnknownBatch(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	tm.service.EXPECT().UpdateBatchStatus(gomock.Any(), uint64(999), domain.BatchStatusClosed).
		Return(nil, fmt.Errorf("%w: 999", domain.ErrBatchNotFound))

	w := tm.do(http.MethodPatch, "/api/v1/batches/999/status", gin.H{"status": "closed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyProductEndpoint(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	tm.service.EXPECT().VerifyProduct(gomock.Any(), "SN-1").Return(&schema.Product{
		LocalID:           "product-1",
		SerialNumber:      "SN-1",
		Name:              "Widget",
		VerificationCount: 4,
		IsActive:          true,
	}, nil)

	w := tm.do(http.MethodGet, "/api/v1/products/SN-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"verification_count":4`)
}

func TestVerifyProductEndpointNotFound(t *testing.T) {
	tm := setupTestAPI(t)
	defer tm.tearDown()

	tm.service.EXPECT().VerifyProduct(gomock.Any(), "SN-missing").Return(nil, nil)

	w := tm.do(http.MethodGet, "/api/v1/products/SN-missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
