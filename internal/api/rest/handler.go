package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/verifyx/provenance-api/internal/domain"
	"github.com/verifyx/provenance-api/internal/provenance"
	"github.com/verifyx/provenance-api/internal/store/schema"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// CreateBatch anchors a new batch
	// POST /api/v1/batches
	CreateBatch(c *gin.Context)

	// CreateProduct registers a new product into a batch
	// POST /api/v1/products
	CreateProduct(c *gin.Context)

	// ScanBatch appends a scan record to a batch's ledger history
	// POST /api/v1/batches/:id/scans
	ScanBatch(c *gin.Context)

	// GetHistory returns the ordered scan history of a batch
	// GET /api/v1/batches/:id/history
	GetHistory(c *gin.Context)

	// UpdateBatchStatus moves a batch through its metadata lifecycle
	// PATCH /api/v1/batches/:id/status
	UpdateBatchStatus(c *gin.Context)

	// VerifyProduct looks up a product by serial number
	// GET /api/v1/products/:serial
	VerifyProduct(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	service provenance.Service
}

// NewHandler creates a new REST API handler over the provenance service
func NewHandler(service provenance.Service) Handler {
	return &handler{service: service}
}

// batchResponse is the REST rendering of a batch document
type batchResponse struct {
	LocalID          string             `json:"local_id"`
	BatchNumber      string             `json:"batch_number"`
	ProductName      string             `json:"product_name"`
	BrandID          string             `json:"brand_id"`
	Quantity         uint64             `json:"quantity"`
	Status           domain.BatchStatus `json:"status"`
	ProductIDs       datatypes.JSON     `json:"product_ids"`
	LedgerID         string             `json:"ledger_id"`
	LedgerTxHash     string             `json:"ledger_tx_hash"`
	LedgerAnchoredAt string             `json:"ledger_anchored_at"`
}

func toBatchResponse(batch *schema.Batch) batchResponse {
	return batchResponse{
		LocalID:          batch.LocalID,
		BatchNumber:      batch.BatchNumber,
		ProductName:      batch.ProductName,
		BrandID:          batch.BrandID,
		Quantity:         batch.Quantity,
		Status:           batch.Status,
		ProductIDs:       batch.ProductIDs,
		LedgerID:         strconv.FormatUint(batch.LedgerID, 10),
		LedgerTxHash:     batch.LedgerTxHash,
		LedgerAnchoredAt: batch.LedgerAnchoredAt.UTC().Format(time.RFC3339),
	}
}

// productResponse is the REST rendering of a product document
type productResponse struct {
	LocalID           string `json:"local_id"`
	SerialNumber      string `json:"serial_number"`
	Name              string `json:"name"`
	BatchLocalID      string `json:"batch_local_id"`
	LedgerBatchID     string `json:"ledger_batch_id"`
	LedgerTxHash      string `json:"ledger_tx_hash"`
	IsActive          bool   `json:"is_active"`
	IsReported        bool   `json:"is_reported"`
	VerificationCount uint64 `json:"verification_count"`
}

func toProductResponse(product *schema.Product) productResponse {
	return productResponse{
		LocalID:           product.LocalID,
		SerialNumber:      product.SerialNumber,
		Name:              product.Name,
		BatchLocalID:      product.BatchLocalID,
		LedgerBatchID:     strconv.FormatUint(product.LedgerBatchID, 10),
		LedgerTxHash:      product.LedgerTxHash,
		IsActive:          product.IsActive,
		IsReported:        product.IsReported,
		VerificationCount: product.VerificationCount,
	}
}

// CreateBatch anchors a new batch
func (h *handler) CreateBatch(c *gin.Context) {
	var spec domain.BatchSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	batch, err := h.service.CreateBatch(c.Request.Context(), spec)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBatchResponse(batch))
}

// CreateProduct registers a new product into a batch
func (h *handler) CreateProduct(c *gin.Context) {
	var spec domain.ProductSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), spec)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(product))
}

// scanRequest is the scan submission body
type scanRequest struct {
	Location string `json:"location"`
	Status   string `json:"status"`
}

// ScanBatch appends a scan record to a batch's ledger history
func (h *handler) ScanBatch(c *gin.Context) {
	ledgerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid batch id")
		return
	}

	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	result, err := h.service.ScanBatch(c.Request.Context(), domain.ScanSpec{
		LedgerID: ledgerID,
		Location: req.Location,
		Status:   req.Status,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ledger_id":    strconv.FormatUint(result.LedgerID, 10),
		"tx_hash":      result.TxHash,
		"confirmed_at": result.ConfirmedAt,
	})
}

// statusRequest is the batch lifecycle update body
type statusRequest struct {
	Status domain.BatchStatus `json:"status"`
}

// UpdateBatchStatus moves a batch through its metadata lifecycle
func (h *handler) UpdateBatchStatus(c *gin.Context) {
	ledgerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid batch id")
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	batch, err := h.service.UpdateBatchStatus(c.Request.Context(), ledgerID, req.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBatchResponse(batch))
}

// GetHistory returns the ordered scan history of a batch
func (h *handler) GetHistory(c *gin.Context) {
	ledgerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid batch id")
		return
	}

	events, err := h.service.GetHistory(c.Request.Context(), ledgerID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// VerifyProduct looks up a product by serial number
func (h *handler) VerifyProduct(c *gin.Context) {
	serial := c.Param("serial")
	if serial == "" {
		respondBadRequest(c, "serial number is required")
		return
	}

	product, err := h.service.VerifyProduct(c.Request.Context(), serial)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if product == nil {
		respondNotFound(c, "product not found")
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
