package domain

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// BatchStatus represents the lifecycle state of a batch in the metadata store
type BatchStatus string

const (
	// BatchStatusActive is the initial state of an anchored batch
	BatchStatusActive BatchStatus = "active"
	// BatchStatusRecalled marks a batch withdrawn by the brand
	BatchStatusRecalled BatchStatus = "recalled"
	// BatchStatusClosed marks a batch whose distribution has completed
	BatchStatusClosed BatchStatus = "closed"
)

// IsValidBatchStatus checks if a batch status is valid
func IsValidBatchStatus(status BatchStatus) bool {
	return status == BatchStatusActive ||
		status == BatchStatusRecalled ||
		status == BatchStatusClosed
}

// LedgerRef is the anchor of a metadata record to its confirmed ledger transaction.
// LedgerID is the join key between the two stores.
type LedgerRef struct {
	LedgerID   uint64    `json:"ledger_id"`
	TxHash     string    `json:"tx_hash"`
	AnchoredAt time.Time `json:"anchored_at"`
}

// LedgerBatch is the authoritative batch record as stored on the ledger
type LedgerBatch struct {
	ID            uint64
	Name          string
	IsInitialized bool
}

// ScanEvent is one immutable audit entry from a batch's on-ledger history.
// Field order follows the ledger tuple: timestamp, location, status, actor.
type ScanEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	Actor     string    `json:"actor"`
}

// BatchSpec describes a batch creation request
type BatchSpec struct {
	BrandID         string `json:"brand_id"`
	BatchNumber     string `json:"batch_number"`
	ProductName     string `json:"product_name"`
	Quantity        uint64 `json:"quantity"`
	InitialLocation string `json:"initial_location"`
}

// Validate checks the spec before any ledger interaction
func (s BatchSpec) Validate() error {
	if strings.TrimSpace(s.BrandID) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(s.BatchNumber) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(s.ProductName) == "" {
		return ErrInvalidInput
	}
	if s.Quantity == 0 {
		return ErrInvalidInput
	}
	if strings.TrimSpace(s.InitialLocation) == "" {
		return ErrInvalidInput
	}
	return nil
}

// ProductSpec describes a product registration request
type ProductSpec struct {
	SerialNumber string `json:"serial_number"`
	Name         string `json:"name"`
	BatchLocalID string `json:"batch_local_id"`
}

// Validate checks the spec before any ledger interaction
func (s ProductSpec) Validate() error {
	if strings.TrimSpace(s.SerialNumber) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(s.Name) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(s.BatchLocalID) == "" {
		return ErrInvalidInput
	}
	return nil
}

// ScanSpec describes a scan submission for an existing batch
type ScanSpec struct {
	LedgerID uint64 `json:"ledger_id"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// Validate checks the spec before any ledger interaction
func (s ScanSpec) Validate() error {
	if s.LedgerID == 0 {
		return ErrInvalidInput
	}
	if strings.TrimSpace(s.Location) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(s.Status) == "" {
		return ErrInvalidInput
	}
	return nil
}

// ProvenanceEventType identifies the kind of confirmed write published downstream
type ProvenanceEventType string

const (
	EventTypeBatchCreated      ProvenanceEventType = "batch_created"
	EventTypeProductRegistered ProvenanceEventType = "product_registered"
	EventTypeBatchScanned      ProvenanceEventType = "batch_scanned"
)

// ProvenanceEvent is emitted to the message broker after a write is confirmed on both stores
type ProvenanceEvent struct {
	Type       ProvenanceEventType `json:"type"`
	LedgerID   uint64              `json:"ledger_id"`
	TxHash     string              `json:"tx_hash"`
	LocalID    string              `json:"local_id,omitempty"`
	Serial     string              `json:"serial,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// IsValidAddress checks if an actor address is a well-formed Ethereum address
func IsValidAddress(addr string) bool {
	return common.IsHexAddress(addr)
}
