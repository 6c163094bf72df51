package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/verifyx/provenance-api/internal/domain"
)

// Batch represents the batches table - the denormalized metadata view of an
// anchored ledger batch. A row exists only after the ledger transaction confirmed;
// LedgerID is the join key to the ledger-side record.
type Batch struct {
	// LocalID is the metadata-store document identifier
	LocalID string `gorm:"column:local_id;primaryKey;type:uuid"`
	// BatchNumber is the brand-assigned batch label (e.g. "Lot-001")
	BatchNumber string `gorm:"column:batch_number;not null;type:text;index:idx_batches_brand_number,priority:2"`
	// ProductName is the human-readable product name for this batch
	ProductName string `gorm:"column:product_name;not null;type:text"`
	// BrandID identifies the owning brand
	BrandID string `gorm:"column:brand_id;not null;type:text;index:idx_batches_brand_number,priority:1"`
	// Quantity is the declared number of units in the batch
	Quantity uint64 `gorm:"column:quantity;not null"`
	// Status is the mutable lifecycle state (active, recalled, closed)
	Status domain.BatchStatus `gorm:"column:status;not null;type:text;default:active"`
	// ProductIDs is the ordered list of product local ids linked to this batch,
	// appended with a jsonb set-union so retries are no-ops
	ProductIDs datatypes.JSON `gorm:"column:product_ids;not null;type:jsonb;default:'[]'"`
	// LedgerID is the ledger-side batch identifier and the cross-store join key
	LedgerID uint64 `gorm:"column:ledger_id;not null;uniqueIndex"`
	// LedgerTxHash is the transaction that anchored the batch
	LedgerTxHash string `gorm:"column:ledger_tx_hash;not null;type:text"`
	// LedgerAnchoredAt is the confirmation time of the anchoring transaction
	LedgerAnchoredAt time.Time `gorm:"column:ledger_anchored_at;not null;type:timestamptz"`
	// CreatedAt is the timestamp when this record was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Batch model
func (Batch) TableName() string {
	return "batches"
}
