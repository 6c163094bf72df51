package schema

import (
	"time"
)

// Product represents the products table. Products live only in the metadata
// store, but a row is durable only once its ledger registration confirmed and
// LedgerBatchID references an initialized ledger batch.
type Product struct {
	// LocalID is the metadata-store document identifier
	LocalID string `gorm:"column:local_id;primaryKey;type:uuid"`
	// SerialNumber is the globally unique unit serial
	SerialNumber string `gorm:"column:serial_number;not null;uniqueIndex;type:text"`
	// Name is the human-readable product name
	Name string `gorm:"column:name;not null;type:text"`
	// BatchLocalID references the parent batch document
	BatchLocalID string `gorm:"column:batch_local_id;not null;type:uuid;index"`
	// LedgerBatchID is the ledger-side id of the parent batch
	LedgerBatchID uint64 `gorm:"column:ledger_batch_id;not null"`
	// LedgerTxHash is the transaction that registered the product
	LedgerTxHash string `gorm:"column:ledger_tx_hash;not null;type:text"`
	// RegisteredAt is the confirmation time of the registration transaction
	RegisteredAt time.Time `gorm:"column:registered_at;not null;type:timestamptz"`
	// IsActive indicates the product has not been deactivated by the brand
	IsActive bool `gorm:"column:is_active;not null;default:true"`
	// IsReported indicates the product was flagged as suspect or counterfeit
	IsReported bool `gorm:"column:is_reported;not null;default:false"`
	// VerificationCount counts consumer verification lookups
	VerificationCount uint64 `gorm:"column:verification_count;not null;default:0"`
	// CreatedAt is the timestamp when this record was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
