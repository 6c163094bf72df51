package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/verifyx/provenance-api/internal/domain"
	"github.com/verifyx/provenance-api/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance. The gorm connection must
// be opened with TranslateError so unique violations surface as ErrDuplicatedKey.
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// Migrate creates or updates the metadata tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&schema.Batch{}, &schema.Product{}); err != nil {
		return fmt.Errorf("failed to migrate metadata schema: %w", err)
	}
	return nil
}

// InsertBatch writes a new batch document
func (s *pgStore) InsertBatch(ctx context.Context, batch *schema.Batch) error {
	if err := s.db.WithContext(ctx).Create(batch).Error; err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}
	return nil
}

// GetBatchByLocalID retrieves a batch document by its local id
func (s *pgStore) GetBatchByLocalID(ctx context.Context, localID string) (*schema.Batch, error) {
	var batch schema.Batch
	err := s.db.WithContext(ctx).Where("local_id = ?", localID).First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return &batch, nil
}

// GetBatchByLedgerID retrieves a batch document by its ledger join key
func (s *pgStore) GetBatchByLedgerID(ctx context.Context, ledgerID uint64) (*schema.Batch, error) {
	var batch schema.Batch
	err := s.db.WithContext(ctx).Where("ledger_id = ?", ledgerID).First(&batch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get batch by ledger id: %w", err)
	}
	return &batch, nil
}

// UpdateBatchStatus patches the mutable lifecycle state of a batch
func (s *pgStore) UpdateBatchStatus(ctx context.Context, localID string, status domain.BatchStatus) error {
	result := s.db.WithContext(ctx).Model(&schema.Batch{}).
		Where("local_id = ?", localID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": gorm.Expr("now()"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update batch status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AppendBatchProductID appends a product local id to the batch's product list.
// The jsonb_exists guard gives set-union semantics: concurrent registrations
// for the same batch and retried links never produce duplicates.
func (s *pgStore) AppendBatchProductID(ctx context.Context, batchLocalID string, productLocalID string) error {
	result := s.db.WithContext(ctx).Exec(
		`UPDATE batches
		 SET product_ids = CASE
			WHEN jsonb_exists(product_ids, ?) THEN product_ids
			ELSE product_ids || to_jsonb(?::text)
		 END,
		 updated_at = now()
		 WHERE local_id = ?`,
		productLocalID, productLocalID, batchLocalID)
	if result.Error != nil {
		return fmt.Errorf("failed to append product id: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// InsertProduct writes a new product document
func (s *pgStore) InsertProduct(ctx context.Context, product *schema.Product) error {
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateSerial, product.SerialNumber)
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// GetProductBySerial retrieves a product document by serial number
func (s *pgStore) GetProductBySerial(ctx context.Context, serial string) (*schema.Product, error) {
	var product schema.Product
	err := s.db.WithContext(ctx).Where("serial_number = ?", serial).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// IncrementVerificationCount bumps the consumer verification counter for a product
func (s *pgStore) IncrementVerificationCount(ctx context.Context, serial string) error {
	result := s.db.WithContext(ctx).Model(&schema.Product{}).
		Where("serial_number = ?", serial).
		Updates(map[string]interface{}{
			"verification_count": gorm.Expr("verification_count + 1"),
			"updated_at":         gorm.Expr("now()"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to increment verification count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
