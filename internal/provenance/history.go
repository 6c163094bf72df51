package provenance

import (
	"context"
	"fmt"

	"github.com/verifyx/provenance-api/internal/domain"
)

// GetHistory reconstructs the ordered audit trail of a batch. The existence
// check runs first: querying history for an uninitialized batch reverts on the
// ledger side, and an undefined history must never be reported as an empty one.
// The returned order is the ledger's append order and is never re-sorted.
func (r *Reconciler) GetHistory(ctx context.Context, ledgerID uint64) ([]domain.ScanEvent, error) {
	batch, err := r.ledger.QueryBatch(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if !batch.IsInitialized {
		return nil, fmt.Errorf("%w: %d", domain.ErrBatchNotFound, ledgerID)
	}

	records, err := r.ledger.QueryHistory(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	events := make([]domain.ScanEvent, 0, len(records))
	for _, record := range records {
		events = append(events, domain.ScanEvent{
			Timestamp: r.clock.Unix(record.Timestamp.Int64(), 0).UTC(),
			Location:  record.Location,
			Status:    record.Status,
			Actor:     record.Actor.Hex(),
		})
	}

	return events, nil
}
