package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for malformed request fields, before any ledger interaction
	ErrInvalidInput = errors.New("invalid input")

	// ErrLedgerRejected is returned when the ledger refused the transaction (e.g. duplicate batch id).
	// Terminal: the input is invalid and retrying would waste the reserved nonce.
	ErrLedgerRejected = errors.New("ledger rejected transaction")

	// ErrLedgerTimeout is returned when no confirmation arrived within the bounded wait.
	// The transaction may still have landed; callers re-check status before deciding.
	ErrLedgerTimeout = errors.New("ledger confirmation timeout")

	// ErrLedgerUnavailable is returned on transport failure talking to the ledger. Retryable.
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	// ErrBatchNotFound is returned when a read references a batch the ledger reports as uninitialized
	ErrBatchNotFound = errors.New("batch not found on ledger")

	// ErrDuplicateSerial is returned when a product serial number is already registered
	ErrDuplicateSerial = errors.New("serial number already registered")
)

// MetadataWriteLostError reports a two-phase write that confirmed on the ledger but failed
// on the metadata store. It carries the confirmed ledger reference so the caller can retry
// the metadata step alone; the ledger step must not be resubmitted.
type MetadataWriteLostError struct {
	Ref LedgerRef
	Err error
}

func (e *MetadataWriteLostError) Error() string {
	return fmt.Sprintf("metadata write lost for ledger id %d (tx %s): %v", e.Ref.LedgerID, e.Ref.TxHash, e.Err)
}

func (e *MetadataWriteLostError) Unwrap() error {
	return e.Err
}

// AsMetadataWriteLost extracts a MetadataWriteLostError from an error chain
func AsMetadataWriteLost(err error) (*MetadataWriteLostError, bool) {
	var lost *MetadataWriteLostError
	if errors.As(err, &lost) {
		return lost, true
	}
	return nil, false
}
