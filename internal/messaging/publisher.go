package messaging

import (
	"context"

	"github.com/verifyx/provenance-api/internal/domain"
)

// Publisher defines the interface for publishing confirmed provenance events to
// the message broker. Publishing is best effort: a failed publish never fails or
// rolls back the write it announces.
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a provenance event
	PublishEvent(ctx context.Context, event *domain.ProvenanceEvent) error
	// Close closes the connection
	Close()
}
