// Package correlation persists the order id to recipient id mapping created
// at order issuance and consumed by webhook fulfillment. It is the only
// mutable state shared between concurrent webhook handlers, so every status
// change goes through an atomic per-key compare-and-set.
package correlation

import (
	"context"
	"errors"
	"time"

	"telefile/paydrop/internal/models"
)

var (
	ErrAlreadyExists = errors.New("correlation entry already exists")
	ErrNotFound      = errors.New("correlation entry not found")
)

type Store interface {
	// Create writes a new pending entry. At most one entry may ever exist
	// per order id.
	Create(ctx context.Context, orderID, recipientID string) error

	Get(ctx context.Context, orderID string) (*models.CorrelationEntry, error)

	// Transition moves the entry status from one state to another only if it
	// currently holds the expected state. Returns false when the entry is
	// absent or in any other state.
	Transition(ctx context.Context, orderID string, from, to models.Status) (bool, error)

	AttachPayment(ctx context.Context, orderID, paymentID string) error

	RecordFailure(ctx context.Context, orderID, reason string) error

	// StaleClaims lists orders stuck in delivering longer than olderThan,
	// left behind by a worker that died mid-delivery.
	StaleClaims(ctx context.Context, olderThan time.Duration) ([]string, error)
}
