// Package delivery holds the terminal fulfillment actions: sending the
// purchased document to a messaging recipient, or crediting the recipient's
// balance. The executor guarantees a sink runs at most once per order, so
// sinks do not deduplicate on their own.
package delivery

import (
	"context"
	"errors"

	"telefile/paydrop/internal/models"
)

var (
	ErrRecipientUnreachable = errors.New("delivery recipient unreachable")
	ErrPayloadUnavailable   = errors.New("deliverable payload unavailable")
)

type Sink interface {
	Deliver(ctx context.Context, delivery *models.Delivery) error
}
