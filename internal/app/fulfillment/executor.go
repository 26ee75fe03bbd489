// Package fulfillment turns verified payment events into exactly one delivery
// per order. Payment gateways retry webhooks on timeout, so duplicate and
// concurrent events for the same order are the normal case, not an error;
// everything here funnels through the correlation store's per-key
// compare-and-set to keep a single winner.
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"telefile/paydrop/internal/app/correlation"
	"telefile/paydrop/internal/app/delivery"
	"telefile/paydrop/internal/models"
)

var ErrUnknownOrder = errors.New("no correlation entry for order")

type Executor struct {
	store correlation.Store
	sink  delivery.Sink
}

func NewExecutor(store correlation.Store, sink delivery.Sink) *Executor {
	return &Executor{
		store: store,
		sink:  sink,
	}
}

// Fulfill resolves the recipient for a verified event and invokes the sink at
// most once. Events whose status is not captured are ignored without touching
// the entry, so a later captured event for the same order still goes through.
func (e *Executor) Fulfill(ctx context.Context, event *models.PaymentEvent) (*models.DeliveryResult, error) {
	if !event.Captured() {
		return &models.DeliveryResult{
			Outcome: models.OutcomeIgnored,
			OrderID: event.OrderID,
		}, nil
	}

	entry, err := e.store.Get(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, correlation.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownOrder, event.OrderID)
		}
		return nil, err
	}

	switch entry.Status {
	case models.StatusFulfilled:
		return e.replayedResult(entry), nil
	case models.StatusFailed:
		// Terminal until an operator replays it; the payment already
		// succeeded, so retrying blind could double-deliver.
		return &models.DeliveryResult{
			Outcome:     models.OutcomeFailed,
			OrderID:     entry.OrderID,
			RecipientID: entry.RecipientID,
		}, nil
	}

	claimed, err := e.store.Transition(ctx, event.OrderID, models.StatusPending, models.StatusDelivering)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// Another handler won the claim between our read and the CAS.
		return e.replayedResult(entry), nil
	}

	if event.PaymentID != "" {
		if err := e.store.AttachPayment(ctx, event.OrderID, event.PaymentID); err != nil {
			log.Printf("Error attaching payment %s to order %s: %v\n", event.PaymentID, event.OrderID, err)
		}
	}

	result := &models.DeliveryResult{
		OrderID:     entry.OrderID,
		RecipientID: entry.RecipientID,
	}

	if err := e.sink.Deliver(ctx, &models.Delivery{
		OrderID:     entry.OrderID,
		RecipientID: entry.RecipientID,
		Amount:      event.PaidAmount,
	}); err != nil {
		if recordErr := e.store.RecordFailure(ctx, event.OrderID, err.Error()); recordErr != nil {
			log.Printf("Error recording failure for order %s: %v\n", event.OrderID, recordErr)
		}
		if _, casErr := e.store.Transition(ctx, event.OrderID, models.StatusDelivering, models.StatusFailed); casErr != nil {
			log.Printf("Error marking order %s failed: %v\n", event.OrderID, casErr)
		}

		result.Outcome = models.OutcomeFailed
		return result, err
	}

	if _, err := e.store.Transition(ctx, event.OrderID, models.StatusDelivering, models.StatusFulfilled); err != nil {
		// Delivery happened; a dangling claim is recoverable operationally,
		// a second delivery is not.
		log.Printf("Error marking order %s fulfilled: %v\n", event.OrderID, err)
	}

	result.Outcome = models.OutcomeDelivered
	return result, nil
}

func (e *Executor) replayedResult(entry *models.CorrelationEntry) *models.DeliveryResult {
	return &models.DeliveryResult{
		Outcome:     models.OutcomeReplayed,
		OrderID:     entry.OrderID,
		RecipientID: entry.RecipientID,
	}
}
