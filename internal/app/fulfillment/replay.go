package fulfillment

import (
	"context"
	"errors"
	"fmt"

	"telefile/paydrop/internal/models"
)

var ErrNotReplayable = errors.New("order is not replayable")

// PaymentFetcher reads a payment back from the gateway.
type PaymentFetcher interface {
	FetchPayment(ctx context.Context, paymentID string) (*models.PaymentEvent, error)
}

// Replayer is the manual remediation path for failed deliveries. It trusts
// the gateway, not the stored event: the payment is re-fetched and must still
// report captured before the entry is reopened.
type Replayer struct {
	store    storeAPI
	fetcher  PaymentFetcher
	executor *Executor
}

type storeAPI interface {
	Get(ctx context.Context, orderID string) (*models.CorrelationEntry, error)
	Transition(ctx context.Context, orderID string, from, to models.Status) (bool, error)
}

func NewReplayer(store storeAPI, fetcher PaymentFetcher, executor *Executor) *Replayer {
	return &Replayer{
		store:    store,
		fetcher:  fetcher,
		executor: executor,
	}
}

func (r *Replayer) Replay(ctx context.Context, orderID string) (*models.DeliveryResult, error) {
	entry, err := r.store.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if entry.Status != models.StatusFailed {
		return nil, fmt.Errorf("%w: status is %s", ErrNotReplayable, entry.Status)
	}

	if entry.PaymentID == "" {
		return nil, fmt.Errorf("%w: no payment recorded", ErrNotReplayable)
	}

	event, err := r.fetcher.FetchPayment(ctx, entry.PaymentID)
	if err != nil {
		return nil, err
	}

	if !event.Captured() {
		return nil, fmt.Errorf("%w: gateway reports status %s", ErrNotReplayable, event.EventStatus)
	}

	if event.OrderID == "" {
		event.OrderID = orderID
	}

	reopened, err := r.store.Transition(ctx, orderID, models.StatusFailed, models.StatusPending)
	if err != nil {
		return nil, err
	}
	if !reopened {
		return nil, fmt.Errorf("%w: concurrent status change", ErrNotReplayable)
	}

	return r.executor.Fulfill(ctx, event)
}
