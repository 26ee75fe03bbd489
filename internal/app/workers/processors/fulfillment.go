package processors

import (
	"context"
	"errors"
	"log"

	"telefile/paydrop/internal/app/fulfillment"
	"telefile/paydrop/internal/models"
)

type FulfillmentProcessor struct {
	executor *fulfillment.Executor
}

func NewFulfillmentProcessor(executor *fulfillment.Executor) *FulfillmentProcessor {
	return &FulfillmentProcessor{
		executor: executor,
	}
}

func (p *FulfillmentProcessor) ProcessEvent(ctx context.Context, event any) error {
	paymentEvent := event.(*models.PaymentEvent)

	result, err := p.executor.Fulfill(ctx, paymentEvent)
	if err != nil {
		if errors.Is(err, fulfillment.ErrUnknownOrder) {
			// Stale or forged reference; logged, never retried.
			log.Printf("Dropping event for unknown order %s\n", paymentEvent.OrderID)
			return nil
		}
		return err
	}

	log.Printf("Fulfillment for order %s: %s\n", result.OrderID, result.Outcome)
	return nil
}
