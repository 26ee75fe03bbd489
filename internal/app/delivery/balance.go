package delivery

import (
	"context"
	"fmt"

	"telefile/paydrop/internal/models"
)

// BalanceSink credits the paid amount to the recipient's stored balance
// instead of sending a file.
type BalanceSink struct {
	balances BalanceStore
}

func NewBalanceSink(balances BalanceStore) *BalanceSink {
	return &BalanceSink{
		balances: balances,
	}
}

func (s *BalanceSink) Deliver(ctx context.Context, delivery *models.Delivery) error {
	if delivery.Amount <= 0 {
		return fmt.Errorf("%w: non-positive amount %d", ErrPayloadUnavailable, delivery.Amount)
	}

	if _, err := s.balances.Credit(ctx, delivery.RecipientID, delivery.Amount); err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}

	return nil
}
