// Package orders issues payment orders against the gateway and pins down the
// order to recipient correlation before the caller ever sees the order id.
// The webhook can arrive the moment the buyer pays, so the mapping has to be
// committed inside the create call, never after it.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"telefile/paydrop/internal/app/correlation"
	"telefile/paydrop/internal/models"
)

var (
	ErrMissingRecipient = errors.New("recipient_id is required")
	ErrInvalidAmount    = errors.New("amount must be positive")
)

// OrderCreator is the slice of the gateway client the issuer needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, recipientID string, amount int64, receipt string) (*models.Order, error)
}

type OrderService struct {
	gateway OrderCreator
	store   correlation.Store
}

func NewOrderService(gateway OrderCreator, store correlation.Store) *OrderService {
	return &OrderService{
		gateway: gateway,
		store:   store,
	}
}

func (s *OrderService) Create(ctx context.Context, recipientID string, amount int64) (*models.Order, error) {
	recipientID = strings.TrimSpace(recipientID)
	if recipientID == "" {
		return nil, ErrMissingRecipient
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	receipt := "rcpt_" + uuid.New().String()

	order, err := s.gateway.CreateOrder(ctx, recipientID, amount, receipt)
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, order.OrderID, recipientID); err != nil {
		return nil, fmt.Errorf("failed to persist correlation for order %s: %w", order.OrderID, err)
	}

	return order, nil
}
