package models

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// PaymentEvent is a verified webhook notification. Raw keeps the body bytes
// exactly as received, since signatures are computed over the wire form.
type PaymentEvent struct {
	EventType   string            `json:"event_type"`
	PaymentID   string            `json:"payment_id"`
	OrderID     string            `json:"order_id"`
	PaidAmount  int64             `json:"amount"`
	EventStatus string            `json:"status"`
	Notes       map[string]string `json:"notes,omitempty"`
	Raw         []byte            `json:"-"`
}

// Captured reports whether the provider asserts the payment went through.
func (e *PaymentEvent) Captured() bool {
	switch e.EventStatus {
	case "captured", "success":
		return true
	}
	return false
}

type eventEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`

	// Flat variants put the fields at the top level.
	paymentEntity
	TransactionID string `json:"transaction_id"`
}

type paymentEntity struct {
	ID      string            `json:"id"`
	OrderID string            `json:"order_id"`
	Status  string            `json:"status"`
	Amount  int64             `json:"amount"`
	Notes   map[string]string `json:"notes"`
}

// ParsePaymentEvent decodes a provider event envelope. Both the nested
// envelope form and the flat form are accepted; the transaction id stands in
// for the order id on providers that never issue one.
func ParsePaymentEvent(raw []byte) (*PaymentEvent, error) {
	var env eventEnvelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode payment event: %w", err)
	}

	entity := env.Payload.Payment.Entity
	if entity.ID == "" && entity.OrderID == "" {
		entity = env.paymentEntity
		if entity.OrderID == "" {
			entity.OrderID = env.TransactionID
		}
	}

	if entity.OrderID == "" {
		return nil, fmt.Errorf("payment event carries no order or transaction id")
	}

	return &PaymentEvent{
		EventType:   env.Event,
		PaymentID:   entity.ID,
		OrderID:     entity.OrderID,
		PaidAmount:  entity.Amount,
		EventStatus: entity.Status,
		Notes:       entity.Notes,
		Raw:         raw,
	}, nil
}
