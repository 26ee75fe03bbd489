package models

import "time"

// Amounts are always in the smallest currency unit (paise for INR).
type Order struct {
	OrderID     string `json:"order_id"`
	RecipientID string `json:"recipient_id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusDelivering Status = "delivering"
	StatusFulfilled  Status = "fulfilled"
	StatusFailed     Status = "failed"
)

// CorrelationEntry maps a gateway order id to the recipient that paid for it.
// It is the only record that survives between order creation and the
// asynchronous payment webhook.
type CorrelationEntry struct {
	OrderID     string    `json:"orderId"`
	RecipientID string    `json:"recipientId"`
	Status      Status    `json:"status"`
	PaymentID   string    `json:"paymentId,omitempty"`
	LastError   string    `json:"lastError,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
