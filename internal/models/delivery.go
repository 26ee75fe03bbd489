package models

type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeReplayed  Outcome = "replayed"
	OutcomeIgnored   Outcome = "ignored"
	OutcomeFailed    Outcome = "failed"
)

// Delivery is the terminal action handed to a sink once an order is claimed.
type Delivery struct {
	OrderID     string `json:"orderId"`
	RecipientID string `json:"recipientId"`
	Amount      int64  `json:"amount"`
}

type DeliveryResult struct {
	Outcome     Outcome `json:"outcome"`
	OrderID     string  `json:"orderId"`
	RecipientID string  `json:"recipientId,omitempty"`
}
