package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/bytedance/sonic"

	"telefile/paydrop/internal/app/gateway"
	"telefile/paydrop/internal/app/orders"
)

type createOrderRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Amount      int64  `json:"amount" validate:"omitempty,gt=0"`
}

type createOrderResponse struct {
	OrderID             string `json:"order_id"`
	Amount              int64  `json:"amount"`
	Currency            string `json:"currency"`
	ProviderCheckoutKey string `json:"provider_checkout_key"`
}

func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "recipient_id is required and amount must be positive", http.StatusBadRequest)
		return
	}

	if req.Amount == 0 {
		req.Amount = h.cfg.Gateway.DefaultAmount
	}

	order, err := h.orderService.Create(r.Context(), req.RecipientID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrMissingRecipient), errors.Is(err, orders.ErrInvalidAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, gateway.ErrRequestFailed), errors.Is(err, gateway.ErrBadResponse):
			log.Println("Error creating gateway order:", err)
			http.Error(w, "failed to create order", http.StatusBadGateway)
		default:
			log.Println("Error creating order:", err)
			http.Error(w, "failed to create order", http.StatusInternalServerError)
		}
		return
	}

	data, err := sonic.Marshal(createOrderResponse{
		OrderID:             order.OrderID,
		Amount:              order.Amount,
		Currency:            order.Currency,
		ProviderCheckoutKey: h.cfg.Gateway.KeyID,
	})
	if err != nil {
		log.Println("Error encoding response:", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
