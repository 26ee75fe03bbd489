package handlers

import (
	"log"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
)

type balanceResponse struct {
	RecipientID string `json:"recipient_id"`
	Balance     int64  `json:"balance"`
}

func (h *Handlers) GetBalance(w http.ResponseWriter, r *http.Request) {
	recipientID := chi.URLParam(r, "recipientID")

	balance, err := h.balances.Balance(r.Context(), recipientID)
	if err != nil {
		log.Println("Error getting balance:", err)
		http.Error(w, "failed to get balance", http.StatusInternalServerError)
		return
	}

	data, err := sonic.Marshal(balanceResponse{
		RecipientID: recipientID,
		Balance:     balance,
	})
	if err != nil {
		log.Println("Error encoding response:", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
