package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"

	"telefile/paydrop/internal/app/correlation"
	"telefile/paydrop/internal/app/fulfillment"
)

// ReplayOrder is the operational escape hatch for failed deliveries. It is
// mounted under /internal and expected to sit behind the deployment's
// operator auth, not the public surface.
func (h *Handlers) ReplayOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	result, err := h.replayer.Replay(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, correlation.ErrNotFound):
			http.Error(w, "unknown order", http.StatusNotFound)
		case errors.Is(err, fulfillment.ErrNotReplayable):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			log.Println("Error replaying order:", err)
			http.Error(w, "replay failed", http.StatusBadGateway)
		}
		return
	}

	data, err := sonic.Marshal(result)
	if err != nil {
		log.Println("Error encoding response:", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
