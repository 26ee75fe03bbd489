package handlers

import (
	"io"
	"log"
	"net/http"

	"telefile/paydrop/internal/models"
)

const maxWebhookBody = 1 << 20

// PaymentWebhook authenticates the provider notification and queues it for
// fulfillment. The signature check runs before anything looks at the payload;
// an unverified body is attacker-controlled. Failures return bare status
// codes so the response never doubles as a verification oracle.
func (h *Handlers) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	sig := r.Header.Get(h.cfg.Webhook.SignatureHeader)
	if err := h.verifier.Verify(body, sig); err != nil {
		// Tampering or a misconfigured secret; either way worth a trace.
		log.Println("Rejected webhook with invalid signature:", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	event, err := models.ParsePaymentEvent(body)
	if err != nil {
		log.Println("Rejected malformed webhook payload:", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	h.fulfillmentEventsCh <- event

	w.WriteHeader(http.StatusOK)
}
