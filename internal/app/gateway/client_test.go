package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateOrder(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody createOrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &gotBody))

		w.Write([]byte(`{"id":"order_abc","amount":100,"currency":"INR","status":"created"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "key_id", "key_secret", "INR", time.Second)

	order, err := client.CreateOrder(context.Background(), "tg-12345", 100, "rcpt_1")
	require.NoError(t, err)

	assert.Equal(t, "/v1/orders", gotPath)
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("key_id:key_secret"))
	assert.Equal(t, wantAuth, gotAuth)

	assert.Equal(t, int64(100), gotBody.Amount)
	assert.Equal(t, "INR", gotBody.Currency)
	assert.Equal(t, "rcpt_1", gotBody.Receipt)
	assert.Equal(t, "tg-12345", gotBody.Notes[RecipientNoteKey])

	assert.Equal(t, "order_abc", order.OrderID)
	assert.Equal(t, "tg-12345", order.RecipientID)
	assert.Equal(t, int64(100), order.Amount)
	assert.Equal(t, "INR", order.Currency)
}

func TestClient_CreateOrder_GatewayDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "key_id", "key_secret", "INR", time.Second)

	_, err := client.CreateOrder(context.Background(), "tg-12345", 100, "rcpt_1")
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestClient_CreateOrder_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>error</html>`},
		{name: "missing id", body: `{"amount":100,"currency":"INR"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			client := NewClient(srv.URL, "key_id", "key_secret", "INR", time.Second)

			_, err := client.CreateOrder(context.Background(), "tg-12345", 100, "rcpt_1")
			assert.ErrorIs(t, err, ErrBadResponse)
		})
	}
}

func TestClient_FetchPayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/pay_123", r.URL.Path)
		w.Write([]byte(`{"id":"pay_123","order_id":"order_abc","status":"captured","amount":100,"notes":{"recipient_id":"tg-12345"}}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "key_id", "key_secret", "INR", time.Second)

	event, err := client.FetchPayment(context.Background(), "pay_123")
	require.NoError(t, err)

	assert.Equal(t, "pay_123", event.PaymentID)
	assert.Equal(t, "order_abc", event.OrderID)
	assert.True(t, event.Captured())
	assert.Equal(t, int64(100), event.PaidAmount)
	assert.Equal(t, "tg-12345", event.Notes[RecipientNoteKey])
}

func TestClient_FetchPayment_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "key_id", "key_secret", "INR", 200*time.Millisecond)

	_, err := client.FetchPayment(context.Background(), "pay_123")
	assert.ErrorIs(t, err, ErrRequestFailed)
}
