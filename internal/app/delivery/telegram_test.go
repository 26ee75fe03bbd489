package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telefile/paydrop/internal/models"
)

func telegramTestServer(t *testing.T, status int, body string, gotForm *map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		if gotForm != nil {
			form := make(map[string]string)
			for key := range r.PostForm {
				form[key] = r.PostForm.Get(key)
			}
			*gotForm = form
		}

		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestTelegramSink_SendsDocument(t *testing.T) {
	var form map[string]string
	srv := telegramTestServer(t, http.StatusOK, `{"ok":true}`, &form)

	sink := NewTelegramSink(srv.URL, "bot-token", "https://files.example.com/guide.pdf", "here you go", time.Second)

	err := sink.Deliver(context.Background(), &models.Delivery{
		OrderID:     "order_abc",
		RecipientID: "tg-12345",
		Amount:      100,
	})
	require.NoError(t, err)

	assert.Equal(t, "tg-12345", form["chat_id"])
	assert.Equal(t, "https://files.example.com/guide.pdf", form["document"])
	assert.Equal(t, "here you go", form["caption"])
}

func TestTelegramSink_BlockedRecipient(t *testing.T) {
	srv := telegramTestServer(t, http.StatusForbidden,
		`{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`, nil)

	sink := NewTelegramSink(srv.URL, "bot-token", "https://files.example.com/guide.pdf", "", time.Second)

	err := sink.Deliver(context.Background(), &models.Delivery{RecipientID: "tg-12345"})
	assert.ErrorIs(t, err, ErrRecipientUnreachable)
}

func TestTelegramSink_ChatNotFound(t *testing.T) {
	srv := telegramTestServer(t, http.StatusBadRequest,
		`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`, nil)

	sink := NewTelegramSink(srv.URL, "bot-token", "https://files.example.com/guide.pdf", "", time.Second)

	err := sink.Deliver(context.Background(), &models.Delivery{RecipientID: "tg-gone"})
	assert.ErrorIs(t, err, ErrRecipientUnreachable)
}

func TestTelegramSink_BadDocument(t *testing.T) {
	srv := telegramTestServer(t, http.StatusBadRequest,
		`{"ok":false,"error_code":400,"description":"Bad Request: failed to get HTTP URL content"}`, nil)

	sink := NewTelegramSink(srv.URL, "bot-token", "https://files.example.com/missing.pdf", "", time.Second)

	err := sink.Deliver(context.Background(), &models.Delivery{RecipientID: "tg-12345"})
	assert.ErrorIs(t, err, ErrPayloadUnavailable)
}

func TestTelegramSink_NoFileConfigured(t *testing.T) {
	sink := NewTelegramSink("http://localhost:0", "bot-token", "", "", time.Second)

	err := sink.Deliver(context.Background(), &models.Delivery{RecipientID: "tg-12345"})
	assert.ErrorIs(t, err, ErrPayloadUnavailable)
}
