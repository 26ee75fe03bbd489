// Package gateway is the outbound client for the payment provider. Only two
// calls matter to us: creating an order with the recipient id tucked into the
// notes, and fetching a payment back when an operator replays a failed order.
package gateway

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"telefile/paydrop/internal/models"
)

var (
	ErrRequestFailed = errors.New("gateway request failed")
	ErrBadResponse   = errors.New("gateway returned a malformed response")
)

// RecipientNoteKey is the canonical note field carrying the recipient id.
// Legacy deployments used telegram_chat_id, telegram_user_id or customer_id
// interchangeably; the correlation store is authoritative and the note is
// informational only.
const RecipientNoteKey = "recipient_id"

type Client struct {
	baseURL  string
	auth     string
	timeout  time.Duration
	currency string
	client   *fasthttp.Client
}

func NewClient(baseURL, keyID, keySecret, currency string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		auth:     "Basic " + base64.StdEncoding.EncodeToString([]byte(keyID+":"+keySecret)),
		timeout:  timeout,
		currency: currency,
		client:   &fasthttp.Client{},
	}
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// CreateOrder registers a payment order with the provider and returns the
// provider-assigned order id.
func (c *Client) CreateOrder(ctx context.Context, recipientID string, amount int64, receipt string) (*models.Order, error) {
	payload, err := sonic.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: c.currency,
		Receipt:  receipt,
		Notes:    map[string]string{RecipientNoteKey: recipientID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	body, err := c.do(http.MethodPost, c.baseURL+"/v1/orders", payload)
	if err != nil {
		return nil, err
	}

	var resp orderResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if resp.ID == "" {
		return nil, fmt.Errorf("%w: order id missing", ErrBadResponse)
	}

	return &models.Order{
		OrderID:     resp.ID,
		RecipientID: recipientID,
		Amount:      resp.Amount,
		Currency:    resp.Currency,
	}, nil
}

type paymentResponse struct {
	ID      string            `json:"id"`
	OrderID string            `json:"order_id"`
	Status  string            `json:"status"`
	Amount  int64             `json:"amount"`
	Notes   map[string]string `json:"notes"`
}

// FetchPayment reads a payment back from the provider. Used by manual replay
// to confirm the capture really happened before re-running fulfillment.
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*models.PaymentEvent, error) {
	body, err := c.do(http.MethodGet, c.baseURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}

	var resp paymentResponse
	if err := sonic.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	if resp.ID == "" {
		return nil, fmt.Errorf("%w: payment id missing", ErrBadResponse)
	}

	return &models.PaymentEvent{
		PaymentID:   resp.ID,
		OrderID:     resp.OrderID,
		EventStatus: resp.Status,
		PaidAmount:  resp.Amount,
		Notes:       resp.Notes,
		Raw:         body,
	}, nil
}

func (c *Client) do(method, url string, payload []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", c.auth)
	if payload != nil {
		req.SetBody(payload)
	}

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	statusCode := resp.StatusCode()
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status code %d", ErrRequestFailed, statusCode)
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())

	return body, nil
}
