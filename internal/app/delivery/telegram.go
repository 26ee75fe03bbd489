package delivery

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"telefile/paydrop/internal/models"
)

// TelegramSink sends the configured document to the recipient's chat via the
// bot API. The recipient id is the chat id.
type TelegramSink struct {
	apiURL   string
	botToken string
	fileURL  string
	caption  string
	timeout  time.Duration
	client   *fasthttp.Client
}

func NewTelegramSink(apiURL, botToken, fileURL, caption string, timeout time.Duration) *TelegramSink {
	return &TelegramSink{
		apiURL:   apiURL,
		botToken: botToken,
		fileURL:  fileURL,
		caption:  caption,
		timeout:  timeout,
		client:   &fasthttp.Client{},
	}
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

func (s *TelegramSink) Deliver(ctx context.Context, delivery *models.Delivery) error {
	if s.fileURL == "" {
		return fmt.Errorf("%w: no file configured", ErrPayloadUnavailable)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.SetRequestURI(fmt.Sprintf("%s/bot%s/sendDocument", s.apiURL, s.botToken))
	req.Header.SetMethod(http.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")

	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Set("chat_id", delivery.RecipientID)
	args.Set("document", s.fileURL)
	args.Set("caption", s.caption)
	req.SetBody(args.QueryString())

	if err := s.client.DoTimeout(req, resp, s.timeout); err != nil {
		return fmt.Errorf("failed to send document: %w", err)
	}

	var tgResp telegramResponse
	if err := sonic.Unmarshal(resp.Body(), &tgResp); err != nil {
		return fmt.Errorf("failed to decode bot response (status %d): %w", resp.StatusCode(), err)
	}

	if tgResp.OK {
		return nil
	}

	return classifyBotError(tgResp)
}

func classifyBotError(resp telegramResponse) error {
	description := strings.ToLower(resp.Description)

	switch {
	case resp.ErrorCode == http.StatusForbidden,
		strings.Contains(description, "chat not found"),
		strings.Contains(description, "user is deactivated"):
		return fmt.Errorf("%w: %s", ErrRecipientUnreachable, resp.Description)
	case strings.Contains(description, "document"),
		strings.Contains(description, "wrong file"),
		strings.Contains(description, "failed to get http url content"):
		return fmt.Errorf("%w: %s", ErrPayloadUnavailable, resp.Description)
	}

	return fmt.Errorf("bot rejected delivery (code %d): %s", resp.ErrorCode, resp.Description)
}
