package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

// WebhookURLs адреса webhook по видам событий. Пустой адрес отключает вид
type WebhookURLs struct {
	Created   string
	Edited    string
	Cancelled string
}

func (u WebhookURLs) forKind(kind domain.EventKind) string {
	switch kind {
	case domain.EventCreated:
		return u.Created
	case domain.EventEdited:
		return u.Edited
	case domain.EventCancelled:
		return u.Cancelled
	default:
		return ""
	}
}

// WebhookDriver отправляет payload POST-запросом в сценарий n8n (напоминания в WhatsApp)
type WebhookDriver struct {
	urls       WebhookURLs
	httpClient *http.Client
}

func NewWebhookDriver(urls WebhookURLs, timeout time.Duration) *WebhookDriver {
	return &WebhookDriver{
		urls: urls,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (w *WebhookDriver) Name() string {
	return "webhook"
}

// Send пропускает события без имени или телефона: получателю некуда отправлять сообщение
func (w *WebhookDriver) Send(ctx context.Context, n Notification) error {
	if err := optedOut(n); err != nil {
		return err
	}
	url := w.urls.forKind(n.Event.Kind)
	if url == "" {
		return fmt.Errorf("%w: no webhook configured for %s", ErrSkipped, n.Event.Kind)
	}
	if strings.TrimSpace(n.Payload.Phone) == "" || strings.TrimSpace(n.Payload.Name) == "" {
		return fmt.Errorf("%w: user %s has no name or phone", ErrSkipped, n.Event.Reservation.UserID)
	}

	body, err := json.Marshal(n.Payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrDelivery, resp.StatusCode, string(msg))
	}

	return nil
}
