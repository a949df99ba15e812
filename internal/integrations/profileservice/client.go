package profileservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса профилей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента. Пустой baseURL допустим: все запросы вернут ErrProfileNotFound
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetProfile получает профиль пользователя
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: profile service is not configured", ErrProfileNotFound)
	}

	endpoint := fmt.Sprintf("%s/internal/profiles/%s", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrProfileNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &profile, nil
}

// ResolveContact возвращает контактные данные для уведомления
func (c *Client) ResolveContact(ctx context.Context, userID string) (*domain.Contact, error) {
	profile, err := c.GetProfile(ctx, userID)
	if err != nil {
		c.log.Warn("ResolveContact: profile for user=%s unavailable: %v", userID, err)
		return nil, err
	}

	c.log.Info("ResolveContact: profile for user=%s fetched", userID)
	return &domain.Contact{
		Name:  profile.Name,
		Phone: profile.Phone,
		Email: profile.Email,
	}, nil
}
