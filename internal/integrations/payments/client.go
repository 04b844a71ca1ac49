package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платёжного провайдера
// Покупка кредитов финализируется только после успешного Charge:
// отклонённый платёж не оставляет следов в леджере
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр платёжного клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Charge проводит платёж у провайдера
// Возвращает ErrChargeDeclined при отказе провайдера (4xx со стороны платёжной системы)
func (c *Client) Charge(ctx context.Context, chargeReq ChargeRequest) (*Charge, error) {
	url := fmt.Sprintf("%s/internal/charges", c.baseURL)

	body, err := json.Marshal(chargeReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusPaymentRequired, http.StatusUnprocessableEntity:
		var provErr ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&provErr); err == nil {
			c.log.Warn("Charge declined for payer=%s: code=%s message=%s",
				chargeReq.PayerRef, provErr.Code, provErr.Message)
		}
		return nil, ErrChargeDeclined
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var charge Charge
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Charge succeeded for payer=%s: charge_id=%s", chargeReq.PayerRef, charge.ID)
	return &charge, nil
}
