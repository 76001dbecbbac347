package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTossBaseURL = "https://api.tosspayments.com"

// TossClient confirms payments against the Toss Payments API. Confirm is the
// only call this system makes; refunds and lookups stay with the dashboard.
type TossClient struct {
	SecretKey  string
	BaseURL    string
	HTTPClient *http.Client
}

func NewTossClient(secretKey string) *TossClient {
	return &TossClient{
		SecretKey:  secretKey,
		BaseURL:    defaultTossBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// TossConfirmError is a rejection from the gateway itself, as opposed to a
// transport failure. Detail carries the upstream body untouched.
type TossConfirmError struct {
	StatusCode int
	Detail     json.RawMessage
}

func (e *TossConfirmError) Error() string {
	return fmt.Sprintf("toss confirm rejected (status %d): %s", e.StatusCode, string(e.Detail))
}

type confirmPayload struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int    `json:"amount"`
}

// Confirm finalizes a payment and returns the receipt payload. The caller is
// expected to mark local order rows PAID only after a nil error.
func (t *TossClient) Confirm(ctx context.Context, paymentKey, orderID string, amount int) (json.RawMessage, error) {
	body, err := json.Marshal(confirmPayload{
		PaymentKey: paymentKey,
		OrderID:    orderID,
		Amount:     amount,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		t.BaseURL+"/v1/payments/confirm", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	// Toss uses Basic auth with the secret key as username and empty password
	req.Header.Set("Authorization",
		"Basic "+base64.StdEncoding.EncodeToString([]byte(t.SecretKey+":")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("toss confirm request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("toss confirm response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, &TossConfirmError{StatusCode: resp.StatusCode, Detail: data}
	}
	return data, nil
}
