package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultSolapiBaseURL = "https://api.solapi.com"

// AuthHeader builds the Solapi HMAC-SHA256 authorization value: the signature
// covers the ISO timestamp concatenated with a random hex salt.
func AuthHeader(apiKey, apiSecret string, now time.Time) string {
	date := now.UTC().Format(time.RFC3339)
	raw := make([]byte, 16)
	_, _ = rand.Read(raw)
	salt := hex.EncodeToString(raw)

	mac := hmac.New(sha256.New, []byte(apiSecret))
	mac.Write([]byte(date + salt))
	signature := hex.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf("HMAC-SHA256 apiKey=%s, date=%s, salt=%s, signature=%s",
		apiKey, date, salt, signature)
}

// Client sends text messages through Solapi's v4 endpoint.
type Client struct {
	APIKey     string
	APISecret  string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(apiKey, apiSecret string) *Client {
	return &Client{
		APIKey:     apiKey,
		APISecret:  apiSecret,
		BaseURL:    defaultSolapiBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SendError is a rejection from the SMS provider; Detail carries the upstream
// body untouched so the admin UI can surface the provider's reason.
type SendError struct {
	StatusCode int
	Detail     json.RawMessage
}

func (e *SendError) Error() string {
	return fmt.Sprintf("solapi send rejected (status %d): %s", e.StatusCode, string(e.Detail))
}

type sendPayload struct {
	Message struct {
		To   string `json:"to"`
		From string `json:"from"`
		Text string `json:"text"`
	} `json:"message"`
}

func (cl *Client) SendText(ctx context.Context, to, from, text string) (json.RawMessage, error) {
	var payload sendPayload
	payload.Message.To = to
	payload.Message.From = from
	payload.Message.Text = text

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		cl.BaseURL+"/messages/v4/send", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", AuthHeader(cl.APIKey, cl.APISecret, time.Now()))
	req.Header.Set("Content-Type", "application/json")

	resp, err := cl.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("solapi send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("solapi send response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, &SendError{StatusCode: resp.StatusCode, Detail: data}
	}
	return data, nil
}
