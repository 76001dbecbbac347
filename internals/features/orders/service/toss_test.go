package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTossConfirmSuccess(t *testing.T) {
	var gotAuth string
	var gotBody confirmPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payments/confirm", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"paymentKey":"pk_1","status":"DONE"}`))
	}))
	defer srv.Close()

	cl := NewTossClient("sk_test_secret")
	cl.BaseURL = srv.URL

	receipt, err := cl.Confirm(context.Background(), "pk_1", "order-42", 18000)
	require.NoError(t, err)

	// base64("sk_test_secret:")
	assert.Equal(t, "Basic c2tfdGVzdF9zZWNyZXQ6", gotAuth)
	assert.Equal(t, confirmPayload{PaymentKey: "pk_1", OrderID: "order-42", Amount: 18000}, gotBody)
	assert.JSONEq(t, `{"paymentKey":"pk_1","status":"DONE"}`, string(receipt))
}

func TestTossConfirmRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"NOT_FOUND_PAYMENT","message":"존재하지 않는 결제"}`))
	}))
	defer srv.Close()

	cl := NewTossClient("sk")
	cl.BaseURL = srv.URL

	_, err := cl.Confirm(context.Background(), "pk_x", "order-x", 1000)
	require.Error(t, err)

	var rejected *TossConfirmError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusBadRequest, rejected.StatusCode)
	assert.JSONEq(t, `{"code":"NOT_FOUND_PAYMENT","message":"존재하지 않는 결제"}`, string(rejected.Detail))
}

func TestTossConfirmTransportError(t *testing.T) {
	cl := NewTossClient("sk")
	cl.BaseURL = "http://127.0.0.1:1" // nothing listens here

	_, err := cl.Confirm(context.Background(), "pk", "o", 1)
	require.Error(t, err)

	// a transport failure is not a gateway rejection
	var rejected *TossConfirmError
	assert.False(t, errors.As(err, &rejected))
}
