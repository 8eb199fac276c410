package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MpesaClient initiates mobile-money charges through the Daraja-style API.
// Only the narrow initiate contract is modeled here; STK push callback
// details arrive through the payment webhook.
type MpesaClient struct {
	BaseURL     string
	ConsumerKey string
	HTTPClient  *http.Client
}

// NewMpesaClient constructs an M-Pesa gateway client.
func NewMpesaClient(baseURL, consumerKey string) *MpesaClient {
	return &MpesaClient{
		BaseURL:     baseURL,
		ConsumerKey: consumerKey,
		HTTPClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

type mpesaInitiateRequest struct {
	Amount      float64 `json:"amount"`
	BookingID   string  `json:"accountReference"`
	ClientID    string  `json:"partyA"`
	ProviderID  string  `json:"partyB"`
	Description string  `json:"transactionDesc"`
}

type mpesaInitiateResponse struct {
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResponseCode      string `json:"ResponseCode"`
	ResponseDesc      string `json:"ResponseDescription"`
}

// Initiate starts an STK push for the client.
func (c *MpesaClient) Initiate(ctx context.Context, amount float64, bookingID, clientID, providerID string) (*InitiateResult, error) {
	body, err := json.Marshal(mpesaInitiateRequest{
		Amount:      amount,
		BookingID:   bookingID,
		ClientID:    clientID,
		ProviderID:  providerID,
		Description: "FundiHub service payment",
	})
	if err != nil {
		return nil, fmt.Errorf("mpesa: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("mpesa: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.ConsumerKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mpesa: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mpesa: unexpected status %d", resp.StatusCode)
	}

	var out mpesaInitiateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("mpesa: failed to decode response: %w", err)
	}
	if out.ResponseCode != "0" {
		return nil, fmt.Errorf("mpesa: gateway rejected request: %s", out.ResponseDesc)
	}

	return &InitiateResult{TransactionRef: out.CheckoutRequestID}, nil
}
