package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PaypalClient initiates charges through the PayPal orders API. The order
// wire format is reduced to the narrow initiate contract the core needs.
type PaypalClient struct {
	BaseURL    string
	ClientID   string
	Currency   string
	HTTPClient *http.Client
}

// NewPaypalClient constructs a PayPal gateway client.
func NewPaypalClient(baseURL, clientID, currency string) *PaypalClient {
	return &PaypalClient{
		BaseURL:    baseURL,
		ClientID:   clientID,
		Currency:   currency,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type paypalOrderRequest struct {
	Intent    string `json:"intent"`
	Reference string `json:"reference_id"`
	Amount    struct {
		CurrencyCode string `json:"currency_code"`
		Value        string `json:"value"`
	} `json:"amount"`
}

type paypalOrderResponse struct {
	ID    string `json:"id"`
	Links []struct {
		Rel  string `json:"rel"`
		Href string `json:"href"`
	} `json:"links"`
}

// Initiate creates a PayPal order for the amount owed.
func (c *PaypalClient) Initiate(ctx context.Context, amount float64, bookingID, clientID, providerID string) (*InitiateResult, error) {
	order := paypalOrderRequest{Intent: "CAPTURE", Reference: bookingID}
	order.Amount.CurrencyCode = c.Currency
	order.Amount.Value = fmt.Sprintf("%.2f", amount)

	body, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("paypal: failed to encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/v2/checkout/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("paypal: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.ClientID)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paypal: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("paypal: unexpected status %d", resp.StatusCode)
	}

	var out paypalOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("paypal: failed to decode response: %w", err)
	}

	result := &InitiateResult{TransactionRef: out.ID}
	for _, link := range out.Links {
		if link.Rel == "approve" {
			result.ApprovalURL = link.Href
			break
		}
	}
	return result, nil
}
