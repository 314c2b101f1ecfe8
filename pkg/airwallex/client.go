// Package airwallex is a thin typed client for the Airwallex REST API
// surface this product uses: bearer authentication, billing customers and
// hosted billing checkouts.
package airwallex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	sandboxBaseURL    = "https://api-demo.airwallex.com"
	productionBaseURL = "https://api.airwallex.com"

	// Airwallex bearer tokens are valid for 30 minutes; refresh early.
	tokenTTL = 25 * time.Minute
)

type Client struct {
	clientID   string
	apiKey     string
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(clientID, apiKey string, isProduction bool) *Client {
	baseURL := sandboxBaseURL
	if isProduction {
		baseURL = productionBaseURL
	}
	return &Client{
		clientID:   clientID,
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError carries the upstream status and body for failed calls.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("airwallex: unexpected status %d: %s", e.Status, e.Body)
}

type authResponse struct {
	Token string `json:"token"`
}

// bearerToken authenticates with x-client-id/x-api-key headers and caches
// the resulting token until it nears expiry.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	if c.clientID == "" || c.apiKey == "" {
		return "", fmt.Errorf("airwallex: credentials not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/authentication/login", bytes.NewReader([]byte("{}")))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", c.clientID)
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("airwallex: authentication request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return "", fmt.Errorf("airwallex: decoding auth response: %w", err)
	}

	c.token = auth.Token
	c.tokenExpiry = time.Now().Add(tokenTTL)
	return c.token, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("airwallex: request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}

// BillingCustomer is the bcus_xxx record checkouts are attached to.
type BillingCustomer struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}

func (c *Client) CreateBillingCustomer(ctx context.Context, email, firstName, lastName string) (*BillingCustomer, error) {
	payload := map[string]string{
		"email":      email,
		"first_name": firstName,
		"last_name":  lastName,
	}
	var customer BillingCustomer
	if err := c.post(ctx, "/api/v1/billing/customers/_create", payload, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// CheckoutParams describes a hosted checkout page request.
type CheckoutParams struct {
	CustomerId         string
	AmountCents        int64
	Currency           string
	BillingCycle       string
	ProductName        string
	ProductDescription string
	SuccessURL         string
	CancelURL          string
	Metadata           map[string]string
}

// CheckoutSession is the provider-hosted payment page the client is
// redirected to.
type CheckoutSession struct {
	Id  string `json:"id"`
	URL string `json:"url"`
}

func (c *Client) CreateCheckout(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	payload := map[string]interface{}{
		"customer_id":         p.CustomerId,
		"amount":              p.AmountCents,
		"currency":            p.Currency,
		"billing_cycle":       p.BillingCycle,
		"product_name":        p.ProductName,
		"product_description": p.ProductDescription,
		"success_url":         p.SuccessURL,
		"cancel_url":          p.CancelURL,
		"metadata":            p.Metadata,
	}
	var session CheckoutSession
	if err := c.post(ctx, "/api/v1/billing/checkouts/_create", payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
