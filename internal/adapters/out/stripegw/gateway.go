// Package stripegw implements the payment gateway port over Stripe's HTTP
// API. Only the two calls the order lifecycle needs are covered: capturing a
// pre-authorized charge on completion and refunding it on cancellation.
package stripegw

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fueldrop/internal/core/domain/model/order"
	"fueldrop/internal/core/ports"
)

const defaultBaseURL = "https://api.stripe.com/v1"

// Gateway is a Stripe-backed implementation of ports.PaymentGateway.
// Capture and refund are idempotent per charge id at Stripe's side; this
// adapter does not retry on its own.
type Gateway struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithBaseURL overrides the Stripe API endpoint. Used for tests and mock
// servers.
func WithBaseURL(baseURL string) Option {
	return func(g *Gateway) {
		g.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		g.client = client
	}
}

// NewGateway creates a Gateway authenticating with the given secret key.
func NewGateway(secretKey string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:   defaultBaseURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// chargeResponse is the subset of Stripe's charge object the order records.
type chargeResponse struct {
	ID                 string `json:"id"`
	Customer           string `json:"customer"`
	BalanceTransaction string `json:"balance_transaction"`
	Captured           bool   `json:"captured"`
	Paid               bool   `json:"paid"`
	Created            int64  `json:"created"`
	Source             struct {
		ID       string `json:"id"`
		Brand    string `json:"brand"`
		ExpMonth int    `json:"exp_month"`
		ExpYear  int    `json:"exp_year"`
		Last4    string `json:"last4"`
	} `json:"source"`
}

type refundResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Capture settles the pre-authorized charge.
func (g *Gateway) Capture(ctx context.Context, chargeID string) (*order.PaymentCapture, error) {
	endpoint := fmt.Sprintf("%s/charges/%s/capture", g.baseURL, url.PathEscape(chargeID))

	var charge chargeResponse
	if err := g.post(ctx, endpoint, nil, &charge); err != nil {
		return nil, err
	}

	return &order.PaymentCapture{
		ChargeID:             charge.ID,
		CustomerID:           charge.Customer,
		BalanceTransactionID: charge.BalanceTransaction,
		Captured:             charge.Captured,
		Paid:                 charge.Paid,
		Created:              time.Unix(charge.Created, 0),
		Card: order.CardSummary{
			ID:       charge.Source.ID,
			Brand:    charge.Source.Brand,
			ExpMonth: charge.Source.ExpMonth,
			ExpYear:  charge.Source.ExpYear,
			Last4:    charge.Source.Last4,
		},
	}, nil
}

// Refund returns the captured charge to the customer.
func (g *Gateway) Refund(ctx context.Context, chargeID string) (*order.PaymentRefund, error) {
	endpoint := g.baseURL + "/refunds"
	form := url.Values{"charge": {chargeID}}

	var refund refundResponse
	if err := g.post(ctx, endpoint, form, &refund); err != nil {
		return nil, err
	}

	return &order.PaymentRefund{ID: refund.ID}, nil
}

// post issues one form-encoded request and decodes the JSON response into out.
// Non-2xx responses are surfaced as ports.GatewayError carrying Stripe's own
// failure code, so callers can propagate it unchanged.
func (g *Gateway) post(ctx context.Context, endpoint string, form url.Values, out any) error {
	var body strings.Reader
	if form != nil {
		body = *strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return ports.NewGatewayError("stripe", "", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return ports.NewGatewayError("stripe", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr != nil {
			return ports.NewGatewayError("stripe", "",
				fmt.Errorf("unexpected status %d", resp.StatusCode))
		}
		return ports.NewGatewayError("stripe", apiErr.Error.Code,
			fmt.Errorf("%s", apiErr.Error.Message))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
