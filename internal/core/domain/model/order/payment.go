package order

import (
	"encoding/json"
	"time"
)

// CardSummary is the subset of the gateway's card description persisted with
// a captured order. Serialized to JSON for the payment_info column.
type CardSummary struct {
	ID       string `json:"id"`
	Brand    string `json:"brand"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
	Last4    string `json:"last4"`
}

// Serialize renders the card summary in the stored wire form.
func (c CardSummary) Serialize() (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// PaymentCapture is the outcome of a successful gateway capture call.
// Captured and Paid are reported separately by the gateway and may differ;
// the order records Captured as its paid flag.
type PaymentCapture struct {
	ChargeID             string
	CustomerID           string
	BalanceTransactionID string
	Captured             bool
	Paid                 bool
	Created              time.Time
	Card                 CardSummary
}

// PaymentRefund is the outcome of a successful gateway refund call.
type PaymentRefund struct {
	ID string
}
