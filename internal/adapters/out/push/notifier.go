// Package push implements the notifier port over the messaging service's
// REST API. Push notifications and SMS share one endpoint family.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fueldrop/internal/core/domain/model/kernel"
	"fueldrop/internal/core/ports"
)

// Notifier is an HTTP implementation of ports.Notifier.
type Notifier struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewNotifier creates a Notifier for the messaging service at baseURL.
func NewNotifier(baseURL string, apiKey string) *Notifier {
	return &Notifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type pushRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type smsRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Push sends a push notification to the user's registered devices.
func (n *Notifier) Push(ctx context.Context, userID kernel.UUID, message string) error {
	return n.post(ctx, "/push", pushRequest{UserID: userID.String(), Message: message})
}

// SMS sends a text message to the given phone number.
func (n *Notifier) SMS(ctx context.Context, phone string, message string) error {
	return n.post(ctx, "/sms", smsRequest{Phone: phone, Message: message})
}

func (n *Notifier) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return ports.NewGatewayError("push", "", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return ports.NewGatewayError("push", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ports.NewGatewayError("push", fmt.Sprintf("%d", resp.StatusCode),
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return nil
}
