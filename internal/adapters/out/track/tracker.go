// Package track implements the event tracker port over an analytics REST
// endpoint.
package track

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

// Tracker is an HTTP implementation of ports.EventTracker.
type Tracker struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewTracker creates a Tracker for the analytics service at baseURL.
func NewTracker(baseURL string, apiKey string) *Tracker {
	return &Tracker{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type trackRequest struct {
	UserID     string         `json:"user_id"`
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties"`
}

// Track records the named event with the given properties.
func (t *Tracker) Track(ctx context.Context, userID kernel.UUID, event string, properties map[string]any) error {
	body, err := json.Marshal(trackRequest{
		UserID:     userID.String(),
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/track", bytes.NewReader(body))
	if err != nil {
		return ports.NewGatewayError("track", "", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return ports.NewGatewayError("track", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ports.NewGatewayError("track", fmt.Sprintf("%d", resp.StatusCode),
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return nil
}
