package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/halyard-auth/halyard-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.VerificationSender = (*WebhookSender)(nil)

// WebhookSender delivers verification requests by POSTing the payload
// to an external endpoint (typically a mail microservice). The endpoint
// owns rendering and transport; a non-2xx response is a delivery
// failure.
type WebhookSender struct {
	endpoint string
	client   *http.Client
}

// NewWebhookSender creates a sender targeting the given endpoint
func NewWebhookSender(endpoint string) *WebhookSender {
	return &WebhookSender{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the delivery payload as JSON
func (s *WebhookSender) Send(ctx context.Context, d driven.VerificationDelivery) error {
	body, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("delivery request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("delivery endpoint returned %d", resp.StatusCode)
	}
	return nil
}
