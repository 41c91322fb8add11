// Package notify emits notification-creation requests to the external
// notification service. Delivery (in-app, email, anything else) is that
// service's concern; this package only hands it the request and walks away.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Request is a notification-creation request for the external service.
type Request struct {
	RecipientID string `json:"recipient_id"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	RelatedID   string `json:"related_id"`
}

// Notifier delivers a notification-creation request.
type Notifier interface {
	Send(ctx context.Context, req Request) error
}

// HTTPNotifier posts requests to the notification service endpoint.
type HTTPNotifier struct {
	baseURL string
	client  *http.Client
}

// NewHTTPNotifier creates a notifier against the given service base URL.
func NewHTTPNotifier(baseURL string) *HTTPNotifier {
	return &HTTPNotifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts one notification-creation request.
func (n *HTTPNotifier) Send(ctx context.Context, req Request) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/notifications", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification service returned %d", resp.StatusCode)
	}
	return nil
}

// Dispatch sends fire-and-forget: it spawns a goroutine, logs failures, and
// never blocks or retries. The analytics computation must not depend on the
// notification outcome.
func Dispatch(n Notifier, req Request) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := n.Send(ctx, req); err != nil {
			log.Printf("[notify] dropped notification for %s: %v", req.RecipientID, err)
		}
	}()
}
