package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"lumenflow/pkg/models"
)

// Notifier posts stage reports to a webhook configured by notify_url.
type Notifier struct {
	url        string
	httpClient *http.Client
}

// NewNotifier creates an HTTP client with retries for the given endpoint.
func NewNotifier(url string) *Notifier {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.HTTPClient.Timeout = 10 * time.Second
	retryClient.Logger = nil // Silence default debug logger

	return &Notifier{
		url:        url,
		httpClient: retryClient.StandardClient(),
	}
}

// Report delivers one stage report. The caller decides what a failure means;
// the pipeline only logs it.
func (n *Notifier) Report(ctx context.Context, report models.StageReport) error {
	return n.doRequest(ctx, http.MethodPost, report)
}

// doRequest sends a JSON payload and checks the response status.
func (n *Notifier) doRequest(ctx context.Context, method string, payload interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonBytes, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, n.url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if r, ok := payload.(models.StageReport); ok && r.RunID != "" {
		req.Header.Set("X-Run-ID", r.RunID)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

// StatusError is returned when the webhook answers with a 4xx/5xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("notify endpoint returned status %d", e.StatusCode)
}
