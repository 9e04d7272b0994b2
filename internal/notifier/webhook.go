package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aleister1102/linkcheck/internal/httpclient"
)

// postJSON sends payload to webhookURL and treats any non-2xx answer as a failure.
func postJSON(ctx context.Context, client *httpclient.HTTPClient, webhookURL string, payload interface{}) error {
	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return fmt.Errorf("invalid webhook URL: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	resp, err := client.Do(&httpclient.HTTPRequest{
		URL:     webhookURL,
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    bytes.NewReader(body),
		Context: ctx,
	})
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.NewHTTPErrorWithURL(resp.StatusCode, string(resp.Body), webhookURL)
	}
	return nil
}
