// Package backend provides the HTTP implementations of the two agent
// execution backends: a predefined webhook call and a blocking workflow
// run. Both reduce their responses to a uniform canvas.ExecutionResult.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/meikuraledutech/canvas"
)

// Hung backends resolve into the error path instead of leaving a node
// running forever.
var defaultClient = &http.Client{Timeout: 120 * time.Second}

// Webhook executes an agent by POSTing the payload to a fixed webhook URL.
type Webhook struct {
	URL    string
	Client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{URL: url}
}

func (w *Webhook) Execute(ctx context.Context, payload canvas.ExecutionPayload) (canvas.ExecutionResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return canvas.ExecutionResult{}, fmt.Errorf("canvas: marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return canvas.ExecutionResult{}, fmt.Errorf("canvas: build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := w.Client
	if client == nil {
		client = defaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return canvas.ExecutionResult{}, fmt.Errorf("canvas: webhook call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return canvas.ExecutionResult{}, fmt.Errorf("canvas: read webhook response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("webhook returned error", "url", w.URL, "status", resp.StatusCode, "body", string(raw))
		return canvas.ExecutionResult{
			Error: fmt.Sprintf("webhook returned status %d", resp.StatusCode),
		}, nil
	}

	return decodeResult(raw), nil
}

// decodeResult reduces a backend response body to the uniform result shape.
// An explicit {success, result?, error?} envelope is honored; any other body
// is treated as a successful raw payload and left for Normalize to render.
func decodeResult(raw []byte) canvas.ExecutionResult {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		// Non-JSON body: use the text as-is.
		v = strings.TrimSpace(string(raw))
	}

	res := canvas.ExecutionResult{Success: true, Result: v}
	if m, ok := v.(map[string]any); ok {
		if success, ok := m["success"].(bool); ok {
			res.Success = success
			if msg, ok := m["error"].(string); ok {
				res.Error = msg
			}
			if payload, exists := m["result"]; exists {
				res.Result = payload
			}
		}
	}
	return res
}
