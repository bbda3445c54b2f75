package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/meikuraledutech/canvas"
)

// Workflow executes an agent by submitting a workflow run to the
// workflow-execution service and blocking until it finishes.
type Workflow struct {
	BaseURL      string
	ConnectionID string
	WorkflowID   string
	WebhookURL   string
	Client       *http.Client
}

type workflowRunRequest struct {
	ConnectionID      string                  `json:"connection_id"`
	WorkflowID        string                  `json:"workflow_id"`
	WebhookURL        string                  `json:"webhook_url,omitempty"`
	Payload           canvas.ExecutionPayload `json:"payload"`
	WaitUntilFinished bool                    `json:"wait_until_finished"`
}

func (w *Workflow) Execute(ctx context.Context, payload canvas.ExecutionPayload) (canvas.ExecutionResult, error) {
	body, err := json.Marshal(workflowRunRequest{
		ConnectionID:      w.ConnectionID,
		WorkflowID:        w.WorkflowID,
		WebhookURL:        w.WebhookURL,
		Payload:           payload,
		WaitUntilFinished: true,
	})
	if err != nil {
		return canvas.ExecutionResult{}, fmt.Errorf("canvas: marshal workflow run: %w", err)
	}

	url := w.BaseURL + "/workflows/run"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return canvas.ExecutionResult{}, fmt.Errorf("canvas: build workflow request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := w.Client
	if client == nil {
		client = defaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return canvas.ExecutionResult{}, fmt.Errorf("canvas: workflow run: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return canvas.ExecutionResult{}, fmt.Errorf("canvas: read workflow response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("workflow run returned error", "workflow_id", w.WorkflowID, "status", resp.StatusCode, "body", string(raw))
		return canvas.ExecutionResult{
			Error: fmt.Sprintf("workflow run returned status %d", resp.StatusCode),
		}, nil
	}

	return decodeResult(raw), nil
}
