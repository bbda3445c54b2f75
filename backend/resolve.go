package backend

import (
	"net/http"

	"github.com/meikuraledutech/canvas"
)

// Config holds the shared settings for resolving bindings to executors.
type Config struct {
	// WorkflowBaseURL is the base URL of the workflow-execution service.
	WorkflowBaseURL string
	// Client overrides the default HTTP client when set.
	Client *http.Client
}

// Resolve picks the backend for a binding: predefined bindings carrying a
// webhook URL go straight to the webhook, everything else runs as a
// blocking workflow. The choice is made once here, never re-branched at the
// call site.
func (c Config) Resolve(b *canvas.AgentBinding) canvas.AgentExecutor {
	if b.Mode == canvas.ModePredefinedWebhook && b.WebhookURL != "" {
		return &Webhook{URL: b.WebhookURL, Client: c.Client}
	}
	return &Workflow{
		BaseURL:      c.WorkflowBaseURL,
		ConnectionID: b.ConnectionID,
		WorkflowID:   b.WorkflowID,
		WebhookURL:   b.WebhookURL,
		Client:       c.Client,
	}
}
