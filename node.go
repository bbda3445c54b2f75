package canvas

// Variant is the kind of a canvas node, fixed at creation.
type Variant string

const (
	VariantAgent     Variant = "agent"
	VariantKnowledge Variant = "knowledge"
	VariantText      Variant = "text"
	VariantImage     Variant = "image"
	VariantDocument  Variant = "document"
	VariantLink      Variant = "link"
	VariantOutput    Variant = "output"
)

// Valid reports whether v is one of the known node variants.
func (v Variant) Valid() bool {
	switch v {
	case VariantAgent, VariantKnowledge, VariantText, VariantImage,
		VariantDocument, VariantLink, VariantOutput:
		return true
	}
	return false
}

// AcceptsContent reports whether nodes of this variant carry a free-text
// payload. Agent and output nodes do not; their text lives in Result.
func (v Variant) AcceptsContent() bool {
	switch v {
	case VariantKnowledge, VariantText, VariantImage, VariantDocument, VariantLink:
		return true
	}
	return false
}

// Position is a coordinate in unscaled canvas units, independent of any
// visual pan/zoom of the viewport.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Point is a raw pointer sample relative to the canvas content origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ExecutionMode selects which backend runs an agent.
type ExecutionMode string

const (
	// ModePredefinedWebhook dispatches to a fixed webhook URL.
	ModePredefinedWebhook ExecutionMode = "predefined-webhook"
	// ModeWorkflow dispatches a blocking workflow run.
	ModeWorkflow ExecutionMode = "workflow"
)

// AgentDescriptor is an entry in the external agent registry.
type AgentDescriptor struct {
	ID           string        `json:"id"`
	DisplayName  string        `json:"display_name"`
	Mode         ExecutionMode `json:"execution_mode"`
	WebhookURL   string        `json:"webhook_url,omitempty"`
	ConnectionID string        `json:"connection_id,omitempty"`
	WorkflowID   string        `json:"workflow_id,omitempty"`
}

// AgentBinding is the immutable reference data on an agent node describing
// which backend and identifiers to use. It is copied from an AgentDescriptor
// at spawn time and never changes afterwards.
type AgentBinding struct {
	AgentID      string        `json:"agent_id"`
	Name         string        `json:"name"`
	Mode         ExecutionMode `json:"mode"`
	WebhookURL   string        `json:"webhook_url,omitempty"`
	ConnectionID string        `json:"connection_id,omitempty"`
	WorkflowID   string        `json:"workflow_id,omitempty"`
}

// Node is a single item on the canvas.
// Binding is present only on agent nodes. SourceAssetID is a provenance
// back-reference when the node was spawned from a persisted asset; it is
// never used for referential integrity.
type Node struct {
	ID            string        `json:"id"`
	Variant       Variant       `json:"variant"`
	Title         string        `json:"title"`
	Content       string        `json:"content,omitempty"`
	Position      Position      `json:"position"`
	Binding       *AgentBinding `json:"binding,omitempty"`
	SourceAssetID string        `json:"source_asset_id,omitempty"`
	Running       bool          `json:"running"`
	Result        string        `json:"result,omitempty"`
	Collapsed     bool          `json:"collapsed"`
}
