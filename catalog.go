package canvas

import (
	"context"
	"fmt"
)

// OutputTemplate is a human-curated catalog entry that spawns an output
// node pre-seeded with a description of what should end up in it.
type OutputTemplate struct {
	Name        string  `json:"name"`
	Variant     Variant `json:"variant"`
	Description string  `json:"description"`
}

// OutputTemplates is the static output side of the spawn catalog.
var OutputTemplates = []OutputTemplate{
	{Name: "Ad Copy", Variant: VariantOutput, Description: "Short-form ad copy assembled from the canvas inputs."},
	{Name: "Landing Page Brief", Variant: VariantOutput, Description: "A structured brief for a landing page: headline, sections, calls to action."},
	{Name: "Email Sequence", Variant: VariantOutput, Description: "A multi-step outreach email sequence."},
	{Name: "Social Post", Variant: VariantOutput, Description: "A single social media post with hook and hashtags."},
}

// PrimitiveKinds lists the typed input variants spawnable as empty nodes.
var PrimitiveKinds = []Variant{
	VariantText, VariantKnowledge, VariantImage, VariantDocument, VariantLink,
}

// Library translates catalog selections into node spawns. It only
// constructs nodes; it never talks to execution backends.
type Library struct {
	store    *Store
	registry AgentRegistry
}

func NewLibrary(store *Store, registry AgentRegistry) *Library {
	return &Library{store: store, registry: registry}
}

// SpawnAgent looks the agent up in the registry and spawns an agent node
// carrying its binding.
func (l *Library) SpawnAgent(ctx context.Context, agentID string) (string, error) {
	desc, err := l.registry.Get(ctx, agentID)
	if err != nil {
		return "", fmt.Errorf("canvas: spawn agent: %w", err)
	}
	if desc == nil {
		return "", ErrAgentNotFound
	}
	id := l.store.Add(Node{
		Variant: VariantAgent,
		Title:   desc.DisplayName,
		Binding: &AgentBinding{
			AgentID:      desc.ID,
			Name:         desc.DisplayName,
			Mode:         desc.Mode,
			WebhookURL:   desc.WebhookURL,
			ConnectionID: desc.ConnectionID,
			WorkflowID:   desc.WorkflowID,
		},
	})
	return id, nil
}

// SpawnTemplate spawns an output node seeded with the template description.
func (l *Library) SpawnTemplate(name string) (string, error) {
	for _, t := range OutputTemplates {
		if t.Name == name {
			id := l.store.Add(Node{
				Variant: t.Variant,
				Title:   t.Name,
				Content: t.Description,
			})
			return id, nil
		}
	}
	return "", fmt.Errorf("canvas: unknown output template %q", name)
}

// SpawnPrimitive spawns an empty input node of the given variant.
func (l *Library) SpawnPrimitive(v Variant) (string, error) {
	if !v.AcceptsContent() {
		return "", fmt.Errorf("canvas: %q is not a spawnable input kind", v)
	}
	return l.store.Add(Node{
		Variant: v,
		Title:   "New " + string(v),
	}), nil
}

// SpawnFromAsset spawns a node from an existing project asset, copying its
// content and keeping a provenance back-reference. Unknown asset types fall
// back to a text node.
func (l *Library) SpawnFromAsset(a *Asset) string {
	v := Variant(a.Type)
	if !v.Valid() || !v.AcceptsContent() {
		v = VariantText
	}
	return l.store.Add(Node{
		Variant:       v,
		Title:         a.Title,
		Content:       a.Content,
		SourceAssetID: a.ID,
	})
}
