package canvas

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
)

// SaveScope names the project a materialized asset belongs to.
type SaveScope struct {
	ProjectID string `json:"project_id"`
	ClientID  string `json:"client_id,omitempty"`
}

// Materializer externalizes a node's result, either to the clipboard or as
// a durable project asset. It only reads settled node state; a failed save
// never alters Result or Running.
type Materializer struct {
	store  *Store
	assets AssetStore
	clip   Clipboard
}

func NewMaterializer(store *Store, assets AssetStore, clip Clipboard) *Materializer {
	return &Materializer{store: store, assets: assets, clip: clip}
}

// CopyOutput writes the node's result to the clipboard. Returns false
// without error when the node is absent or has no result yet.
func (m *Materializer) CopyOutput(nodeID string) (bool, error) {
	n, ok := m.store.Get(nodeID)
	if !ok || n.Result == "" {
		return false, nil
	}
	if err := m.clip.WriteAll(n.Result); err != nil {
		return false, fmt.Errorf("canvas: copy output: %w", err)
	}
	return true, nil
}

// SaveAsAsset persists the node's result as a text asset titled after the
// node and the current date, carrying the agent binding as provenance.
func (m *Materializer) SaveAsAsset(ctx context.Context, nodeID string, scope SaveScope) (*Asset, error) {
	n, ok := m.store.Get(nodeID)
	if !ok {
		return nil, ErrNodeNotFound
	}
	if n.Result == "" {
		return nil, ErrNoResult
	}

	a := &Asset{
		ProjectID: scope.ProjectID,
		ClientID:  scope.ClientID,
		Title:     n.Title + " - " + time.Now().Format("2006-01-02"),
		Content:   n.Result,
		Type:      "text",
	}
	if n.Binding != nil {
		a.AgentID = n.Binding.AgentID
		a.AgentName = n.Binding.Name
	}

	saved, err := m.assets.Save(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("canvas: save output as asset: %w", err)
	}
	return saved, nil
}

// SystemClipboard returns the platform clipboard.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
