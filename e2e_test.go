package canvas_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meikuraledutech/canvas"
	"github.com/meikuraledutech/canvas/backend"
	"github.com/meikuraledutech/canvas/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClipboard struct {
	written []string
}

func (c *recordingClipboard) WriteAll(text string) error {
	c.written = append(c.written, text)
	return nil
}

// Full path: spawn inputs, run an agent against a live webhook stub, then
// materialize the result into the asset store.
func TestCanvas_EndToEnd(t *testing.T) {
	ctx := context.Background()

	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload canvas.ExecutionPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Contains(t, payload.Context, "Our product is X")
		json.NewEncoder(w).Encode(map[string]any{"output": "Draft copy about X"})
	}))
	defer webhook.Close()

	registry := memory.NewRegistry([]canvas.AgentDescriptor{{
		ID:          "copywriter",
		DisplayName: "Copywriter",
		Mode:        canvas.ModePredefinedWebhook,
		WebhookURL:  webhook.URL,
	}})
	assets := memory.NewAssetStore()
	clip := &recordingClipboard{}

	store := canvas.NewStore(canvas.Point{X: 640, Y: 360})
	library := canvas.NewLibrary(store, registry)
	runner := canvas.NewRunner(store, backend.Config{}.Resolve)
	mat := canvas.NewMaterializer(store, assets, clip)

	// Spawn a text node with content and an agent bound to the webhook.
	textID, err := library.SpawnPrimitive(canvas.VariantText)
	require.NoError(t, err)
	store.SetContent(textID, "Our product is X")

	agentID, err := library.SpawnAgent(ctx, "copywriter")
	require.NoError(t, err)

	// Run it.
	require.NoError(t, runner.Run(ctx, agentID))

	n, ok := store.Get(agentID)
	require.True(t, ok)
	assert.Equal(t, "Draft copy about X", n.Result)
	assert.False(t, n.Running)

	// Copy and save the output.
	copied, err := mat.CopyOutput(agentID)
	require.NoError(t, err)
	assert.True(t, copied)
	assert.Equal(t, []string{"Draft copy about X"}, clip.written)

	asset, err := mat.SaveAsAsset(ctx, agentID, canvas.SaveScope{ProjectID: "proj-1"})
	require.NoError(t, err)
	assert.Equal(t, "Draft copy about X", asset.Content)
	assert.Equal(t, "copywriter", asset.AgentID)
	assert.Equal(t, "Copywriter", asset.AgentName)
	assert.Equal(t, "text", asset.Type)

	// The asset store received it and can spawn a node back.
	listed, err := assets.List(ctx, "proj-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Draft copy about X", listed[0].Content)

	spawned := library.SpawnFromAsset(&listed[0])
	back, ok := store.Get(spawned)
	require.True(t, ok)
	assert.Equal(t, listed[0].ID, back.SourceAssetID)
	assert.Equal(t, "Draft copy about X", back.Content)
}

// A dead backend settles the node with an inline error; the user can re-run
// it afterwards with no cooldown.
func TestCanvas_FailureThenRetry(t *testing.T) {
	ctx := context.Background()

	healthy := false
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"output": "recovered"})
	}))
	defer webhook.Close()

	registry := memory.NewRegistry([]canvas.AgentDescriptor{{
		ID:         "flaky",
		Mode:       canvas.ModePredefinedWebhook,
		WebhookURL: webhook.URL,
	}})

	store := canvas.NewStore(canvas.Point{})
	library := canvas.NewLibrary(store, registry)
	runner := canvas.NewRunner(store, backend.Config{}.Resolve)

	agentID, err := library.SpawnAgent(ctx, "flaky")
	require.NoError(t, err)

	require.NoError(t, runner.Run(ctx, agentID))
	n, _ := store.Get(agentID)
	assert.Equal(t, "Error: webhook returned status 502", n.Result)
	assert.False(t, n.Running)

	healthy = true
	require.NoError(t, runner.Run(ctx, agentID))
	n, _ = store.Get(agentID)
	assert.Equal(t, "recovered", n.Result)
	assert.False(t, n.Running)
}
