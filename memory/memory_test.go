package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/meikuraledutech/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewAssetStore()

	saved, err := s.Save(ctx, &canvas.Asset{ProjectID: "p1", Title: "T", Content: "body", Type: "text"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "body", got.Content)

	missing, err := s.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAssetStore_ListFiltersByProject(t *testing.T) {
	ctx := context.Background()
	s := NewAssetStore()

	_, err := s.Save(ctx, &canvas.Asset{ProjectID: "p1", Title: "A"})
	require.NoError(t, err)
	_, err = s.Save(ctx, &canvas.Asset{ProjectID: "p2", Title: "B"})
	require.NoError(t, err)
	_, err = s.Save(ctx, &canvas.Asset{ProjectID: "p1", Title: "C"})
	require.NoError(t, err)

	got, err := s.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Title, "insertion order preserved")
	assert.Equal(t, "C", got[1].Title)

	empty, err := s.List(ctx, "p9")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAssetStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewAssetStore()

	saved, err := s.Save(ctx, &canvas.Asset{ProjectID: "p1"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, saved.ID))
	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is harmless.
	assert.NoError(t, s.Delete(ctx, saved.ID))
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry([]canvas.AgentDescriptor{
		{ID: "a1", DisplayName: "One"},
		{ID: "a2", DisplayName: "Two"},
	})

	got, err := r.Get(context.Background(), "a2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Two", got.DisplayName)

	missing, err := r.Get(context.Background(), "a3")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "hook", "display_name": "Hook", "execution_mode": "predefined-webhook", "webhook_url": "http://h"},
		{"id": "flow", "display_name": "Flow", "execution_mode": "workflow", "connection_id": "c", "workflow_id": "w"}
	]`), 0o644))

	r, err := LoadRegistry(path)
	require.NoError(t, err)

	agents, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, canvas.ModePredefinedWebhook, agents[0].Mode)
	assert.Equal(t, "w", agents[1].WorkflowID)
}

func TestLoadRegistry_Errors(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = LoadRegistry(path)
	assert.Error(t, err)
}
