package canvas

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	agents []AgentDescriptor
	err    error
}

func (r fakeRegistry) List(ctx context.Context) ([]AgentDescriptor, error) {
	return r.agents, r.err
}

func (r fakeRegistry) Get(ctx context.Context, id string) (*AgentDescriptor, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, a := range r.agents {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func TestLibrary_SpawnAgent(t *testing.T) {
	s := NewStore(Point{})
	l := NewLibrary(s, fakeRegistry{agents: []AgentDescriptor{{
		ID:           "wf-1",
		DisplayName:  "Strategist",
		Mode:         ModeWorkflow,
		ConnectionID: "conn-9",
		WorkflowID:   "flow-3",
	}}})

	id, err := l.SpawnAgent(context.Background(), "wf-1")
	require.NoError(t, err)

	n, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, VariantAgent, n.Variant)
	assert.Equal(t, "Strategist", n.Title)
	require.NotNil(t, n.Binding)
	assert.Equal(t, "wf-1", n.Binding.AgentID)
	assert.Equal(t, ModeWorkflow, n.Binding.Mode)
	assert.Equal(t, "conn-9", n.Binding.ConnectionID)
	assert.Equal(t, "flow-3", n.Binding.WorkflowID)
}

func TestLibrary_SpawnAgentUnknown(t *testing.T) {
	s := NewStore(Point{})
	l := NewLibrary(s, fakeRegistry{})

	_, err := l.SpawnAgent(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAgentNotFound)
	assert.Equal(t, 0, s.Len())
}

func TestLibrary_SpawnAgentRegistryError(t *testing.T) {
	s := NewStore(Point{})
	l := NewLibrary(s, fakeRegistry{err: errors.New("registry down")})

	_, err := l.SpawnAgent(context.Background(), "any")
	require.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestLibrary_SpawnTemplate(t *testing.T) {
	s := NewStore(Point{})
	l := NewLibrary(s, fakeRegistry{})

	id, err := l.SpawnTemplate("Ad Copy")
	require.NoError(t, err)

	n, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, VariantOutput, n.Variant)
	assert.Equal(t, "Ad Copy", n.Title)
	assert.NotEmpty(t, n.Content, "templates pre-seed a description")
	assert.Nil(t, n.Binding)
}

func TestLibrary_SpawnTemplateUnknown(t *testing.T) {
	l := NewLibrary(NewStore(Point{}), fakeRegistry{})

	_, err := l.SpawnTemplate("No Such Template")
	assert.Error(t, err)
}

func TestLibrary_SpawnPrimitive(t *testing.T) {
	for _, v := range PrimitiveKinds {
		t.Run(string(v), func(t *testing.T) {
			s := NewStore(Point{})
			l := NewLibrary(s, fakeRegistry{})

			id, err := l.SpawnPrimitive(v)
			require.NoError(t, err)

			n, ok := s.Get(id)
			require.True(t, ok)
			assert.Equal(t, v, n.Variant)
			assert.Empty(t, n.Content)
			assert.NotEmpty(t, n.Title)
		})
	}
}

func TestLibrary_SpawnPrimitiveRejectsNonInputs(t *testing.T) {
	l := NewLibrary(NewStore(Point{}), fakeRegistry{})

	_, err := l.SpawnPrimitive(VariantAgent)
	assert.Error(t, err)
	_, err = l.SpawnPrimitive(VariantOutput)
	assert.Error(t, err)
}

func TestLibrary_SpawnFromAsset(t *testing.T) {
	tests := []struct {
		name        string
		assetType   string
		wantVariant Variant
	}{
		{name: "text asset keeps its variant", assetType: "text", wantVariant: VariantText},
		{name: "document asset keeps its variant", assetType: "document", wantVariant: VariantDocument},
		{name: "unknown asset type falls back to text", assetType: "video", wantVariant: VariantText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(Point{})
			l := NewLibrary(s, fakeRegistry{})

			id := l.SpawnFromAsset(&Asset{
				ID:      "asset-7",
				Title:   "Q3 Messaging",
				Content: "Warmth, reliability",
				Type:    tt.assetType,
			})

			n, ok := s.Get(id)
			require.True(t, ok)
			assert.Equal(t, tt.wantVariant, n.Variant)
			assert.Equal(t, "Q3 Messaging", n.Title)
			assert.Equal(t, "Warmth, reliability", n.Content)
			assert.Equal(t, "asset-7", n.SourceAssetID)
		})
	}
}
