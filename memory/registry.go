package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/meikuraledutech/canvas"
)

// Registry implements canvas.AgentRegistry over a static descriptor list.
type Registry struct {
	agents []canvas.AgentDescriptor
}

func NewRegistry(agents []canvas.AgentDescriptor) *Registry {
	return &Registry{agents: agents}
}

// LoadRegistry reads a JSON array of agent descriptors from a file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("canvas: read agents file: %w", err)
	}
	var agents []canvas.AgentDescriptor
	if err := json.Unmarshal(data, &agents); err != nil {
		return nil, fmt.Errorf("canvas: parse agents file: %w", err)
	}
	return NewRegistry(agents), nil
}

func (r *Registry) List(ctx context.Context) ([]canvas.AgentDescriptor, error) {
	out := make([]canvas.AgentDescriptor, len(r.agents))
	copy(out, r.agents)
	return out, nil
}

// Get returns nil, nil if the agent is unknown.
func (r *Registry) Get(ctx context.Context, id string) (*canvas.AgentDescriptor, error) {
	for _, a := range r.agents {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}
