// Package memory provides in-memory implementations of the canvas
// collaborator contracts, used by tests and by the server when no database
// is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/meikuraledutech/canvas"
)

// AssetStore implements canvas.AssetStore in memory, preserving insertion
// order per project.
type AssetStore struct {
	mu     sync.Mutex
	assets []canvas.Asset
}

func NewAssetStore() *AssetStore {
	return &AssetStore{}
}

// CreateSchema is a no-op for the in-memory store.
func (s *AssetStore) CreateSchema(ctx context.Context) error { return nil }

// DropSchema discards all assets.
func (s *AssetStore) DropSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = nil
	return nil
}

func (s *AssetStore) Save(ctx context.Context, a *canvas.Asset) (*canvas.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *a
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now().UTC()
	}
	s.assets = append(s.assets, saved)
	return &saved, nil
}

// Get returns nil, nil if not found.
func (s *AssetStore) Get(ctx context.Context, assetID string) (*canvas.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.assets {
		if a.ID == assetID {
			out := a
			return &out, nil
		}
	}
	return nil, nil
}

func (s *AssetStore) List(ctx context.Context, projectID string) ([]canvas.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []canvas.Asset{}
	for _, a := range s.assets {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *AssetStore) Delete(ctx context.Context, assetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.assets[:0]
	for _, a := range s.assets {
		if a.ID != assetID {
			next = append(next, a)
		}
	}
	s.assets = next
	return nil
}
