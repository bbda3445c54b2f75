package canvas

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNodeNotFound   = errors.New("canvas: node not found")
	ErrNotRunnable    = errors.New("canvas: node has no agent binding")
	ErrAlreadyRunning = errors.New("canvas: node is already running")
	ErrNoResult       = errors.New("canvas: node has no result")
	ErrAgentNotFound  = errors.New("canvas: agent not found")
	ErrAssetNotFound  = errors.New("canvas: asset not found")
)

// Asset is a durable project artifact. Nodes can be spawned from existing
// assets, and a node's result can be materialized into a new one.
type Asset struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	ClientID  string    `json:"client_id,omitempty"`
	AgentID   string    `json:"agent_id,omitempty"`
	AgentName string    `json:"agent_name,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"asset_type"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ExecutionPayload is the request body sent to either execution backend.
type ExecutionPayload struct {
	Query   string `json:"query"`
	Context string `json:"context"`
}

// ExecutionResult is the uniform outcome both backends reduce to.
// Result holds the decoded response payload in whatever shape the backend
// produced; Normalize turns it into display text.
type ExecutionResult struct {
	Success bool
	Result  any
	Error   string
}

// AgentExecutor runs one agent invocation against an external backend.
// Implementations block until the backend settles.
type AgentExecutor interface {
	Execute(ctx context.Context, payload ExecutionPayload) (ExecutionResult, error)
}

// AgentRegistry lists the agents available for spawning (read-only).
type AgentRegistry interface {
	List(ctx context.Context) ([]AgentDescriptor, error)
	// Get returns nil, nil if the agent is unknown.
	Get(ctx context.Context, id string) (*AgentDescriptor, error)
}

// AssetStore defines the contract for persisting and retrieving assets.
type AssetStore interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Save stores the asset, generating an ID if empty, and returns it
	// with ID and CreatedAt filled in.
	Save(ctx context.Context, a *Asset) (*Asset, error)
	// Get returns nil, nil if not found.
	Get(ctx context.Context, assetID string) (*Asset, error)
	List(ctx context.Context, projectID string) ([]Asset, error)
	Delete(ctx context.Context, assetID string) error
}

// Clipboard is the platform clipboard-write primitive.
type Clipboard interface {
	WriteAll(text string) error
}
