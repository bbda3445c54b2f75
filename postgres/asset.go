package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meikuraledutech/canvas"
)

// Save inserts an asset. If a.ID is empty, a UUID is auto-generated.
// Returns the asset with ID and CreatedAt filled in.
func (s *AssetStore) Save(ctx context.Context, a *canvas.Asset) (*canvas.Asset, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO canvas_assets (id, project_id, client_id, agent_id, agent_name, title, content, asset_type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.ProjectID, a.ClientID, a.AgentID, a.AgentName, a.Title, a.Content, a.Type, a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("canvas: insert asset: %w", err)
	}

	return a, nil
}

// Get fetches a single asset by its ID.
// Returns nil, nil if not found.
func (s *AssetStore) Get(ctx context.Context, assetID string) (*canvas.Asset, error) {
	var a canvas.Asset
	err := s.db.QueryRow(ctx,
		`SELECT id, project_id, client_id, agent_id, agent_name, title, content, asset_type, created_at
		 FROM canvas_assets WHERE id = $1`, assetID,
	).Scan(&a.ID, &a.ProjectID, &a.ClientID, &a.AgentID, &a.AgentName, &a.Title, &a.Content, &a.Type, &a.CreatedAt)

	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("canvas: get asset: %w", err)
	}

	return &a, nil
}

// List returns all assets for a projectID, ordered by created_at.
// Returns an empty slice (not nil) if none found.
func (s *AssetStore) List(ctx context.Context, projectID string) ([]canvas.Asset, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, project_id, client_id, agent_id, agent_name, title, content, asset_type, created_at
		 FROM canvas_assets WHERE project_id = $1 ORDER BY created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("canvas: list assets: %w", err)
	}
	defer rows.Close()

	assets := []canvas.Asset{}
	for rows.Next() {
		var a canvas.Asset
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.ClientID, &a.AgentID, &a.AgentName, &a.Title, &a.Content, &a.Type, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("canvas: scan asset: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("canvas: rows assets: %w", err)
	}

	return assets, nil
}

// Delete deletes an asset by its ID. No error if the asset doesn't exist.
func (s *AssetStore) Delete(ctx context.Context, assetID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM canvas_assets WHERE id = $1`, assetID)
	if err != nil {
		return fmt.Errorf("canvas: delete asset: %w", err)
	}
	return nil
}

// isNoRows checks if the error is a "no rows" error from pgx.
func isNoRows(err error) bool {
	return err != nil && err.Error() == "no rows in result set"
}
