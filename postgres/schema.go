package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS canvas_assets (
    id         TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    client_id  TEXT NOT NULL DEFAULT '',
    agent_id   TEXT NOT NULL DEFAULT '',
    agent_name TEXT NOT NULL DEFAULT '',
    title      TEXT NOT NULL,
    content    TEXT NOT NULL,
    asset_type TEXT NOT NULL DEFAULT 'text',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_canvas_assets_project_id ON canvas_assets(project_id);
`

// CreateSchema creates the canvas_assets table if it doesn't exist.
func (s *AssetStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the canvas_assets table.
func (s *AssetStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS canvas_assets CASCADE;`)
	return err
}
