package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/emberhollow/stockpile/internal/catalog"
	"github.com/emberhollow/stockpile/internal/storage"
)

// DefinitionStore methods (item catalog persistence)

// PutDefinition inserts or replaces a definition after validating it.
func (s *Store) PutDefinition(ctx context.Context, def catalog.Definition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := def.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}

	if _, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO definitions (item_id, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT(item_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		def.ID, string(payload), toMillis(time.Now()),
	); err != nil {
		return fmt.Errorf("upsert definition: %w", err)
	}
	return nil
}

// GetDefinition loads a definition by item id.
func (s *Store) GetDefinition(ctx context.Context, itemID string) (catalog.Definition, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Definition{}, err
	}
	if s == nil || s.sqlDB == nil {
		return catalog.Definition{}, fmt.Errorf("storage is not configured")
	}

	var payload string
	row := s.sqlDB.QueryRowContext(ctx, "SELECT payload FROM definitions WHERE item_id = ?", itemID)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Definition{}, storage.ErrNotFound
		}
		return catalog.Definition{}, fmt.Errorf("load definition: %w", err)
	}

	var def catalog.Definition
	if err := json.Unmarshal([]byte(payload), &def); err != nil {
		return catalog.Definition{}, fmt.Errorf("unmarshal definition: %w", err)
	}
	return def, nil
}

// ListDefinitions returns all definitions ordered by item id.
func (s *Store) ListDefinitions(ctx context.Context) ([]catalog.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx, "SELECT payload FROM definitions ORDER BY item_id")
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	defer rows.Close()

	var defs []catalog.Definition
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan definition row: %w", err)
		}
		var def catalog.Definition
		if err := json.Unmarshal([]byte(payload), &def); err != nil {
			return nil, fmt.Errorf("unmarshal definition: %w", err)
		}
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read definition rows: %w", err)
	}
	return defs, nil
}
