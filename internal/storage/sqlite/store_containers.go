package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/emberhollow/stockpile/internal/container"
	"github.com/emberhollow/stockpile/internal/storage"
)

// ContainerStore methods (snapshot persistence)

// PutContainer inserts a new snapshot or replaces an existing one under an
// optimistic concurrency guard. Pass the version the snapshot carried when
// it was loaded; zero means the container was never stored.
func (s *Store) PutContainer(ctx context.Context, c container.Container, expectedVersion int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	snapshot, err := json.Marshal(c.ClearUncommitted())
	if err != nil {
		return fmt.Errorf("marshal container snapshot: %w", err)
	}

	if expectedVersion == 0 {
		_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO containers (id, owner_id, container_type, version, snapshot, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.OwnerID, string(c.Type), c.Version, string(snapshot),
			toMillis(c.CreatedAt), toMillis(c.LastModified),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return storage.ErrVersionConflict
			}
			return fmt.Errorf("insert container: %w", err)
		}
		return nil
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE containers
SET owner_id = ?, container_type = ?, version = ?, snapshot = ?, updated_at = ?
WHERE id = ? AND version = ?`,
		c.OwnerID, string(c.Type), c.Version, string(snapshot),
		toMillis(c.LastModified), c.ID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update container: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update container: %w", err)
	}
	if affected == 0 {
		var exists int
		row := s.sqlDB.QueryRowContext(ctx, "SELECT 1 FROM containers WHERE id = ?", c.ID)
		if scanErr := row.Scan(&exists); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return storage.ErrNotFound
			}
			return fmt.Errorf("check container: %w", scanErr)
		}
		return storage.ErrVersionConflict
	}
	return nil
}

// GetContainer loads a snapshot by id.
func (s *Store) GetContainer(ctx context.Context, id string) (container.Container, error) {
	if err := ctx.Err(); err != nil {
		return container.Container{}, err
	}
	if s == nil || s.sqlDB == nil {
		return container.Container{}, fmt.Errorf("storage is not configured")
	}

	var snapshot string
	row := s.sqlDB.QueryRowContext(ctx, "SELECT snapshot FROM containers WHERE id = ?", id)
	if err := row.Scan(&snapshot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return container.Container{}, storage.ErrNotFound
		}
		return container.Container{}, fmt.Errorf("load container: %w", err)
	}

	var c container.Container
	if err := json.Unmarshal([]byte(snapshot), &c); err != nil {
		return container.Container{}, fmt.Errorf("unmarshal container snapshot: %w", err)
	}
	return c, nil
}

// ListContainersByOwner returns the owner's containers ordered by id.
func (s *Store) ListContainersByOwner(ctx context.Context, ownerID string) ([]container.Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT snapshot FROM containers WHERE owner_id = ? ORDER BY id", ownerID)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	defer rows.Close()

	var containers []container.Container
	for rows.Next() {
		var snapshot string
		if err := rows.Scan(&snapshot); err != nil {
			return nil, fmt.Errorf("scan container row: %w", err)
		}
		var c container.Container
		if err := json.Unmarshal([]byte(snapshot), &c); err != nil {
			return nil, fmt.Errorf("unmarshal container snapshot: %w", err)
		}
		containers = append(containers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read container rows: %w", err)
	}
	return containers, nil
}

// DeleteContainer removes a snapshot and leaves its journal intact.
func (s *Store) DeleteContainer(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM containers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete container: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete container: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
