package holder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "cardledger/pkg/domain"
	"cardledger/pkg/sentinel"
)

// PostgresDirectory persists holders in the holders table.
type PostgresDirectory struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) Save(ctx context.Context, h Holder) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO holders (id, username, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, role = EXCLUDED.role
	`, uuid.UUID(h.ID), h.Username, h.Role, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("save holder: %w", err)
	}
	return nil
}

func (d *PostgresDirectory) FindByID(ctx context.Context, holderID id.HolderID) (Holder, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT id, username, role, created_at FROM holders WHERE id = $1
	`, uuid.UUID(holderID))

	var h Holder
	var raw uuid.UUID
	if err := row.Scan(&raw, &h.Username, &h.Role, &h.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Holder{}, sentinel.ErrNotFound
		}
		return Holder{}, fmt.Errorf("find holder: %w", err)
	}
	h.ID = id.HolderID(raw)
	return h, nil
}

func (d *PostgresDirectory) ExistsByID(ctx context.Context, holderID id.HolderID) (bool, error) {
	var exists bool
	err := d.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM holders WHERE id = $1)
	`, uuid.UUID(holderID)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check holder exists: %w", err)
	}
	return exists, nil
}
