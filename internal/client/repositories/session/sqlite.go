package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kunalsinghdadhwal/solcast/internal/client/models"
	"github.com/kunalsinghdadhwal/solcast/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, endpoint string) (*models.Session, error) {
	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, `
		SELECT endpoint, address, access_token, refresh_token, updated_at
		FROM sessions WHERE endpoint = ?`, endpoint).
		Scan(&s.Endpoint, &s.Address, &s.AccessToken, &s.RefreshToken, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", endpoint, err)
	}
	return s, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, s *models.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (endpoint, address, access_token, refresh_token, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(endpoint) DO UPDATE SET
			address = excluded.address,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			updated_at = excluded.updated_at
	`, s.Endpoint, s.Address, s.AccessToken, s.RefreshToken, s.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save session[%s]: %w", s.Endpoint, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, endpoint string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE endpoint = ?`, endpoint)
	if err != nil {
		return fmt.Errorf("failed to delete session[%s]: %w", endpoint, err)
	}
	return nil
}
