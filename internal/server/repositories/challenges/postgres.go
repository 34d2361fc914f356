package challenges

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/kunalsinghdadhwal/solcast/internal/dbx"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Put(ctx context.Context, c *models.Challenge) error {
	query := `
		INSERT INTO challenges (address, message, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (address) DO UPDATE
		SET message = EXCLUDED.message, expires_at = EXCLUDED.expires_at
	`
	if _, err := r.db.ExecContext(ctx, query, c.Address, c.Message, c.Expires); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, address string) (*models.Challenge, error) {
	query := `
		SELECT message, expires_at
		FROM challenges
		WHERE address = $1
	`
	c := &models.Challenge{Address: address}
	if err := r.db.QueryRowContext(ctx, query, address).Scan(&c.Message, &c.Expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, address string) error {
	query := `
		DELETE FROM challenges
		WHERE address = $1
	`
	res, err := r.db.ExecContext(ctx, query, address)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
