package deposits

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/kunalsinghdadhwal/solcast/internal/dbx"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, address common.Address) (models.Amount, error) {
	query := `
		SELECT amount
		FROM deposits
		WHERE address = $1
	`
	var amount int64
	if err := r.db.QueryRowContext(ctx, query, address.Hex()).Scan(&amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return models.Amount(amount), nil
}

func (r *PostgresRepository) Debit(ctx context.Context, address common.Address, amount models.Amount) error {
	query := `
		UPDATE deposits
		SET amount = amount - $2, updated_at = now()
		WHERE address = $1 AND amount >= $2
	`
	res, err := r.db.ExecContext(ctx, query, address.Hex(), int64(amount))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return sc.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Credit(ctx context.Context, address common.Address, amount models.Amount) error {
	query := `
		INSERT INTO deposits (address, amount, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (address) DO UPDATE
		SET amount = deposits.amount + EXCLUDED.amount, updated_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, address.Hex(), int64(amount)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
