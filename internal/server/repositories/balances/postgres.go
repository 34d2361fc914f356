package balances

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/dbx"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Set(ctx context.Context, address common.Address, amount models.Amount) error {
	query := `
		INSERT INTO creator_balances (address, amount, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (address) DO UPDATE
		SET amount = EXCLUDED.amount, updated_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, address.Hex(), int64(amount)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) (map[common.Address]models.Amount, error) {
	query := `
		SELECT address, amount
		FROM creator_balances
		WHERE amount > 0
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make(map[common.Address]models.Amount)
	for rows.Next() {
		var (
			address string
			amount  int64
		)
		if err := rows.Scan(&address, &amount); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result[common.HexToAddress(address)] = models.Amount(amount)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
