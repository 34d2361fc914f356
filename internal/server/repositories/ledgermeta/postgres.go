package ledgermeta

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

func (r *PostgresRepository) Get(ctx context.Context) (*models.LedgerMeta, error) {
	query := `
		SELECT owner_address, platform_balance
		FROM ledger_meta
		WHERE id = 1
	`
	var (
		owner   string
		balance int64
	)
	if err := r.db.QueryRowContext(ctx, query).Scan(&owner, &balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sc.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &models.LedgerMeta{
		Owner:           common.HexToAddress(owner),
		PlatformBalance: models.Amount(balance),
	}, nil
}

func (r *PostgresRepository) Init(ctx context.Context, m *models.LedgerMeta) error {
	query := `
		INSERT INTO ledger_meta (id, owner_address, platform_balance)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, m.Owner.Hex(), int64(m.PlatformBalance)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetOwner(ctx context.Context, owner common.Address) error {
	query := `
		UPDATE ledger_meta
		SET owner_address = $1, updated_at = now()
		WHERE id = 1
	`
	return r.update(ctx, query, owner.Hex())
}

func (r *PostgresRepository) SetPlatformBalance(ctx context.Context, amount models.Amount) error {
	query := `
		UPDATE ledger_meta
		SET platform_balance = $1, updated_at = now()
		WHERE id = 1
	`
	return r.update(ctx, query, int64(amount))
}

func (r *PostgresRepository) update(ctx context.Context, query string, arg any) error {
	res, err := r.db.ExecContext(ctx, query, arg)
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
