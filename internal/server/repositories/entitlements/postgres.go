package entitlements

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

func (r *PostgresRepository) Create(ctx context.Context, e *models.Entitlement) error {
	query := `
		INSERT INTO entitlements (post_id, account, created_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, int64(e.PostID), e.Account.Hex(), e.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Entitlement, error) {
	query := `
		SELECT post_id, account, created_at
		FROM entitlements
		ORDER BY created_at, post_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Entitlement
	for rows.Next() {
		var (
			e       models.Entitlement
			postID  int64
			account string
		)
		if err := rows.Scan(&postID, &account, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.PostID = uint64(postID)
		e.Account = common.HexToAddress(account)
		e.CreatedAt = e.CreatedAt.UTC()
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
