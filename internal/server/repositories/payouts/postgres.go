package payouts

import (
	"context"
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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Payout) error {
	query := `
		INSERT INTO payouts (id, kind, recipient, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query,
		p.ID, string(p.Kind), p.Recipient.Hex(), int64(p.Amount), string(p.Status), p.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Transition(ctx context.Context, id string, from, to models.PayoutStatus) error {
	query := `
		UPDATE payouts
		SET status = $3
		WHERE id = $1 AND status = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, string(from), string(to))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("payout %s not %s: %w", id, from, sc.ErrorNotFound)
	}
	return nil
}

func (r *PostgresRepository) ListOpen(ctx context.Context) ([]models.Payout, error) {
	query := `
		SELECT id, kind, recipient, amount, status, created_at
		FROM payouts
		WHERE status IN ('pending', 'sent')
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Payout
	for rows.Next() {
		var (
			p                       models.Payout
			kind, recipient, status string
			amount                  int64
		)
		if err := rows.Scan(&p.ID, &kind, &recipient, &amount, &status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.Kind = models.PayoutKind(kind)
		p.Recipient = common.HexToAddress(recipient)
		p.Amount = models.Amount(amount)
		p.Status = models.PayoutStatus(status)
		p.CreatedAt = p.CreatedAt.UTC()
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
