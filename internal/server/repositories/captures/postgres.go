package captures

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

func (r *PostgresRepository) Create(ctx context.Context, c *models.Capture) error {
	query := `
		INSERT INTO captures (id, payer, post_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query,
		c.ID, c.Payer.Hex(), int64(c.PostID), int64(c.Amount), string(c.Status), c.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Transition(ctx context.Context, id string, from, to models.CaptureStatus) error {
	query := `
		UPDATE captures
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
		return fmt.Errorf("capture %s not %s: %w", id, from, sc.ErrorNotFound)
	}
	return nil
}

func (r *PostgresRepository) ListHeld(ctx context.Context) ([]models.Capture, error) {
	query := `
		SELECT id, payer, post_id, amount, created_at
		FROM captures
		WHERE status = 'held'
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Capture
	for rows.Next() {
		var (
			c              models.Capture
			payer          string
			postID, amount int64
		)
		if err := rows.Scan(&c.ID, &payer, &postID, &amount, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		c.Payer = common.HexToAddress(payer)
		c.PostID = uint64(postID)
		c.Amount = models.Amount(amount)
		c.Status = models.CaptureHeld
		c.CreatedAt = c.CreatedAt.UTC()
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
