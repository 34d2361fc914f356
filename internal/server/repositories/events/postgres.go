package events

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

func (r *PostgresRepository) Create(ctx context.Context, e *models.Event) error {
	query := `
		INSERT INTO events (seq, kind, post_id, account, counterparty, content_type, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := r.db.ExecContext(ctx, query,
		int64(e.Seq), string(e.Kind), int64(e.PostID), e.Account.Hex(), e.Counterparty.Hex(),
		int16(e.ContentType), int64(e.Amount), e.Timestamp); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Tail(ctx context.Context, n int) ([]models.Event, error) {
	query := `
		SELECT seq, kind, post_id, account, counterparty, content_type, amount, created_at
		FROM (
			SELECT seq, kind, post_id, account, counterparty, content_type, amount, created_at
			FROM events
			ORDER BY seq DESC
			LIMIT $1
		) tail
		ORDER BY seq
	`
	return r.query(ctx, query, n)
}

func (r *PostgresRepository) ListSince(ctx context.Context, seq uint64, limit int) ([]models.Event, error) {
	query := `
		SELECT seq, kind, post_id, account, counterparty, content_type, amount, created_at
		FROM events
		WHERE seq > $1
		ORDER BY seq
		LIMIT $2
	`
	// LIMIT NULL is no limit
	var lim any
	if limit > 0 {
		lim = limit
	}
	return r.query(ctx, query, int64(seq), lim)
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Event
	for rows.Next() {
		var (
			e                     models.Event
			seq, postID, amount   int64
			kind                  string
			account, counterparty string
			ct                    int16
		)
		if err := rows.Scan(&seq, &kind, &postID, &account, &counterparty, &ct, &amount, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.Seq = uint64(seq)
		e.Kind = models.EventKind(kind)
		e.PostID = uint64(postID)
		e.Account = common.HexToAddress(account)
		e.Counterparty = common.HexToAddress(counterparty)
		e.ContentType = models.ContentType(ct)
		e.Amount = models.Amount(amount)
		e.Timestamp = e.Timestamp.UTC()
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
