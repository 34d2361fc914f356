package posts

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

func (r *PostgresRepository) Create(ctx context.Context, p *models.Post) error {
	query := `
		INSERT INTO posts (id, author, content_type, content, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query,
		int64(p.ID), p.Author.Hex(), int16(p.ContentType), p.Content, int64(p.Price), p.Timestamp); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Post, error) {
	query := `
		SELECT id, author, content_type, content, price, created_at
		FROM posts
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Post
	for rows.Next() {
		var (
			p      models.Post
			id     int64
			author string
			ct     int16
			price  int64
		)
		if err := rows.Scan(&id, &author, &ct, &p.Content, &price, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.ID = uint64(id)
		p.Author = common.HexToAddress(author)
		p.ContentType = models.ContentType(ct)
		p.Price = models.Amount(price)
		p.Timestamp = p.Timestamp.UTC()
		p.Exists = true
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
