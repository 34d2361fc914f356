// Package posts declares the repository contract for published posts.
package posts

import (
	"context"

	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

type Repository interface {
	// Create inserts a post under its ledger-assigned ID.
	Create(ctx context.Context, p *models.Post) error
	// List returns every post ordered by ID.
	List(ctx context.Context) ([]models.Post, error)
}
