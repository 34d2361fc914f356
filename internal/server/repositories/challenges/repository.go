// Package challenges stores the pending sign-in challenge of each address.
package challenges

import (
	"context"

	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

type Repository interface {
	// Put stores c, replacing any pending challenge for the same address.
	Put(ctx context.Context, c *models.Challenge) error
	// Find returns common.ErrorNotFound when address has no pending challenge.
	Find(ctx context.Context, address string) (*models.Challenge, error)
	// Delete consumes the pending challenge of address. It returns
	// common.ErrorNotFound when another sign-in consumed it first.
	Delete(ctx context.Context, address string) error
}
