// Package entitlements persists which accounts have paid for which posts.
package entitlements

import (
	"context"

	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, e *models.Entitlement) error
	List(ctx context.Context) ([]models.Entitlement, error)
}
