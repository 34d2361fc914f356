// Package session persists CLI sign-in state so one-shot commands can reuse
// tokens issued by an earlier login.
package session

import (
	"context"

	"github.com/kunalsinghdadhwal/solcast/internal/client/models"
)

type Repository interface {
	// Get returns the session of endpoint, or (nil, nil) if there is none.
	Get(ctx context.Context, endpoint string) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, endpoint string) error
}
