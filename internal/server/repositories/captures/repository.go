// Package captures records payments taken from deposits for paid access.
package captures

import (
	"context"

	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Capture) error
	// Transition moves capture id from status from to status to. It returns
	// common.ErrorNotFound when no capture id has status from.
	Transition(ctx context.Context, id string, from, to models.CaptureStatus) error
	// ListHeld returns captures neither applied nor refunded, oldest first.
	ListHeld(ctx context.Context) ([]models.Capture, error)
}
