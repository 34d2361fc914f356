// Package refreshtokens declares the server-side repository contract for
// managing refresh tokens in persistent storage.
package refreshtokens

import (
	"context"
	"time"

	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores a new refresh token for address with an expiry of now+validity.
	Create(ctx context.Context, address string, token string, validity time.Duration) error

	// Find looks up a refresh token by its opaque token string.
	// Implementations return common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token by its token string. Implementations
	// return common.ErrorNotFound when the token is already gone.
	Delete(ctx context.Context, token string) error

	// DeleteExpired drops the tokens of address that expired before now and
	// reports how many were removed.
	DeleteExpired(ctx context.Context, address string, now time.Time) (int64, error)
}
