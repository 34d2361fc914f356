package ledger

import "github.com/kunalsinghdadhwal/solcast/internal/common"

// Aliases so callers of this package can match errors without importing common.
var (
	ErrPostNotFound        = common.ErrPostNotFound
	ErrEmptyContent        = common.ErrEmptyContent
	ErrInvalidPrice        = common.ErrInvalidPrice
	ErrInsufficientPayment = common.ErrInsufficientPayment
	ErrAccessDenied        = common.ErrAccessDenied
	ErrNothingToWithdraw   = common.ErrNothingToWithdraw
	ErrNotOwner            = common.ErrNotOwner
	ErrUnauthorized        = common.ErrUnauthorized
	ErrInvalidOwner        = common.ErrInvalidOwner
	ErrTransferFailed      = common.ErrTransferFailed
	ErrBalanceOverflow     = common.ErrBalanceOverflow
)
