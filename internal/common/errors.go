// Package common defines shared constants and sentinel errors used across
// client and server layers of the content ledger. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token, bad wallet signature).
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidAddress   = errors.New("invalid address")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrChallengeExpired    = errors.New("challenge expired")

	// Ledger errors. Every one of them is terminal for the triggering call
	// and leaves ledger state unchanged.
	ErrPostNotFound        = errors.New("post not found")
	ErrEmptyContent        = errors.New("empty content reference")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrInsufficientPayment = errors.New("insufficient payment")
	ErrAccessDenied        = errors.New("access denied")
	ErrNothingToWithdraw   = errors.New("nothing to withdraw")
	ErrNotOwner            = errors.New("caller is not the owner")
	ErrUnauthorized        = errors.New("ownership renounced")
	ErrInvalidOwner        = errors.New("invalid owner")
	ErrTransferFailed      = errors.New("transfer failed")
	ErrBalanceOverflow     = errors.New("balance overflow")
)
