package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// LedgerMeta is the singleton row holding ledger-wide values.
// A zero Owner means ownership was renounced.
type LedgerMeta struct {
	Owner           common.Address
	PlatformBalance Amount
}

// LedgerInfo describes a running ledger to clients.
type LedgerInfo struct {
	Owner              common.Address
	Renounced          bool
	PlatformFeePercent uint64
	PaymentUnit        string
	NextPostID         uint64
	PlatformBalance    Amount
}

type PayoutKind string

const (
	PayoutCreator  PayoutKind = "creator"
	PayoutPlatform PayoutKind = "platform"
)

type PayoutStatus string

// A payout is journaled as pending together with the zeroed balance, marked
// sent when released to settlement, and finally settled or failed.
const (
	PayoutPending PayoutStatus = "pending"
	PayoutSent    PayoutStatus = "sent"
	PayoutSettled PayoutStatus = "settled"
	PayoutFailed  PayoutStatus = "failed"
)

// Payout is a value transfer made to an account at the withdrawal boundary.
type Payout struct {
	ID        string
	Kind      PayoutKind
	Recipient common.Address
	Amount    Amount
	Status    PayoutStatus
	CreatedAt time.Time
}

type CaptureStatus string

// A capture is held when the payer's deposit is debited, applied in the same
// journal transaction that grants the entitlement, or refunded.
const (
	CaptureHeld     CaptureStatus = "held"
	CaptureApplied  CaptureStatus = "applied"
	CaptureRefunded CaptureStatus = "refunded"
)

// Capture is a payment taken from Payer's deposit for access to PostID.
type Capture struct {
	ID        string
	Payer     common.Address
	PostID    uint64
	Amount    Amount
	Status    CaptureStatus
	CreatedAt time.Time
}
