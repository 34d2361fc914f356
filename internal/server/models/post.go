// Package models defines server-side data models shared by the ledger core,
// repositories and the gRPC layer.
package models

import (
	"math"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Amount is a non-negative quantity of the platform's payment unit.
type Amount uint64

// MaxAmount is the largest price or balance the ledger accepts. It is bounded
// by the BIGINT columns balances are persisted in.
const MaxAmount Amount = math.MaxInt64

// ContentType distinguishes free posts from posts gated behind a payment.
type ContentType uint8

const (
	ContentFree ContentType = 0
	ContentPaid ContentType = 1
)

func (t ContentType) String() string {
	switch t {
	case ContentFree:
		return "free"
	case ContentPaid:
		return "paid"
	default:
		return "unknown"
	}
}

// Post is a published content record. All fields are immutable once Exists is set.
type Post struct {
	ID          uint64
	Author      common.Address
	ContentType ContentType
	// Content is an opaque reference (content-store key, IPFS CID, ...).
	Content   string
	Price     Amount
	Timestamp time.Time
	Exists    bool
}

// PostInfo is the public projection of a Post; it never carries Content.
type PostInfo struct {
	ID          uint64
	Author      common.Address
	ContentType ContentType
	Price       Amount
	Timestamp   time.Time
}

func (p *Post) Info() PostInfo {
	return PostInfo{
		ID:          p.ID,
		Author:      p.Author,
		ContentType: p.ContentType,
		Price:       p.Price,
		Timestamp:   p.Timestamp,
	}
}

// Entitlement records that Account paid for PostID.
type Entitlement struct {
	PostID    uint64
	Account   common.Address
	CreatedAt time.Time
}
