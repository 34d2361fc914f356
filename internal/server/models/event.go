package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type EventKind string

const (
	EventContentPublished        EventKind = "ContentPublished"
	EventContentAccessed         EventKind = "ContentAccessed"
	EventCreatorPaid             EventKind = "CreatorPaid"
	EventCreatorBalanceWithdrawn EventKind = "CreatorBalanceWithdrawn"
	EventPlatformFeeWithdrawn    EventKind = "PlatformFeeWithdrawn"
	EventOwnershipTransferred    EventKind = "OwnershipTransferred"
)

// Event is one entry of the ledger's append-only log. Seq starts at 1 and
// increases by one per event. Fields that do not apply to a kind are zero:
//
//	ContentPublished        PostID, Account=author, ContentType, Amount=price
//	ContentAccessed         PostID, Account=reader, Amount=price paid
//	CreatorPaid             PostID, Account=creator, Amount=creator share
//	CreatorBalanceWithdrawn Account=creator, Amount
//	PlatformFeeWithdrawn    Account=owner, Amount
//	OwnershipTransferred    Account=previous owner, Counterparty=new owner
type Event struct {
	Seq          uint64         `json:"seq"`
	Kind         EventKind      `json:"kind"`
	PostID       uint64         `json:"post_id"`
	Account      common.Address `json:"account"`
	Counterparty common.Address `json:"counterparty"`
	ContentType  ContentType    `json:"content_type"`
	Amount       Amount         `json:"amount"`
	Timestamp    time.Time      `json:"timestamp"`
}
