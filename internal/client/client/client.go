package client

import (
	"context"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/api"
)

// Client is what the CLI needs from the ledger backend.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Login(ctx context.Context, key *ecdsa.PrivateKey) (common.Address, error)
	SetTokens(access, refresh string)
	Tokens() (access, refresh string)

	PublishFreeContent(ctx context.Context, content string) (*api.PublishResponse, error)
	PublishPaidContent(ctx context.Context, content string, price uint64) (*api.PublishResponse, error)
	AccessContent(ctx context.Context, postID, payment uint64) (*api.AccessContentResponse, error)
	ViewContent(ctx context.Context, postID uint64) (string, error)
	GetPostInfo(ctx context.Context, postID uint64) (*api.PostInfo, error)
	GetUserPosts(ctx context.Context, address common.Address) ([]uint64, error)
	GetCreatorBalance(ctx context.Context, address common.Address) (uint64, error)
	GetDeposit(ctx context.Context) (uint64, error)
	GetLedgerInfo(ctx context.Context) (*api.LedgerInfo, error)
	WithdrawCreatorBalance(ctx context.Context) (*api.WithdrawResponse, error)
	WithdrawPlatformFees(ctx context.Context) (*api.WithdrawResponse, error)
	TransferOwnership(ctx context.Context, newOwner common.Address) (*api.OwnershipResponse, error)
	RenounceOwnership(ctx context.Context) (*api.OwnershipResponse, error)
	RequestUploadURL(ctx context.Context) (key, url string, err error)
	GetContentURL(ctx context.Context, postID uint64) (string, error)
	ListEvents(ctx context.Context, sinceSeq uint64, limit uint32) ([]*api.Event, error)
}
