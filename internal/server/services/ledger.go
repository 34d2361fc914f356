package services

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/logging"
	"github.com/kunalsinghdadhwal/solcast/internal/server/ledger"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
)

// EventPublisher fans committed ledger events out to observers.
type EventPublisher interface {
	Publish(ctx context.Context, events []models.Event) error
}

// ContentURLs presigns content transfers.
type ContentURLs interface {
	PresignUpload(ctx context.Context) (key, url string, err error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

// Deposits reports the funds an account can spend on paid content.
type Deposits interface {
	Deposit(ctx context.Context, address common.Address) (models.Amount, error)
}

// LedgerService exposes the ledger to the transport layer. Events of every
// successful mutation are forwarded to the publisher; a publishing failure
// is logged and never fails the operation, which is already committed.
type LedgerService struct {
	ledger    *ledger.Ledger
	publisher EventPublisher
	content   ContentURLs
	deposits  Deposits
	logger    logging.Logger
}

func NewLedgerService(l *ledger.Ledger, p EventPublisher, c ContentURLs, d Deposits, logger logging.Logger) *LedgerService {
	return &LedgerService{
		ledger:    l,
		publisher: p,
		content:   c,
		deposits:  d,
		logger:    logger.With("module", "ledger_service"),
	}
}

func (s *LedgerService) publish(ctx context.Context, events []models.Event) {
	if len(events) == 0 || s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events); err != nil {
		s.logger.Error(ctx, "publishing events", "error", err, "first_seq", events[0].Seq)
	}
}

func (s *LedgerService) PublishFreeContent(ctx context.Context, caller common.Address, content string) (uint64, []models.Event, error) {
	id, events, err := s.ledger.PublishFreeContent(ctx, caller, content)
	if err != nil {
		return 0, nil, err
	}
	s.logger.Info(ctx, "free content published", "post_id", id, "author", caller.Hex())
	s.publish(ctx, events)
	return id, events, nil
}

func (s *LedgerService) PublishPaidContent(ctx context.Context, caller common.Address, content string, price models.Amount) (uint64, []models.Event, error) {
	id, events, err := s.ledger.PublishPaidContent(ctx, caller, content, price)
	if err != nil {
		return 0, nil, err
	}
	s.logger.Info(ctx, "paid content published", "post_id", id, "author", caller.Hex(), "price", uint64(price))
	s.publish(ctx, events)
	return id, events, nil
}

func (s *LedgerService) AccessContent(ctx context.Context, caller common.Address, postID uint64, payment models.Amount) (string, []models.Event, error) {
	content, events, err := s.ledger.AccessContent(ctx, caller, postID, payment)
	if err != nil {
		return "", nil, err
	}
	if len(events) > 0 {
		s.logger.Info(ctx, "content purchased", "post_id", postID, "reader", caller.Hex(), "amount", uint64(events[0].Amount))
	}
	s.publish(ctx, events)
	return content, events, nil
}

func (s *LedgerService) ViewContent(_ context.Context, caller common.Address, postID uint64) (string, error) {
	return s.ledger.ViewContent(caller, postID)
}

func (s *LedgerService) GetPostInfo(_ context.Context, postID uint64) (models.PostInfo, error) {
	return s.ledger.GetPostInfo(postID)
}

func (s *LedgerService) GetUserPosts(_ context.Context, address common.Address) []uint64 {
	return s.ledger.GetUserPosts(address)
}

func (s *LedgerService) CreatorBalance(_ context.Context, address common.Address) models.Amount {
	return s.ledger.CreatorBalance(address)
}

// Sync journals changes that were applied while the journal was failing.
func (s *LedgerService) Sync(ctx context.Context) error {
	return s.ledger.Sync(ctx)
}

func (s *LedgerService) Deposit(ctx context.Context, address common.Address) (models.Amount, error) {
	return s.deposits.Deposit(ctx, address)
}

func (s *LedgerService) Info(_ context.Context) models.LedgerInfo {
	return s.ledger.Info()
}

func (s *LedgerService) WithdrawCreatorBalance(ctx context.Context, caller common.Address) (models.Amount, []models.Event, error) {
	amount, events, err := s.ledger.WithdrawCreatorBalance(ctx, caller)
	if err != nil {
		return 0, nil, err
	}
	s.logger.Info(ctx, "creator balance withdrawn", "creator", caller.Hex(), "amount", uint64(amount))
	s.publish(ctx, events)
	return amount, events, nil
}

func (s *LedgerService) WithdrawPlatformFees(ctx context.Context, caller common.Address) (models.Amount, []models.Event, error) {
	amount, events, err := s.ledger.WithdrawPlatformFees(ctx, caller)
	if err != nil {
		return 0, nil, err
	}
	s.logger.Info(ctx, "platform fees withdrawn", "owner", caller.Hex(), "amount", uint64(amount))
	s.publish(ctx, events)
	return amount, events, nil
}

func (s *LedgerService) TransferOwnership(ctx context.Context, caller, newOwner common.Address) ([]models.Event, error) {
	events, err := s.ledger.TransferOwnership(ctx, caller, newOwner)
	if err != nil {
		return nil, err
	}
	s.logger.Warn(ctx, "ownership transferred", "from", caller.Hex(), "to", newOwner.Hex())
	s.publish(ctx, events)
	return events, nil
}

func (s *LedgerService) RenounceOwnership(ctx context.Context, caller common.Address) ([]models.Event, error) {
	events, err := s.ledger.RenounceOwnership(ctx, caller)
	if err != nil {
		return nil, err
	}
	s.logger.Warn(ctx, "ownership renounced", "by", caller.Hex())
	s.publish(ctx, events)
	return events, nil
}

func (s *LedgerService) Owner() common.Address {
	return s.ledger.Owner()
}

// RequestUploadURL returns an object key to publish and a URL to upload it to.
func (s *LedgerService) RequestUploadURL(ctx context.Context) (string, string, error) {
	return s.content.PresignUpload(ctx)
}

// GetContentURL presigns a download of a post's content for a caller who may
// read it: free posts, the author, and accounts that paid.
func (s *LedgerService) GetContentURL(ctx context.Context, caller common.Address, postID uint64) (string, error) {
	post, err := s.ledger.CanRead(caller, postID)
	if err != nil {
		return "", err
	}
	return s.content.PresignDownload(ctx, post.Content)
}

func (s *LedgerService) ListEvents(ctx context.Context, sinceSeq uint64, limit int) ([]models.Event, error) {
	return s.ledger.EventsSince(ctx, sinceSeq, limit)
}
