package grpc

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/api"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
	"github.com/kunalsinghdadhwal/solcast/internal/wallet"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// maxListEvents bounds a single ListEvents page.
const maxListEvents = 1000

// ledgerStatus maps ledger sentinels to gRPC status codes.
var ledgerStatus = []struct {
	err  error
	code codes.Code
}{
	{sc.ErrPostNotFound, codes.NotFound},
	{sc.ErrInvalidPrice, codes.InvalidArgument},
	{sc.ErrEmptyContent, codes.InvalidArgument},
	{sc.ErrInvalidOwner, codes.InvalidArgument},
	{sc.ErrInsufficientPayment, codes.FailedPrecondition},
	{sc.ErrNothingToWithdraw, codes.FailedPrecondition},
	{sc.ErrAccessDenied, codes.PermissionDenied},
	{sc.ErrNotOwner, codes.PermissionDenied},
	{sc.ErrUnauthorized, codes.PermissionDenied},
	{sc.ErrTransferFailed, codes.Aborted},
	{sc.ErrBalanceOverflow, codes.OutOfRange},
}

func (s *LedgerServer) toStatus(ctx context.Context, err error) error {
	for _, m := range ledgerStatus {
		if errors.Is(err, m.err) {
			return status.Error(m.code, m.err.Error())
		}
	}
	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

func caller(ctx context.Context) (common.Address, error) {
	a, ok := callerFromContext(ctx)
	if !ok {
		return common.Address{}, status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return a, nil
}

func parseAddress(s string) (common.Address, error) {
	a, err := wallet.ParseAddress(s)
	if err != nil {
		return common.Address{}, status.Error(codes.InvalidArgument, "invalid address")
	}
	return a, nil
}

func toAPIEvents(events []models.Event) []*api.Event {
	out := make([]*api.Event, 0, len(events))
	for _, e := range events {
		ev := &api.Event{
			Seq:       e.Seq,
			Kind:      string(e.Kind),
			PostID:    e.PostID,
			Account:   e.Account.Hex(),
			Amount:    uint64(e.Amount),
			Timestamp: e.Timestamp.Unix(),
		}
		if e.Counterparty != (common.Address{}) {
			ev.Counterparty = e.Counterparty.Hex()
		}
		if e.Kind == models.EventContentPublished {
			ev.ContentType = e.ContentType.String()
		}
		out = append(out, ev)
	}
	return out
}

func toAPIPostInfo(p models.PostInfo) *api.PostInfo {
	return &api.PostInfo{
		PostID:      p.ID,
		Author:      p.Author.Hex(),
		ContentType: p.ContentType.String(),
		Price:       uint64(p.Price),
		Timestamp:   p.Timestamp.Unix(),
	}
}

func (s *LedgerServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

func (s *LedgerServer) RequestChallenge(ctx context.Context, req *api.RequestChallengeRequest) (*api.RequestChallengeResponse, error) {

	address, err := parseAddress(req.Address)
	if err != nil {
		return nil, err
	}

	c, err := s.auth.RequestChallenge(ctx, address)
	if err != nil {
		s.logger.Error(ctx, "challenge failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &api.RequestChallengeResponse{Message: c.Message, ExpiresAt: c.Expires.Unix()}, nil

}

func (s *LedgerServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {

	address, err := parseAddress(req.Address)
	if err != nil {
		return nil, err
	}

	tokens, err := s.auth.Login(ctx, address, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, sc.ErrorUnauthorized):
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		case errors.Is(err, sc.ErrChallengeExpired):
			return nil, status.Error(codes.Unauthenticated, "challenge expired")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "Logged in", "address", address.Hex())
	return &api.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil

}

func (s *LedgerServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {

	tokens, err := s.auth.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, sc.ErrorUnauthorized):
			return nil, status.Error(codes.Unauthenticated, "unauthorized")
		case errors.Is(err, sc.ErrRefreshTokenExpired):
			return nil, status.Error(codes.Unauthenticated, "refresh token expired")
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &api.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil

}

func (s *LedgerServer) PublishFreeContent(ctx context.Context, req *api.PublishFreeContentRequest) (*api.PublishResponse, error) {
	author, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	id, events, err := s.ledger.PublishFreeContent(ctx, author, req.Content)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.PublishResponse{PostID: id, Events: toAPIEvents(events)}, nil
}

func (s *LedgerServer) PublishPaidContent(ctx context.Context, req *api.PublishPaidContentRequest) (*api.PublishResponse, error) {
	author, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	id, events, err := s.ledger.PublishPaidContent(ctx, author, req.Content, models.Amount(req.Price))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.PublishResponse{PostID: id, Events: toAPIEvents(events)}, nil
}

func (s *LedgerServer) AccessContent(ctx context.Context, req *api.AccessContentRequest) (*api.AccessContentResponse, error) {
	reader, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	content, events, err := s.ledger.AccessContent(ctx, reader, req.PostID, models.Amount(req.Payment))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.AccessContentResponse{Content: content, Events: toAPIEvents(events)}, nil
}

func (s *LedgerServer) ViewContent(ctx context.Context, req *api.ViewContentRequest) (*api.ViewContentResponse, error) {
	reader, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	content, err := s.ledger.ViewContent(ctx, reader, req.PostID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.ViewContentResponse{Content: content}, nil
}

func (s *LedgerServer) GetPostInfo(ctx context.Context, req *api.GetPostInfoRequest) (*api.PostInfo, error) {
	info, err := s.ledger.GetPostInfo(ctx, req.PostID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return toAPIPostInfo(info), nil
}

func (s *LedgerServer) GetUserPosts(ctx context.Context, req *api.GetUserPostsRequest) (*api.GetUserPostsResponse, error) {
	address, err := parseAddress(req.Address)
	if err != nil {
		return nil, err
	}
	return &api.GetUserPostsResponse{PostIDs: s.ledger.GetUserPosts(ctx, address)}, nil
}

func (s *LedgerServer) GetCreatorBalance(ctx context.Context, req *api.GetCreatorBalanceRequest) (*api.BalanceResponse, error) {
	address, err := parseAddress(req.Address)
	if err != nil {
		return nil, err
	}
	return &api.BalanceResponse{
		Address: address.Hex(),
		Amount:  uint64(s.ledger.CreatorBalance(ctx, address)),
	}, nil
}

func (s *LedgerServer) GetDeposit(ctx context.Context, req *api.GetDepositRequest) (*api.BalanceResponse, error) {
	payer, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	amount, err := s.ledger.Deposit(ctx, payer)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.BalanceResponse{Address: payer.Hex(), Amount: uint64(amount)}, nil
}

func (s *LedgerServer) GetLedgerInfo(ctx context.Context, req *api.GetLedgerInfoRequest) (*api.LedgerInfo, error) {
	info := s.ledger.Info(ctx)
	return &api.LedgerInfo{
		Owner:              info.Owner.Hex(),
		Renounced:          info.Renounced,
		PlatformFeePercent: info.PlatformFeePercent,
		PaymentUnit:        info.PaymentUnit,
		NextPostID:         info.NextPostID,
		PlatformBalance:    uint64(info.PlatformBalance),
	}, nil
}

func (s *LedgerServer) WithdrawCreatorBalance(ctx context.Context, req *api.WithdrawRequest) (*api.WithdrawResponse, error) {
	creator, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	amount, events, err := s.ledger.WithdrawCreatorBalance(ctx, creator)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.WithdrawResponse{Amount: uint64(amount), Events: toAPIEvents(events)}, nil
}

func (s *LedgerServer) WithdrawPlatformFees(ctx context.Context, req *api.WithdrawRequest) (*api.WithdrawResponse, error) {
	owner, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	amount, events, err := s.ledger.WithdrawPlatformFees(ctx, owner)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.WithdrawResponse{Amount: uint64(amount), Events: toAPIEvents(events)}, nil
}

func (s *LedgerServer) TransferOwnership(ctx context.Context, req *api.TransferOwnershipRequest) (*api.OwnershipResponse, error) {
	owner, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	// the zero address is a valid hex string but not a valid owner; leave
	// that decision to the ledger
	if !common.IsHexAddress(req.NewOwner) {
		return nil, status.Error(codes.InvalidArgument, "invalid address")
	}

	events, err := s.ledger.TransferOwnership(ctx, owner, common.HexToAddress(req.NewOwner))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.OwnershipResponse{Owner: s.ledger.Owner().Hex(), Events: toAPIEvents(events)}, nil
}

func (s *LedgerServer) RenounceOwnership(ctx context.Context, req *api.RenounceOwnershipRequest) (*api.OwnershipResponse, error) {
	owner, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	events, err := s.ledger.RenounceOwnership(ctx, owner)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.OwnershipResponse{Owner: s.ledger.Owner().Hex(), Events: toAPIEvents(events)}, nil
}

func (s *LedgerServer) RequestUploadURL(ctx context.Context, req *api.RequestUploadURLRequest) (*api.RequestUploadURLResponse, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}

	key, url, err := s.ledger.RequestUploadURL(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.RequestUploadURLResponse{Key: key, URL: url}, nil
}

func (s *LedgerServer) GetContentURL(ctx context.Context, req *api.GetContentURLRequest) (*api.GetContentURLResponse, error) {
	reader, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	url, err := s.ledger.GetContentURL(ctx, reader, req.PostID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &api.GetContentURLResponse{URL: url}, nil
}

func (s *LedgerServer) ListEvents(ctx context.Context, req *api.ListEventsRequest) (*api.ListEventsResponse, error) {
	limit := int(req.Limit)
	if limit <= 0 || limit > maxListEvents {
		limit = maxListEvents
	}
	events, err := s.ledger.ListEvents(ctx, req.SinceSeq, limit)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &api.ListEventsResponse{Events: toAPIEvents(events)}, nil
}
