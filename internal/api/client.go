package api

import (
	"context"

	"google.golang.org/grpc"
)

// ContentLedgerClient is the client API for the ContentLedger service.
type ContentLedgerClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	RequestChallenge(ctx context.Context, in *RequestChallengeRequest, opts ...grpc.CallOption) (*RequestChallengeResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	PublishFreeContent(ctx context.Context, in *PublishFreeContentRequest, opts ...grpc.CallOption) (*PublishResponse, error)
	PublishPaidContent(ctx context.Context, in *PublishPaidContentRequest, opts ...grpc.CallOption) (*PublishResponse, error)
	AccessContent(ctx context.Context, in *AccessContentRequest, opts ...grpc.CallOption) (*AccessContentResponse, error)
	ViewContent(ctx context.Context, in *ViewContentRequest, opts ...grpc.CallOption) (*ViewContentResponse, error)
	GetPostInfo(ctx context.Context, in *GetPostInfoRequest, opts ...grpc.CallOption) (*PostInfo, error)
	GetUserPosts(ctx context.Context, in *GetUserPostsRequest, opts ...grpc.CallOption) (*GetUserPostsResponse, error)
	GetCreatorBalance(ctx context.Context, in *GetCreatorBalanceRequest, opts ...grpc.CallOption) (*BalanceResponse, error)
	GetDeposit(ctx context.Context, in *GetDepositRequest, opts ...grpc.CallOption) (*BalanceResponse, error)
	GetLedgerInfo(ctx context.Context, in *GetLedgerInfoRequest, opts ...grpc.CallOption) (*LedgerInfo, error)
	WithdrawCreatorBalance(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*WithdrawResponse, error)
	WithdrawPlatformFees(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*WithdrawResponse, error)
	TransferOwnership(ctx context.Context, in *TransferOwnershipRequest, opts ...grpc.CallOption) (*OwnershipResponse, error)
	RenounceOwnership(ctx context.Context, in *RenounceOwnershipRequest, opts ...grpc.CallOption) (*OwnershipResponse, error)
	RequestUploadURL(ctx context.Context, in *RequestUploadURLRequest, opts ...grpc.CallOption) (*RequestUploadURLResponse, error)
	GetContentURL(ctx context.Context, in *GetContentURLRequest, opts ...grpc.CallOption) (*GetContentURLResponse, error)
	ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error)
}

type contentLedgerClient struct {
	cc grpc.ClientConnInterface
}

func NewContentLedgerClient(cc grpc.ClientConnInterface) ContentLedgerClient {
	return &contentLedgerClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(Codec)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *contentLedgerClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, "Ping", in, opts)
}

func (c *contentLedgerClient) RequestChallenge(ctx context.Context, in *RequestChallengeRequest, opts ...grpc.CallOption) (*RequestChallengeResponse, error) {
	return invoke[RequestChallengeResponse](ctx, c.cc, "RequestChallenge", in, opts)
}

func (c *contentLedgerClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, "Login", in, opts)
}

func (c *contentLedgerClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, "RefreshToken", in, opts)
}

func (c *contentLedgerClient) PublishFreeContent(ctx context.Context, in *PublishFreeContentRequest, opts ...grpc.CallOption) (*PublishResponse, error) {
	return invoke[PublishResponse](ctx, c.cc, "PublishFreeContent", in, opts)
}

func (c *contentLedgerClient) PublishPaidContent(ctx context.Context, in *PublishPaidContentRequest, opts ...grpc.CallOption) (*PublishResponse, error) {
	return invoke[PublishResponse](ctx, c.cc, "PublishPaidContent", in, opts)
}

func (c *contentLedgerClient) AccessContent(ctx context.Context, in *AccessContentRequest, opts ...grpc.CallOption) (*AccessContentResponse, error) {
	return invoke[AccessContentResponse](ctx, c.cc, "AccessContent", in, opts)
}

func (c *contentLedgerClient) ViewContent(ctx context.Context, in *ViewContentRequest, opts ...grpc.CallOption) (*ViewContentResponse, error) {
	return invoke[ViewContentResponse](ctx, c.cc, "ViewContent", in, opts)
}

func (c *contentLedgerClient) GetPostInfo(ctx context.Context, in *GetPostInfoRequest, opts ...grpc.CallOption) (*PostInfo, error) {
	return invoke[PostInfo](ctx, c.cc, "GetPostInfo", in, opts)
}

func (c *contentLedgerClient) GetUserPosts(ctx context.Context, in *GetUserPostsRequest, opts ...grpc.CallOption) (*GetUserPostsResponse, error) {
	return invoke[GetUserPostsResponse](ctx, c.cc, "GetUserPosts", in, opts)
}

func (c *contentLedgerClient) GetCreatorBalance(ctx context.Context, in *GetCreatorBalanceRequest, opts ...grpc.CallOption) (*BalanceResponse, error) {
	return invoke[BalanceResponse](ctx, c.cc, "GetCreatorBalance", in, opts)
}

func (c *contentLedgerClient) GetDeposit(ctx context.Context, in *GetDepositRequest, opts ...grpc.CallOption) (*BalanceResponse, error) {
	return invoke[BalanceResponse](ctx, c.cc, "GetDeposit", in, opts)
}

func (c *contentLedgerClient) GetLedgerInfo(ctx context.Context, in *GetLedgerInfoRequest, opts ...grpc.CallOption) (*LedgerInfo, error) {
	return invoke[LedgerInfo](ctx, c.cc, "GetLedgerInfo", in, opts)
}

func (c *contentLedgerClient) WithdrawCreatorBalance(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*WithdrawResponse, error) {
	return invoke[WithdrawResponse](ctx, c.cc, "WithdrawCreatorBalance", in, opts)
}

func (c *contentLedgerClient) WithdrawPlatformFees(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*WithdrawResponse, error) {
	return invoke[WithdrawResponse](ctx, c.cc, "WithdrawPlatformFees", in, opts)
}

func (c *contentLedgerClient) TransferOwnership(ctx context.Context, in *TransferOwnershipRequest, opts ...grpc.CallOption) (*OwnershipResponse, error) {
	return invoke[OwnershipResponse](ctx, c.cc, "TransferOwnership", in, opts)
}

func (c *contentLedgerClient) RenounceOwnership(ctx context.Context, in *RenounceOwnershipRequest, opts ...grpc.CallOption) (*OwnershipResponse, error) {
	return invoke[OwnershipResponse](ctx, c.cc, "RenounceOwnership", in, opts)
}

func (c *contentLedgerClient) RequestUploadURL(ctx context.Context, in *RequestUploadURLRequest, opts ...grpc.CallOption) (*RequestUploadURLResponse, error) {
	return invoke[RequestUploadURLResponse](ctx, c.cc, "RequestUploadURL", in, opts)
}

func (c *contentLedgerClient) GetContentURL(ctx context.Context, in *GetContentURLRequest, opts ...grpc.CallOption) (*GetContentURLResponse, error) {
	return invoke[GetContentURLResponse](ctx, c.cc, "GetContentURL", in, opts)
}

func (c *contentLedgerClient) ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error) {
	return invoke[ListEventsResponse](ctx, c.cc, "ListEvents", in, opts)
}
