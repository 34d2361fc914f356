package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "solcast.ledger.ContentLedger"

// FullMethod returns the gRPC method path for a method of ContentLedger.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// ContentLedgerServer is the server API for the ContentLedger service.
type ContentLedgerServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RequestChallenge(context.Context, *RequestChallengeRequest) (*RequestChallengeResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	PublishFreeContent(context.Context, *PublishFreeContentRequest) (*PublishResponse, error)
	PublishPaidContent(context.Context, *PublishPaidContentRequest) (*PublishResponse, error)
	AccessContent(context.Context, *AccessContentRequest) (*AccessContentResponse, error)
	ViewContent(context.Context, *ViewContentRequest) (*ViewContentResponse, error)
	GetPostInfo(context.Context, *GetPostInfoRequest) (*PostInfo, error)
	GetUserPosts(context.Context, *GetUserPostsRequest) (*GetUserPostsResponse, error)
	GetCreatorBalance(context.Context, *GetCreatorBalanceRequest) (*BalanceResponse, error)
	GetDeposit(context.Context, *GetDepositRequest) (*BalanceResponse, error)
	GetLedgerInfo(context.Context, *GetLedgerInfoRequest) (*LedgerInfo, error)
	WithdrawCreatorBalance(context.Context, *WithdrawRequest) (*WithdrawResponse, error)
	WithdrawPlatformFees(context.Context, *WithdrawRequest) (*WithdrawResponse, error)
	TransferOwnership(context.Context, *TransferOwnershipRequest) (*OwnershipResponse, error)
	RenounceOwnership(context.Context, *RenounceOwnershipRequest) (*OwnershipResponse, error)
	RequestUploadURL(context.Context, *RequestUploadURLRequest) (*RequestUploadURLResponse, error)
	GetContentURL(context.Context, *GetContentURLRequest) (*GetContentURLResponse, error)
	ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error)
}

// UnimplementedContentLedgerServer can be embedded to satisfy
// ContentLedgerServer for methods a server does not provide.
type UnimplementedContentLedgerServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedContentLedgerServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedContentLedgerServer) RequestChallenge(context.Context, *RequestChallengeRequest) (*RequestChallengeResponse, error) {
	return nil, unimplemented("RequestChallenge")
}
func (UnimplementedContentLedgerServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedContentLedgerServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedContentLedgerServer) PublishFreeContent(context.Context, *PublishFreeContentRequest) (*PublishResponse, error) {
	return nil, unimplemented("PublishFreeContent")
}
func (UnimplementedContentLedgerServer) PublishPaidContent(context.Context, *PublishPaidContentRequest) (*PublishResponse, error) {
	return nil, unimplemented("PublishPaidContent")
}
func (UnimplementedContentLedgerServer) AccessContent(context.Context, *AccessContentRequest) (*AccessContentResponse, error) {
	return nil, unimplemented("AccessContent")
}
func (UnimplementedContentLedgerServer) ViewContent(context.Context, *ViewContentRequest) (*ViewContentResponse, error) {
	return nil, unimplemented("ViewContent")
}
func (UnimplementedContentLedgerServer) GetPostInfo(context.Context, *GetPostInfoRequest) (*PostInfo, error) {
	return nil, unimplemented("GetPostInfo")
}
func (UnimplementedContentLedgerServer) GetUserPosts(context.Context, *GetUserPostsRequest) (*GetUserPostsResponse, error) {
	return nil, unimplemented("GetUserPosts")
}
func (UnimplementedContentLedgerServer) GetCreatorBalance(context.Context, *GetCreatorBalanceRequest) (*BalanceResponse, error) {
	return nil, unimplemented("GetCreatorBalance")
}
func (UnimplementedContentLedgerServer) GetDeposit(context.Context, *GetDepositRequest) (*BalanceResponse, error) {
	return nil, unimplemented("GetDeposit")
}
func (UnimplementedContentLedgerServer) GetLedgerInfo(context.Context, *GetLedgerInfoRequest) (*LedgerInfo, error) {
	return nil, unimplemented("GetLedgerInfo")
}
func (UnimplementedContentLedgerServer) WithdrawCreatorBalance(context.Context, *WithdrawRequest) (*WithdrawResponse, error) {
	return nil, unimplemented("WithdrawCreatorBalance")
}
func (UnimplementedContentLedgerServer) WithdrawPlatformFees(context.Context, *WithdrawRequest) (*WithdrawResponse, error) {
	return nil, unimplemented("WithdrawPlatformFees")
}
func (UnimplementedContentLedgerServer) TransferOwnership(context.Context, *TransferOwnershipRequest) (*OwnershipResponse, error) {
	return nil, unimplemented("TransferOwnership")
}
func (UnimplementedContentLedgerServer) RenounceOwnership(context.Context, *RenounceOwnershipRequest) (*OwnershipResponse, error) {
	return nil, unimplemented("RenounceOwnership")
}
func (UnimplementedContentLedgerServer) RequestUploadURL(context.Context, *RequestUploadURLRequest) (*RequestUploadURLResponse, error) {
	return nil, unimplemented("RequestUploadURL")
}
func (UnimplementedContentLedgerServer) GetContentURL(context.Context, *GetContentURLRequest) (*GetContentURLResponse, error) {
	return nil, unimplemented("GetContentURL")
}
func (UnimplementedContentLedgerServer) ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error) {
	return nil, unimplemented("ListEvents")
}

func unary[Req, Resp any](name string, call func(ContentLedgerServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ContentLedgerServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ContentLedgerServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the ContentLedger service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ContentLedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Ping", ContentLedgerServer.Ping),
		unary("RequestChallenge", ContentLedgerServer.RequestChallenge),
		unary("Login", ContentLedgerServer.Login),
		unary("RefreshToken", ContentLedgerServer.RefreshToken),
		unary("PublishFreeContent", ContentLedgerServer.PublishFreeContent),
		unary("PublishPaidContent", ContentLedgerServer.PublishPaidContent),
		unary("AccessContent", ContentLedgerServer.AccessContent),
		unary("ViewContent", ContentLedgerServer.ViewContent),
		unary("GetPostInfo", ContentLedgerServer.GetPostInfo),
		unary("GetUserPosts", ContentLedgerServer.GetUserPosts),
		unary("GetCreatorBalance", ContentLedgerServer.GetCreatorBalance),
		unary("GetDeposit", ContentLedgerServer.GetDeposit),
		unary("GetLedgerInfo", ContentLedgerServer.GetLedgerInfo),
		unary("WithdrawCreatorBalance", ContentLedgerServer.WithdrawCreatorBalance),
		unary("WithdrawPlatformFees", ContentLedgerServer.WithdrawPlatformFees),
		unary("TransferOwnership", ContentLedgerServer.TransferOwnership),
		unary("RenounceOwnership", ContentLedgerServer.RenounceOwnership),
		unary("RequestUploadURL", ContentLedgerServer.RequestUploadURL),
		unary("GetContentURL", ContentLedgerServer.GetContentURL),
		unary("ListEvents", ContentLedgerServer.ListEvents),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "solcast/ledger.json",
}

func RegisterContentLedgerServer(s grpc.ServiceRegistrar, srv ContentLedgerServer) {
	s.RegisterService(&ServiceDesc, srv)
}
