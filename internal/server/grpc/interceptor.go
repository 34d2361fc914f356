package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/api"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const callerKey ctxKey = "caller"

// publicMethods can be called without an access token.
var publicMethods = map[string]bool{
	api.FullMethod("Ping"):              true,
	api.FullMethod("RequestChallenge"):  true,
	api.FullMethod("Login"):             true,
	api.FullMethod("RefreshToken"):      true,
	api.FullMethod("GetPostInfo"):       true,
	api.FullMethod("GetUserPosts"):      true,
	api.FullMethod("GetCreatorBalance"): true,
	api.FullMethod("GetLedgerInfo"):     true,
	api.FullMethod("ListEvents"):        true,
}

func callerFromContext(ctx context.Context) (common.Address, bool) {
	a, ok := ctx.Value(callerKey).(common.Address)
	return a, ok
}

func (s *LedgerServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(sc.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	address, err := auth.GetAddressFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, sc.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	ctx = context.WithValue(ctx, callerKey, address)

	return handler(ctx, req)
}

func (s *LedgerServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "code", status.Code(err).String(), "duration", time.Since(start))
	return resp, err
}
