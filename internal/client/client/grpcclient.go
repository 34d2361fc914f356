package client

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/api"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/kunalsinghdadhwal/solcast/internal/wallet"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.ContentLedgerClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	// onTokens is called with every pair obtained by a transparent refresh.
	onTokens func(access, refresh string)
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(sc.AccessTokenHeaderName)
	if token != "" {
		md.Set(sc.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	access, refresh := s.Tokens()
	ctx = withAccessToken(ctx, access)

	err := invoker(ctx, method, req, reply, cc, opts...)

	if err != nil {

		st, ok := status.FromError(err)
		if !ok {
			return err
		}

		if st.Code() != codes.Unauthenticated {
			return err
		}
		if st.Message() != sc.ErrTokenExpired.Error() {
			return err
		}

		if refresh == "" {
			return err
		}

		refreshTokenResponse, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refresh})
		if err != nil {
			return err
		}

		s.SetTokens(refreshTokenResponse.AccessToken, refreshTokenResponse.RefreshToken)
		if s.onTokens != nil {
			s.onTokens(refreshTokenResponse.AccessToken, refreshTokenResponse.RefreshToken)
		}

		// retry once with the new access token
		ctx = withAccessToken(ctx, refreshTokenResponse.AccessToken)
		return invoker(ctx, method, req, reply, cc, opts...)

	}

	return err
}

// NewLedgerClient connects to the ledger at endpointURL. onTokens may be nil.
func NewLedgerClient(endpointURL string, onTokens func(access, refresh string), opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, onTokens: onTokens}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewContentLedgerClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func (s *GRPCClient) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil

}

// Login proves control of key's address: it asks for a challenge, signs it
// and exchanges the signature for tokens.
func (s *GRPCClient) Login(ctx context.Context, key *ecdsa.PrivateKey) (common.Address, error) {

	address := wallet.Address(key)

	ch, err := s.client.RequestChallenge(ctx, &api.RequestChallengeRequest{Address: address.Hex()})
	if err != nil {
		return common.Address{}, s.mapError(err)
	}

	sig, err := wallet.Sign(ch.Message, key)
	if err != nil {
		return common.Address{}, err
	}

	resp, err := s.client.Login(ctx, &api.LoginRequest{Address: address.Hex(), Signature: sig})
	if err != nil {
		return common.Address{}, s.mapError(err)
	}

	s.SetTokens(resp.AccessToken, resp.RefreshToken)

	return address, nil

}

func (s *GRPCClient) PublishFreeContent(ctx context.Context, content string) (*api.PublishResponse, error) {
	resp, err := s.client.PublishFreeContent(ctx, &api.PublishFreeContentRequest{Content: content})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) PublishPaidContent(ctx context.Context, content string, price uint64) (*api.PublishResponse, error) {
	resp, err := s.client.PublishPaidContent(ctx, &api.PublishPaidContentRequest{Content: content, Price: price})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) AccessContent(ctx context.Context, postID, payment uint64) (*api.AccessContentResponse, error) {
	resp, err := s.client.AccessContent(ctx, &api.AccessContentRequest{PostID: postID, Payment: payment})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ViewContent(ctx context.Context, postID uint64) (string, error) {
	resp, err := s.client.ViewContent(ctx, &api.ViewContentRequest{PostID: postID})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Content, nil
}

func (s *GRPCClient) GetPostInfo(ctx context.Context, postID uint64) (*api.PostInfo, error) {
	resp, err := s.client.GetPostInfo(ctx, &api.GetPostInfoRequest{PostID: postID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) GetUserPosts(ctx context.Context, address common.Address) ([]uint64, error) {
	resp, err := s.client.GetUserPosts(ctx, &api.GetUserPostsRequest{Address: address.Hex()})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.PostIDs, nil
}

func (s *GRPCClient) GetCreatorBalance(ctx context.Context, address common.Address) (uint64, error) {
	resp, err := s.client.GetCreatorBalance(ctx, &api.GetCreatorBalanceRequest{Address: address.Hex()})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.Amount, nil
}

func (s *GRPCClient) GetDeposit(ctx context.Context) (uint64, error) {
	resp, err := s.client.GetDeposit(ctx, &api.GetDepositRequest{})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.Amount, nil
}

func (s *GRPCClient) GetLedgerInfo(ctx context.Context) (*api.LedgerInfo, error) {
	resp, err := s.client.GetLedgerInfo(ctx, &api.GetLedgerInfoRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) WithdrawCreatorBalance(ctx context.Context) (*api.WithdrawResponse, error) {
	resp, err := s.client.WithdrawCreatorBalance(ctx, &api.WithdrawRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) WithdrawPlatformFees(ctx context.Context) (*api.WithdrawResponse, error) {
	resp, err := s.client.WithdrawPlatformFees(ctx, &api.WithdrawRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) TransferOwnership(ctx context.Context, newOwner common.Address) (*api.OwnershipResponse, error) {
	resp, err := s.client.TransferOwnership(ctx, &api.TransferOwnershipRequest{NewOwner: newOwner.Hex()})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) RenounceOwnership(ctx context.Context) (*api.OwnershipResponse, error) {
	resp, err := s.client.RenounceOwnership(ctx, &api.RenounceOwnershipRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) RequestUploadURL(ctx context.Context) (string, string, error) {
	resp, err := s.client.RequestUploadURL(ctx, &api.RequestUploadURLRequest{})
	if err != nil {
		return "", "", s.mapError(err)
	}
	return resp.Key, resp.URL, nil
}

func (s *GRPCClient) GetContentURL(ctx context.Context, postID uint64) (string, error) {
	resp, err := s.client.GetContentURL(ctx, &api.GetContentURLRequest{PostID: postID})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}

func (s *GRPCClient) ListEvents(ctx context.Context, sinceSeq uint64, limit uint32) ([]*api.Event, error) {
	resp, err := s.client.ListEvents(ctx, &api.ListEventsRequest{SinceSeq: sinceSeq, Limit: limit})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Events, nil
}
