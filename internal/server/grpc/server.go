package grpc

import (
	"context"
	"net"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/api"
	"github.com/kunalsinghdadhwal/solcast/internal/logging"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
	"github.com/kunalsinghdadhwal/solcast/internal/server/services"
	"google.golang.org/grpc"
)

// AuthService is the wallet sign-in surface used by the handlers.
type AuthService interface {
	RequestChallenge(ctx context.Context, address common.Address) (*models.Challenge, error)
	Login(ctx context.Context, address common.Address, signature string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// LedgerService is the ledger surface used by the handlers.
type LedgerService interface {
	PublishFreeContent(ctx context.Context, caller common.Address, content string) (uint64, []models.Event, error)
	PublishPaidContent(ctx context.Context, caller common.Address, content string, price models.Amount) (uint64, []models.Event, error)
	AccessContent(ctx context.Context, caller common.Address, postID uint64, payment models.Amount) (string, []models.Event, error)
	ViewContent(ctx context.Context, caller common.Address, postID uint64) (string, error)
	GetPostInfo(ctx context.Context, postID uint64) (models.PostInfo, error)
	GetUserPosts(ctx context.Context, address common.Address) []uint64
	CreatorBalance(ctx context.Context, address common.Address) models.Amount
	Deposit(ctx context.Context, address common.Address) (models.Amount, error)
	Info(ctx context.Context) models.LedgerInfo
	WithdrawCreatorBalance(ctx context.Context, caller common.Address) (models.Amount, []models.Event, error)
	WithdrawPlatformFees(ctx context.Context, caller common.Address) (models.Amount, []models.Event, error)
	TransferOwnership(ctx context.Context, caller, newOwner common.Address) ([]models.Event, error)
	RenounceOwnership(ctx context.Context, caller common.Address) ([]models.Event, error)
	Owner() common.Address
	RequestUploadURL(ctx context.Context) (string, string, error)
	GetContentURL(ctx context.Context, caller common.Address, postID uint64) (string, error)
	ListEvents(ctx context.Context, sinceSeq uint64, limit int) ([]models.Event, error)
}

type LedgerServer struct {
	api.UnimplementedContentLedgerServer
	address   string
	auth      AuthService
	ledger    LedgerService
	logger    logging.Logger
	jwtSecret []byte
}

func NewLedgerServer(a string, l logging.Logger, as AuthService, ls LedgerService, secretKey string) *LedgerServer {
	return &LedgerServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		auth:      as,
		ledger:    ls,
		jwtSecret: []byte(secretKey),
	}
}

// newGRPCServer builds the grpc.Server with interceptors and the service
// registered, without binding a listener.
func (s *LedgerServer) newGRPCServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterContentLedgerServer(srv, s)
	return srv
}

// Run serves on the configured address until ctx is cancelled, then stops
// gracefully.
func (s *LedgerServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *LedgerServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newGRPCServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
