package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/api"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/kunalsinghdadhwal/solcast/internal/logging"
	"github.com/kunalsinghdadhwal/solcast/internal/server/auth"
	"github.com/kunalsinghdadhwal/solcast/internal/server/ledger"
	"github.com/kunalsinghdadhwal/solcast/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

const testSecret = "secret"

var (
	ownerAddr  = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	authorAddr = common.HexToAddress("0x00000000000000000000000000000000000000bb")
	readerAddr = common.HexToAddress("0x00000000000000000000000000000000000000cc")
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewLedgerServer("127.0.0.1:0", nopLogger{}, &fakeAuth{}, &fakeLedger{}, testSecret)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewLedgerServer("127.0.0.1:99999", nopLogger{}, &fakeAuth{}, &fakeLedger{}, testSecret)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := srv.Run(ctx); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

// startBufconn serves a LedgerServer backed by an in-memory ledger and
// returns a connected client.
func startBufconn(t *testing.T, feePercent uint64) (api.ContentLedgerClient, *services.MemoryTransferer) {
	t.Helper()

	tr := &services.MemoryTransferer{}
	l, err := ledger.New(ownerAddr, nil, ledger.Options{FeePercent: feePercent, PaymentUnit: "lamports", Transferer: tr})
	require.NoError(t, err)

	ls := services.NewLedgerService(l, nil, &fakeContent{}, tr, nopLogger{})
	srv := NewLedgerServer("bufconn", nopLogger{}, &fakeAuth{}, ls, testSecret)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufconn",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.Codec)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})

	return api.NewContentLedgerClient(conn), tr
}

func as(t *testing.T, address common.Address) context.Context {
	t.Helper()
	token, err := auth.GenerateToken(address, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), sc.AccessTokenHeaderName, token)
}

func TestServe_PaidFlowEndToEnd(t *testing.T) {
	c, tr := startBufconn(t, 10)

	pub, err := c.PublishPaidContent(as(t, authorAddr), &api.PublishPaidContentRequest{Content: "QmPaid", Price: 100})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), pub.PostID)
	require.Len(t, pub.Events, 1)
	assert.Equal(t, "ContentPublished", pub.Events[0].Kind)
	assert.Equal(t, "paid", pub.Events[0].ContentType)

	info, err := c.GetPostInfo(context.Background(), &api.GetPostInfoRequest{PostID: 0})
	require.NoError(t, err)
	assert.Equal(t, authorAddr.Hex(), info.Author)
	assert.Equal(t, uint64(100), info.Price)

	_, err = c.AccessContent(as(t, readerAddr), &api.AccessContentRequest{PostID: 0, Payment: 99})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	// tendered but never funded
	_, err = c.AccessContent(as(t, readerAddr), &api.AccessContentRequest{PostID: 0, Payment: 100})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	tr.Fund(readerAddr, 150)
	acc, err := c.AccessContent(as(t, readerAddr), &api.AccessContentRequest{PostID: 0, Payment: 100})
	require.NoError(t, err)
	assert.Equal(t, "QmPaid", acc.Content)
	require.Len(t, acc.Events, 2)

	dep, err := c.GetDeposit(as(t, readerAddr), &api.GetDepositRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(50), dep.Amount)

	bal, err := c.GetCreatorBalance(context.Background(), &api.GetCreatorBalanceRequest{Address: authorAddr.Hex()})
	require.NoError(t, err)
	assert.Equal(t, uint64(90), bal.Amount)

	li, err := c.GetLedgerInfo(context.Background(), &api.GetLedgerInfoRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), li.PlatformBalance)
	assert.Equal(t, uint64(1), li.NextPostID)
	assert.Equal(t, "lamports", li.PaymentUnit)

	w, err := c.WithdrawCreatorBalance(as(t, authorAddr), &api.WithdrawRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(90), w.Amount)

	_, err = c.WithdrawCreatorBalance(as(t, authorAddr), &api.WithdrawRequest{})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = c.WithdrawPlatformFees(as(t, readerAddr), &api.WithdrawRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	fees, err := c.WithdrawPlatformFees(as(t, ownerAddr), &api.WithdrawRequest{})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), fees.Amount)

	require.Len(t, tr.Payouts(), 2)

	ev, err := c.ListEvents(context.Background(), &api.ListEventsRequest{SinceSeq: 0})
	require.NoError(t, err)
	require.Len(t, ev.Events, 5)
	for i, e := range ev.Events {
		assert.Equal(t, uint64(i+1), e.Seq)
	}
}

func TestServe_RequiresTokenForMutations(t *testing.T) {
	c, _ := startBufconn(t, 10)

	_, err := c.PublishFreeContent(context.Background(), &api.PublishFreeContentRequest{Content: "x"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	resp, err := c.Ping(context.Background(), &api.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
}

func TestServe_OwnershipLifecycle(t *testing.T) {
	c, _ := startBufconn(t, 10)

	_, err := c.TransferOwnership(as(t, ownerAddr), &api.TransferOwnershipRequest{NewOwner: common.Address{}.Hex()})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	r, err := c.TransferOwnership(as(t, ownerAddr), &api.TransferOwnershipRequest{NewOwner: authorAddr.Hex()})
	require.NoError(t, err)
	assert.Equal(t, authorAddr.Hex(), r.Owner)

	_, err = c.RenounceOwnership(as(t, ownerAddr), &api.RenounceOwnershipRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	r, err = c.RenounceOwnership(as(t, authorAddr), &api.RenounceOwnershipRequest{})
	require.NoError(t, err)
	assert.Equal(t, common.Address{}.Hex(), r.Owner)
	require.Len(t, r.Events, 1)
	assert.Empty(t, r.Events[0].Counterparty)

	li, err := c.GetLedgerInfo(context.Background(), &api.GetLedgerInfoRequest{})
	require.NoError(t, err)
	assert.True(t, li.Renounced)
}
