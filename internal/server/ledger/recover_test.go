package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recoveringLedger(t *testing.T, st *State) (*Ledger, *fakeJournal, *fakeTransferer) {
	t.Helper()
	j := &fakeJournal{}
	tr := &fakeTransferer{}
	l, err := New(common.Address{}, st, Options{FeePercent: 10, Journal: j, Transferer: tr, Clock: func() time.Time { return fixedT }})
	require.NoError(t, err)
	return l, j, tr
}

func TestRecover_PendingPayoutCreditedBack(t *testing.T) {
	l, j, _ := recoveringLedger(t, &State{
		Owner:           owner,
		Balances:        map[common.Address]models.Amount{alice: 5},
		PlatformBalance: 1,
		OpenPayouts: []models.Payout{
			{ID: "p1", Kind: models.PayoutCreator, Recipient: alice, Amount: 90, Status: models.PayoutPending},
			{ID: "p2", Kind: models.PayoutPlatform, Recipient: owner, Amount: 10, Status: models.PayoutPending},
		},
	})

	require.NoError(t, l.Recover(context.Background()))

	assert.Equal(t, models.Amount(95), l.CreatorBalance(alice))
	assert.Equal(t, models.Amount(11), l.PlatformBalance())
	assert.Empty(t, eventsSince(t, l, 0, 0))
	assert.Empty(t, l.Snapshot().OpenPayouts)

	require.Len(t, j.changes, 2)
	assert.Equal(t, "p1", j.changes[0].Payout.ID)
	assert.Equal(t, models.PayoutFailed, j.changes[0].Payout.Status)
	assert.Equal(t, map[common.Address]models.Amount{alice: 95}, j.changes[0].Balances)
	assert.Equal(t, models.PayoutFailed, j.changes[1].Payout.Status)
	require.NotNil(t, j.changes[1].PlatformBalance)
	assert.Equal(t, models.Amount(11), *j.changes[1].PlatformBalance)
}

func TestRecover_SentPayoutSettled(t *testing.T) {
	l, j, _ := recoveringLedger(t, &State{
		Owner:  owner,
		Events: []models.Event{{Seq: 1}},
		OpenPayouts: []models.Payout{
			{ID: "p1", Kind: models.PayoutCreator, Recipient: alice, Amount: 90, Status: models.PayoutSent},
		},
	})

	require.NoError(t, l.Recover(context.Background()))

	assert.Equal(t, models.Amount(0), l.CreatorBalance(alice))
	events := eventsSince(t, l, 1, 0)
	require.Len(t, events, 1)
	assert.Equal(t, models.Event{
		Seq:       2,
		Kind:      models.EventCreatorBalanceWithdrawn,
		Account:   alice,
		Amount:    90,
		Timestamp: fixedT,
	}, events[0])
	require.Len(t, j.changes, 1)
	assert.Equal(t, models.PayoutSettled, j.changes[0].Payout.Status)
	assert.Empty(t, j.changes[0].Balances)
}

func TestRecover_HeldCapturesRefunded(t *testing.T) {
	l, j, tr := recoveringLedger(t, &State{
		Owner: owner,
		OpenCaptures: []models.Capture{
			{ID: "c1", Payer: bob, PostID: 0, Amount: 100, Status: models.CaptureHeld},
			{ID: "c2", Payer: carol, PostID: 0, Amount: 100, Status: models.CaptureHeld},
		},
	})

	require.NoError(t, l.Recover(context.Background()))

	require.Len(t, tr.refunds, 2)
	assert.Equal(t, "c1", tr.refunds[0].ID)
	assert.Equal(t, "c2", tr.refunds[1].ID)
	assert.Empty(t, j.changes)
	assert.Empty(t, l.Snapshot().OpenCaptures)
}

func TestRecover_Errors(t *testing.T) {
	ctx := context.Background()

	l, _, _ := recoveringLedger(t, &State{
		Owner:       owner,
		OpenPayouts: []models.Payout{{ID: "p1", Kind: models.PayoutCreator, Recipient: alice, Amount: 1, Status: models.PayoutSettled}},
	})
	require.Error(t, l.Recover(ctx))

	l, _, _ = recoveringLedger(t, &State{
		Owner:       owner,
		OpenPayouts: []models.Payout{{ID: "p1", Kind: "bonus", Recipient: alice, Amount: 1, Status: models.PayoutSent}},
	})
	require.Error(t, l.Recover(ctx))

	// a failed journal keeps the payout open for the next attempt
	l, j, _ := recoveringLedger(t, &State{
		Owner:       owner,
		OpenPayouts: []models.Payout{{ID: "p1", Kind: models.PayoutCreator, Recipient: alice, Amount: 1, Status: models.PayoutPending}},
	})
	j.err = errors.New("down")
	require.Error(t, l.Recover(ctx))
	assert.Len(t, l.Snapshot().OpenPayouts, 1)
	assert.Equal(t, models.Amount(0), l.CreatorBalance(alice))
	j.err = nil
	require.NoError(t, l.Recover(ctx))
	assert.Equal(t, models.Amount(1), l.CreatorBalance(alice))

	l, _, tr := recoveringLedger(t, &State{
		Owner:        owner,
		OpenCaptures: []models.Capture{{ID: "c1", Payer: bob, Amount: 1, Status: models.CaptureHeld}},
	})
	tr.refundErr = errors.New("offline")
	require.Error(t, l.Recover(ctx))
	assert.Len(t, l.Snapshot().OpenCaptures, 1)
}

func TestRecover_OverflowLeftPending(t *testing.T) {
	var reported error
	l, err := New(common.Address{}, &State{
		Owner:       owner,
		Balances:    map[common.Address]models.Amount{alice: models.MaxAmount},
		OpenPayouts: []models.Payout{{ID: "p1", Kind: models.PayoutCreator, Recipient: alice, Amount: 1, Status: models.PayoutPending}},
	}, Options{Transferer: &fakeTransferer{}, OnJournalError: func(err error) { reported = err }})
	require.NoError(t, err)

	require.NoError(t, l.Recover(context.Background()))
	require.ErrorIs(t, reported, ErrBalanceOverflow)
	assert.Equal(t, models.MaxAmount, l.CreatorBalance(alice))
}
