package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ethereum/go-ethereum/crypto"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/kunalsinghdadhwal/solcast/internal/dbx"
	"github.com/kunalsinghdadhwal/solcast/internal/server/auth"
	"github.com/kunalsinghdadhwal/solcast/internal/server/config"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/challenges"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/refreshtokens"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/repomanager"
	"github.com/kunalsinghdadhwal/solcast/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChallengesRepo struct {
	stored  map[string]*models.Challenge
	putErr  error
	findErr error
	delErr  error
	// afterFind runs between Find and Delete, standing in for a
	// concurrent sign-in.
	afterFind func()
}

func (f *fakeChallengesRepo) Put(_ context.Context, c *models.Challenge) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.stored[c.Address] = c
	return nil
}

func (f *fakeChallengesRepo) Find(_ context.Context, address string) (*models.Challenge, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	c, ok := f.stored[address]
	if !ok {
		return nil, sc.ErrorNotFound
	}
	if f.afterFind != nil {
		f.afterFind()
	}
	return c, nil
}

func (f *fakeChallengesRepo) Delete(_ context.Context, address string) error {
	if f.delErr != nil {
		return f.delErr
	}
	if _, ok := f.stored[address]; !ok {
		return sc.ErrorNotFound
	}
	delete(f.stored, address)
	return nil
}

type fakeRefreshRepo struct {
	tokens    map[string]*models.RefreshToken
	createErr error
	delErr    error
	purgeErr  error
	afterFind func()
}

func (f *fakeRefreshRepo) Create(_ context.Context, address string, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = &models.RefreshToken{Address: address, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshRepo) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, sc.ErrorNotFound
	}
	if f.afterFind != nil {
		f.afterFind()
	}
	return t, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	if _, ok := f.tokens[token]; !ok {
		return sc.ErrorNotFound
	}
	delete(f.tokens, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteExpired(_ context.Context, address string, now time.Time) (int64, error) {
	if f.purgeErr != nil {
		return 0, f.purgeErr
	}
	var n int64
	for k, t := range f.tokens {
		if t.Address == address && t.Expires.Before(now) {
			delete(f.tokens, k)
			n++
		}
	}
	return n, nil
}

type fakeAuthRepoManager struct {
	repomanager.RepositoryManager
	challenges *fakeChallengesRepo
	refresh    *fakeRefreshRepo
}

func (m *fakeAuthRepoManager) Challenges(dbx.DBTX) challenges.Repository       { return m.challenges }
func (m *fakeAuthRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.refresh }

func newTestAuthService(t *testing.T) (*AuthService, *fakeAuthRepoManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMock(t)
	rm := &fakeAuthRepoManager{
		challenges: &fakeChallengesRepo{stored: map[string]*models.Challenge{}},
		refresh:    &fakeRefreshRepo{tokens: map[string]*models.RefreshToken{}},
	}
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		ChallengeValidityDuration:    5 * time.Minute,
	}
	return NewAuthService(db, rm, cfg), rm, mock
}

func TestAuth_ChallengeLoginFlow(t *testing.T) {
	s, rm, _ := newTestAuthService(t)
	ctx := context.Background()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := wallet.Address(key)

	c, err := s.RequestChallenge(ctx, addr)
	require.NoError(t, err)
	assert.Contains(t, c.Message, addr.Hex())
	assert.True(t, strings.HasPrefix(c.Message, "Sign in to the content ledger"))

	sig, err := wallet.Sign(c.Message, key)
	require.NoError(t, err)

	pair, err := s.Login(ctx, addr, sig)
	require.NoError(t, err)

	got, err := auth.GetAddressFromToken(pair.AccessToken, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, addr, got)
	assert.Contains(t, rm.refresh.tokens, pair.RefreshToken)

	// the challenge is single use
	_, err = s.Login(ctx, addr, sig)
	require.ErrorIs(t, err, sc.ErrorUnauthorized)
}

func TestAuth_LoginWrongSigner(t *testing.T) {
	s, rm, _ := newTestAuthService(t)
	ctx := context.Background()

	key, _ := crypto.GenerateKey()
	other, _ := crypto.GenerateKey()
	addr := wallet.Address(key)

	c, err := s.RequestChallenge(ctx, addr)
	require.NoError(t, err)
	sig, err := wallet.Sign(c.Message, other)
	require.NoError(t, err)

	_, err = s.Login(ctx, addr, sig)
	require.ErrorIs(t, err, sc.ErrorUnauthorized)
	assert.Empty(t, rm.challenges.stored)
}

func TestAuth_LoginExpiredChallenge(t *testing.T) {
	s, _, _ := newTestAuthService(t)
	ctx := context.Background()

	key, _ := crypto.GenerateKey()
	addr := wallet.Address(key)

	c, err := s.RequestChallenge(ctx, addr)
	require.NoError(t, err)
	sig, _ := wallet.Sign(c.Message, key)

	s.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = s.Login(ctx, addr, sig)
	require.ErrorIs(t, err, sc.ErrChallengeExpired)
}

func TestAuth_RepoErrors(t *testing.T) {
	s, rm, _ := newTestAuthService(t)
	ctx := context.Background()
	key, _ := crypto.GenerateKey()
	addr := wallet.Address(key)

	rm.challenges.putErr = errors.New("down")
	_, err := s.RequestChallenge(ctx, addr)
	require.Error(t, err)
	rm.challenges.putErr = nil

	rm.challenges.findErr = errors.New("down")
	_, err = s.Login(ctx, addr, "0x00")
	require.ErrorIs(t, err, sc.ErrorInternal)
	rm.challenges.findErr = nil

	c, err := s.RequestChallenge(ctx, addr)
	require.NoError(t, err)
	sig, _ := wallet.Sign(c.Message, key)
	rm.refresh.createErr = errors.New("down")
	_, err = s.Login(ctx, addr, sig)
	require.ErrorIs(t, err, sc.ErrorInternal)
}

func TestAuth_RefreshToken(t *testing.T) {
	s, rm, mock := newTestAuthService(t)
	ctx := context.Background()

	addr := ownerAddr
	rm.refresh.tokens["old"] = &models.RefreshToken{Address: addr.Hex(), Token: "old", Expires: time.Now().Add(time.Hour)}

	mock.ExpectBegin()
	mock.ExpectCommit()

	pair, err := s.RefreshToken(ctx, "old")
	require.NoError(t, err)
	assert.NotContains(t, rm.refresh.tokens, "old")
	assert.Contains(t, rm.refresh.tokens, pair.RefreshToken)

	got, err := auth.GetAddressFromToken(pair.AccessToken, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, addr, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuth_RefreshToken_Errors(t *testing.T) {
	s, rm, mock := newTestAuthService(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := s.RefreshToken(ctx, "missing")
	require.ErrorIs(t, err, sc.ErrorUnauthorized)

	rm.refresh.tokens["stale"] = &models.RefreshToken{Address: ownerAddr.Hex(), Token: "stale", Expires: time.Now().Add(-time.Minute)}
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = s.RefreshToken(ctx, "stale")
	require.ErrorIs(t, err, sc.ErrRefreshTokenExpired)

	rm.refresh.tokens["t"] = &models.RefreshToken{Address: ownerAddr.Hex(), Token: "t", Expires: time.Now().Add(time.Hour)}
	rm.refresh.delErr = errors.New("down")
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = s.RefreshToken(ctx, "t")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuth_RefreshToken_RotatedConcurrently(t *testing.T) {
	s, rm, mock := newTestAuthService(t)
	ctx := context.Background()

	rm.refresh.tokens["t"] = &models.RefreshToken{Address: ownerAddr.Hex(), Token: "t", Expires: time.Now().Add(time.Hour)}
	// another rotation removes the token after this one read it
	rm.refresh.afterFind = func() { delete(rm.refresh.tokens, "t") }

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := s.RefreshToken(ctx, "t")
	require.ErrorIs(t, err, sc.ErrorUnauthorized)
	assert.Empty(t, rm.refresh.tokens)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuth_RefreshToken_SecondUseRejected(t *testing.T) {
	s, rm, mock := newTestAuthService(t)
	ctx := context.Background()

	rm.refresh.tokens["t"] = &models.RefreshToken{Address: ownerAddr.Hex(), Token: "t", Expires: time.Now().Add(time.Hour)}

	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.RefreshToken(ctx, "t")
	require.NoError(t, err)
	_, err = s.RefreshToken(ctx, "t")
	require.ErrorIs(t, err, sc.ErrorUnauthorized)
	assert.Len(t, rm.refresh.tokens, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuth_LoginChallengeConsumedConcurrently(t *testing.T) {
	s, rm, _ := newTestAuthService(t)
	ctx := context.Background()

	key, _ := crypto.GenerateKey()
	addr := wallet.Address(key)

	c, err := s.RequestChallenge(ctx, addr)
	require.NoError(t, err)
	sig, _ := wallet.Sign(c.Message, key)

	rm.challenges.afterFind = func() { delete(rm.challenges.stored, addr.Hex()) }
	_, err = s.Login(ctx, addr, sig)
	require.ErrorIs(t, err, sc.ErrorUnauthorized)
	assert.Empty(t, rm.refresh.tokens)

	rm.challenges.afterFind = nil
	rm.challenges.delErr = errors.New("down")
	_, err = s.RequestChallenge(ctx, addr)
	require.NoError(t, err)
	_, err = s.Login(ctx, addr, sig)
	require.ErrorIs(t, err, sc.ErrorInternal)
}

func TestAuth_RefreshToken_PurgesExpiredTokens(t *testing.T) {
	s, rm, mock := newTestAuthService(t)
	ctx := context.Background()

	rm.refresh.tokens["live"] = &models.RefreshToken{Address: ownerAddr.Hex(), Token: "live", Expires: time.Now().Add(time.Hour)}
	rm.refresh.tokens["dead"] = &models.RefreshToken{Address: ownerAddr.Hex(), Token: "dead", Expires: time.Now().Add(-time.Hour)}
	rm.refresh.tokens["other"] = &models.RefreshToken{Address: "0xother", Token: "other", Expires: time.Now().Add(-time.Hour)}

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := s.RefreshToken(ctx, "live")
	require.NoError(t, err)

	assert.NotContains(t, rm.refresh.tokens, "dead")
	assert.Contains(t, rm.refresh.tokens, "other")

	rm.refresh.tokens["again"] = &models.RefreshToken{Address: ownerAddr.Hex(), Token: "again", Expires: time.Now().Add(time.Hour)}
	rm.refresh.purgeErr = errors.New("down")
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = s.RefreshToken(ctx, "again")
	require.ErrorIs(t, err, sc.ErrorInternal)
	require.NoError(t, mock.ExpectationsWereMet())
}
