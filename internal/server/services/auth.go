package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/kunalsinghdadhwal/solcast/internal/dbx"
	"github.com/kunalsinghdadhwal/solcast/internal/server/auth"
	"github.com/kunalsinghdadhwal/solcast/internal/server/config"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
	"github.com/kunalsinghdadhwal/solcast/internal/server/repositories/repomanager"
	"github.com/kunalsinghdadhwal/solcast/internal/wallet"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService signs wallets in:
// - RequestChallenge: issue a one-time message for an address to sign
// - Login: verify the signature over that message and mint tokens
// - RefreshToken: rotate refresh tokens and mint new access tokens
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	challengeValidityDuration    time.Duration
	now                          func() time.Time
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		challengeValidityDuration:    cfg.ChallengeValidityDuration,
		now:                          time.Now,
	}
}

func challengeMessage(address common.Address, nonce string, expires time.Time) string {
	return fmt.Sprintf("Sign in to the content ledger\naddress: %s\nnonce: %s\nexpires: %s",
		address.Hex(), nonce, expires.UTC().Format(time.RFC3339))
}

// RequestChallenge stores and returns a fresh message for address to sign,
// replacing any earlier pending challenge.
func (s *AuthService) RequestChallenge(ctx context.Context, address common.Address) (*models.Challenge, error) {
	nonce, err := sc.MakeRandHexString(16)
	if err != nil {
		return nil, sc.ErrorInternal
	}
	expires := s.now().Add(s.challengeValidityDuration)
	c := &models.Challenge{
		Address: address.Hex(),
		Message: challengeMessage(address, nonce, expires),
		Expires: expires,
	}
	if err := s.repomanager.Challenges(s.db).Put(ctx, c); err != nil {
		return nil, fmt.Errorf("error saving challenge: %w", err)
	}
	return c, nil
}

// Login checks signature against the pending challenge of address. The
// challenge is consumed whether or not the signature matches, and only the
// sign-in that removes it may use it.
func (s *AuthService) Login(ctx context.Context, address common.Address, signature string) (*TokenPair, error) {
	repo := s.repomanager.Challenges(s.db)
	c, err := repo.Find(ctx, address.Hex())
	if err != nil {
		if errors.Is(err, sc.ErrorNotFound) {
			return nil, sc.ErrorUnauthorized
		}
		return nil, sc.ErrorInternal
	}
	if err := repo.Delete(ctx, address.Hex()); err != nil {
		if errors.Is(err, sc.ErrorNotFound) {
			return nil, sc.ErrorUnauthorized
		}
		return nil, sc.ErrorInternal
	}
	if c.Expires.Before(s.now()) {
		return nil, sc.ErrChallengeExpired
	}
	if err := wallet.Verify(address, c.Message, signature); err != nil {
		return nil, sc.ErrorUnauthorized
	}
	return s.generateTokenPair(ctx, address, s.db)
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired. Of
// concurrent rotations of one token only the first mints a pair; the rest get
// ErrorUnauthorized.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.RefreshTokens(tx)
		token, err := repoTx.Find(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, sc.ErrorNotFound) {
				return sc.ErrorUnauthorized
			}
			return fmt.Errorf("error searching refresh token: %w", err)
		}
		if token.Expires.Before(s.now()) {
			return sc.ErrRefreshTokenExpired
		}
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			if errors.Is(err, sc.ErrorNotFound) {
				return sc.ErrorUnauthorized
			}
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, common.HexToAddress(token.Address), tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, address common.Address, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(address, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, sc.ErrorInternal
	}
	refresh, err := sc.MakeRandHexString(32)
	if err != nil {
		return nil, sc.ErrorInternal
	}
	repo := s.repomanager.RefreshTokens(tx)
	if _, err := repo.DeleteExpired(ctx, address.Hex(), s.now()); err != nil {
		return nil, sc.ErrorInternal
	}
	if err := repo.Create(ctx, address.Hex(), refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, sc.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
