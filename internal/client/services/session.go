// Package services contains application services for the ledger CLI.
// This file defines the session service: wallet login, restoring a cached
// session for one-shot commands, persisting rotated tokens and logout.
package services

import (
	"context"
	"crypto/ecdsa"
	"database/sql"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kunalsinghdadhwal/solcast/internal/client/client"
	"github.com/kunalsinghdadhwal/solcast/internal/client/models"
	"github.com/kunalsinghdadhwal/solcast/internal/client/repositories/session"
)

// SessionService keeps the API client and the session database in step.
//
// Contract:
//   - Login: sign in with a wallet key and cache the issued tokens.
//   - Restore: load cached tokens into the client; client.ErrNotLoggedIn when
//     there are none.
//   - SaveTokens: persist a rotated token pair for the current address.
//   - Logout: forget the cached session.
type SessionService struct {
	client   client.Client
	db       *sql.DB
	endpoint string
	address  common.Address
	now      func() time.Time
}

// NewSessionService binds c and the session database db to endpoint.
func NewSessionService(c client.Client, db *sql.DB, endpoint string) *SessionService {
	return &SessionService{client: c, db: db, endpoint: endpoint, now: time.Now}
}

func (s *SessionService) repo() session.Repository {
	return session.NewSQLiteRepository(s.db)
}

// Login signs in with key and stores the resulting session.
func (s *SessionService) Login(ctx context.Context, key *ecdsa.PrivateKey) (common.Address, error) {
	address, err := s.client.Login(ctx, key)
	if err != nil {
		return common.Address{}, fmt.Errorf("login error: %w", err)
	}
	s.address = address

	access, refresh := s.client.Tokens()
	if err := s.SaveTokens(ctx, access, refresh); err != nil {
		return common.Address{}, fmt.Errorf("session saving error: %w", err)
	}
	return address, nil
}

// Restore loads the cached session of the endpoint into the client and
// returns the signed-in address.
func (s *SessionService) Restore(ctx context.Context) (common.Address, error) {
	sess, err := s.repo().Get(ctx, s.endpoint)
	if err != nil {
		return common.Address{}, err
	}
	if sess == nil {
		return common.Address{}, client.ErrNotLoggedIn
	}
	s.address = common.HexToAddress(sess.Address)
	s.client.SetTokens(sess.AccessToken, sess.RefreshToken)
	return s.address, nil
}

// SaveTokens persists a token pair for the signed-in address.
func (s *SessionService) SaveTokens(ctx context.Context, access, refresh string) error {
	if s.address == (common.Address{}) {
		return client.ErrNotLoggedIn
	}
	return s.repo().Save(ctx, &models.Session{
		Endpoint:     s.endpoint,
		Address:      s.address.Hex(),
		AccessToken:  access,
		RefreshToken: refresh,
		UpdatedAt:    s.now(),
	})
}

// Logout drops the cached session.
func (s *SessionService) Logout(ctx context.Context) error {
	s.address = common.Address{}
	s.client.SetTokens("", "")
	return s.repo().Delete(ctx, s.endpoint)
}

// Address is the signed-in address, zero before Login or Restore.
func (s *SessionService) Address() common.Address {
	return s.address
}
