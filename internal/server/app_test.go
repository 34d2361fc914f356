package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/kunalsinghdadhwal/solcast/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.SecretKey = "secret"
	c.OwnerAddress = "0x00000000000000000000000000000000000000aa"
	return c
}

func TestNewApp_RejectsInvalidConfig(t *testing.T) {
	c := validConfig()
	c.PlatformFeePercent = 101

	called := false
	old := openDB
	openDB = func(string) (*sql.DB, error) {
		called = true
		return nil, errors.New("unreachable")
	}
	t.Cleanup(func() { openDB = old })

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.False(t, called, "database must not be opened for an invalid config")
}

func TestNewApp_OpenDBError(t *testing.T) {
	old := openDB
	openDB = func(string) (*sql.DB, error) { return nil, errors.New("no driver") }
	t.Cleanup(func() { openDB = old })

	_, err := NewApp(context.Background(), validConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}
