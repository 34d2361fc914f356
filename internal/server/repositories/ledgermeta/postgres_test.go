package ledgermeta

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ethereum/go-ethereum/common"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var owner = common.HexToAddress("0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")

const (
	getQ     = `(?s)^SELECT\s+owner_address,\s*platform_balance\s+FROM\s+ledger_meta\s+WHERE\s+id\s*=\s*1\s*$`
	initQ    = `(?s)^INSERT\s+INTO\s+ledger_meta\s*\(id,\s*owner_address,\s*platform_balance\)\s*VALUES\s*\(1,\s*\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(id\)\s*DO\s+NOTHING\s*$`
	ownerQ   = `(?s)^UPDATE\s+ledger_meta\s+SET\s+owner_address\s*=\s*\$1.*WHERE\s+id\s*=\s*1\s*$`
	balanceQ = `(?s)^UPDATE\s+ledger_meta\s+SET\s+platform_balance\s*=\s*\$1.*WHERE\s+id\s*=\s*1\s*$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestGet(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQ).WillReturnRows(
		sqlmock.NewRows([]string{"owner_address", "platform_balance"}).AddRow(owner.Hex(), int64(15)))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.LedgerMeta{Owner: owner, PlatformBalance: 15}, got)
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQ).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, sc.ErrorNotFound)
}

func TestGet_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQ).WillReturnError(errors.New("timeout"))

	_, err := repo.Get(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, sc.ErrorNotFound)
}

func TestInit(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(initQ).WithArgs(owner.Hex(), int64(0)).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Init(context.Background(), &models.LedgerMeta{Owner: owner}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	zero := common.Address{}
	mock.ExpectExec(ownerQ).WithArgs(zero.Hex()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(ownerQ).WithArgs(owner.Hex()).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SetOwner(context.Background(), zero))
	require.ErrorIs(t, repo.SetOwner(context.Background(), owner), sc.ErrorNotFound)
}

func TestSetPlatformBalance(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(balanceQ).WithArgs(int64(25)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(balanceQ).WithArgs(int64(0)).WillReturnError(errors.New("down"))
	mock.ExpectExec(balanceQ).WithArgs(int64(1)).WillReturnResult(sqlmock.NewErrorResult(errors.New("no count")))

	require.NoError(t, repo.SetPlatformBalance(context.Background(), 25))
	require.Error(t, repo.SetPlatformBalance(context.Background(), 0))
	require.Error(t, repo.SetPlatformBalance(context.Background(), 1))
}
