package captures

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ethereum/go-ethereum/common"
	sc "github.com/kunalsinghdadhwal/solcast/internal/common"
	"github.com/kunalsinghdadhwal/solcast/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQ     = `(?s)^INSERT\s+INTO\s+captures\s*\(id,\s*payer,\s*post_id,\s*amount,\s*status,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6\)\s*$`
	transitionQ = `(?s)^UPDATE\s+captures\s+SET\s+status\s*=\s*\$3\s+WHERE\s+id\s*=\s*\$1\s+AND\s+status\s*=\s*\$2\s*$`
	listHeldQ   = `(?s)^SELECT\s+id,\s*payer,\s*post_id,\s*amount,\s*created_at\s+FROM\s+captures\s+WHERE\s+status\s*=\s*'held'\s+ORDER\s+BY\s+created_at,\s*id\s*$`
)

var (
	payer   = common.HexToAddress("0x2B5AD5c4795c026514f8317c7a215E218DcCD6cF")
	created = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(insertQ).
		WithArgs("c1", payer.Hex(), int64(3), int64(100), "held", created).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertQ).WillReturnError(errors.New("duplicate key"))

	c := &models.Capture{ID: "c1", Payer: payer, PostID: 3, Amount: 100, Status: models.CaptureHeld, CreatedAt: created}
	require.NoError(t, repo.Create(context.Background(), c))
	require.Error(t, repo.Create(context.Background(), c))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransition(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(transitionQ).WithArgs("c1", "held", "applied").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(transitionQ).WithArgs("c1", "held", "refunded").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(transitionQ).WillReturnError(errors.New("down"))

	ctx := context.Background()
	require.NoError(t, repo.Transition(ctx, "c1", models.CaptureHeld, models.CaptureApplied))

	// an applied capture can no longer be refunded
	err := repo.Transition(ctx, "c1", models.CaptureHeld, models.CaptureRefunded)
	require.ErrorIs(t, err, sc.ErrorNotFound)

	err = repo.Transition(ctx, "c1", models.CaptureHeld, models.CaptureApplied)
	require.Error(t, err)
	assert.NotErrorIs(t, err, sc.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListHeld(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	cols := []string{"id", "payer", "post_id", "amount", "created_at"}
	mock.ExpectQuery(listHeldQ).WillReturnRows(sqlmock.NewRows(cols).
		AddRow("c1", payer.Hex(), int64(3), int64(100), created))

	got, err := repo.ListHeld(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Capture{
		{ID: "c1", Payer: payer, PostID: 3, Amount: 100, Status: models.CaptureHeld, CreatedAt: created},
	}, got)

	mock.ExpectQuery(listHeldQ).WillReturnError(errors.New("down"))
	_, err = repo.ListHeld(context.Background())
	require.Error(t, err)
}
