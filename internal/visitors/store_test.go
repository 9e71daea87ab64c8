package visitors

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishiseeds/catalog-service/internal/types"
)

func newMockStore(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *Store) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return db, mock, NewStore(db)
}

func TestStore_Record(t *testing.T) {
	db, mock, store := newMockStore(t)
	defer db.Close()

	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	visit := &types.Visit{
		VisitorID: "3f1c", Path: "/products/hybrid-okra",
		Referrer: "https://google.com", UserAgent: "Mozilla/5.0", IP: "10.0.0.1",
		CreatedAt: at,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO visits`)).
		WithArgs(sqlmock.AnyArg(), "3f1c", "/products/hybrid-okra", "https://google.com", "Mozilla/5.0", "10.0.0.1", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Record(context.Background(), visit))
	assert.Regexp(t, `^vis_`, visit.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Record_Duplicate(t *testing.T) {
	db, mock, store := newMockStore(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO visits`)).
		WillReturnError(&pq.Error{Code: "23505"})

	err := store.Record(context.Background(), &types.Visit{ID: "vis_1", Path: "/"})
	assert.ErrorIs(t, err, ErrDuplicateVisit)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Record_RequiresPath(t *testing.T) {
	db, mock, store := newMockStore(t)
	defer db.Close()

	err := store.Record(context.Background(), &types.Visit{VisitorID: "x"})
	assert.ErrorIs(t, err, ErrInvalidVisit)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Recent(t *testing.T) {
	db, mock, store := newMockStore(t)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Second)
	rows := sqlmock.NewRows([]string{"id", "visitor_id", "path", "referrer", "user_agent", "ip", "created_at"}).
		AddRow("vis_2", "b", "/about", "", "", "", now).
		AddRow("vis_1", "a", "/", "", "", "", now.Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta(`FROM visits`)).
		WithArgs(100).
		WillReturnRows(rows)

	visits, err := store.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, visits, 2)
	assert.Equal(t, "vis_2", visits[0].ID)
	assert.Equal(t, "/about", visits[0].Path)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UniqueVisitors(t *testing.T) {
	db, mock, store := newMockStore(t)
	defer db.Close()

	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(DISTINCT visitor_id) FROM visits`)).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(7)))

	n, err := store.UniqueVisitors(context.Background(), since)
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_EnsureSchema(t *testing.T) {
	db, mock, store := newMockStore(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS visits`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
