package database

import (
	"context"
	"errors"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "postgres")
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestConnectAndMigrate_EmptyURI(t *testing.T) {
	db, err := ConnectAndMigrate("")
	assert.Nil(t, db)
	assert.ErrorIs(t, err, ErrEmptyURI)
}

func TestSession_ReleasesConnection(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))

	var got int
	err := Session(context.Background(), db, func(conn *sqlx.Conn) error {
		return conn.GetContext(context.Background(), &got, "SELECT 1")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.Equal(t, 0, db.Stats().InUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSession_ReleasesConnectionOnError(t *testing.T) {
	db, _ := newMockDB(t)
	boom := errors.New("boom")

	err := Session(context.Background(), db, func(conn *sqlx.Conn) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, db.Stats().InUse)
}

func TestSession_ReleasesConnectionOnPanic(t *testing.T) {
	db, _ := newMockDB(t)

	assert.Panics(t, func() {
		_ = Session(context.Background(), db, func(conn *sqlx.Conn) error {
			panic("boom")
		})
	})
	assert.Equal(t, 0, db.Stats().InUse)
}

func TestSession_AcquireFailure(t *testing.T) {
	db, _ := newMockDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := Session(ctx, db, func(conn *sqlx.Conn) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
