package userdb_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaplanje/coin/business/core/user"
	"github.com/zaplanje/coin/business/core/user/stores/userdb"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return gormDB, mock
}

func TestQueryByEmail_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := userdb.NewStore(gormDB)

	id := uuid.NewString()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"user_id", "email", "password_hash", "date_created", "date_updated"}).
		AddRow(id, "jovana@zaplanje.rs", []byte("hash"), now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(rows)

	usr, err := store.QueryByEmail(context.Background(), "jovana@zaplanje.rs")
	assert.NoError(t, err)
	assert.Equal(t, id, usr.ID)
	assert.Equal(t, "jovana@zaplanje.rs", usr.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryByEmail_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := userdb.NewStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	_, err := store.QueryByEmail(context.Background(), "nobody@zaplanje.rs")
	assert.True(t, errors.Is(err, user.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := userdb.NewStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := store.Count(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 42, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
