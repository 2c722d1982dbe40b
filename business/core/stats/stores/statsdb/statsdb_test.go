package statsdb_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaplanje/coin/business/core/stats/stores/statsdb"
	"github.com/zaplanje/coin/business/sys/database"
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

func TestQuery_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := statsdb.NewStore(gormDB)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "total_users", "date_updated"}).
		AddRow(1, 17, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "statistics"`)).
		WillReturnRows(rows)

	st, err := store.Query(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 17, st.TotalUsers)
	assert.True(t, now.Equal(st.DateUpdated))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuery_NotSeeded(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	store := statsdb.NewStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "statistics"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.Query(context.Background())
	assert.True(t, errors.Is(err, database.ErrDBNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
