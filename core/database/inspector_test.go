package database

import (
	"regexp"
	"testing"

	apperrors "row-merger/core/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	return db
}

func newMySQLMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func TestGetTableColumns(t *testing.T) {
	db := newSQLite(t)

	err := db.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT, description TEXT DEFAULT 'none')").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "test_items")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "integer", columns[0].Type)
	assert.Equal(t, "name", columns[1].Field)
	assert.Equal(t, "text", columns[1].Type)
	assert.Equal(t, "description", columns[2].Field)
	require.NotNil(t, columns[2].Default)
	assert.Equal(t, "'none'", *columns[2].Default)

	// PRAGMA table_info returns an empty result for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	db, mock := newMySQLMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `contacts`")).
		WillReturnRows(sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "INT(11)", "NO", "PRI", nil, "auto_increment").
			AddRow("Name", "VARCHAR(255)", "YES", "", nil, ""))

	columns, err := GetTableColumns(db, "contacts")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "id", columns[0].Field)
	assert.Equal(t, "int(11)", columns[0].Type)
	assert.Equal(t, "PRI", columns[0].Key)
	assert.Equal(t, "Name", columns[1].Field)
	assert.Nil(t, columns[1].Default)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTableColumns_RejectsBadIdentifier(t *testing.T) {
	db := newSQLite(t)

	_, err := GetTableColumns(db, "items'; DROP TABLE x; --")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
