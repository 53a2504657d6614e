package database

import (
	"context"
	"regexp"
	"testing"

	apperrors "row-merger/core/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "contacts", false},
		{"underscore", "_tmp_rows2", false},
		{"empty", "", true},
		{"leading digit", "1rows", true},
		{"space", "my table", true},
		{"quote", "a'b", true},
		{"dot", "db.rows", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestColumnNames(t *testing.T) {
	got := ColumnNames([]string{"First Name", "e-mail", "", "first name", "2nd"}, 6)
	assert.Equal(t, []string{"first_name", "e_mail", "col_3", "first_name_2", "col_5", "col_6"}, got)

	t.Run("Suffix Avoids Taken Names", func(t *testing.T) {
		tests := []struct {
			header []string
			want   []string
		}{
			{[]string{"a_2", "a", "a"}, []string{"a_2", "a", "a_3"}},
			{[]string{"a", "a", "a_2"}, []string{"a", "a_2", "a_2_2"}},
			{[]string{"col_2", ""}, []string{"col_2", "col_2_2"}},
		}

		for _, tt := range tests {
			got := ColumnNames(tt.header, len(tt.header))
			assert.Equal(t, tt.want, got)

			unique := make(map[string]struct{}, len(got))
			for _, name := range got {
				unique[name] = struct{}{}
			}
			assert.Len(t, unique, len(got))
		}
	})
}

func TestWriteTable_CollidingHeader(t *testing.T) {
	db := newSQLite(t)
	ctx := context.Background()

	columns, err := WriteTable(ctx, db, "collide", []string{"a_2", "a", "a"}, [][]string{{"x", "y", "z"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a_2", "a", "a_3"}, columns)

	header, rows, err := ReadTable(ctx, db, "collide")
	require.NoError(t, err)
	assert.Equal(t, columns, header)
	assert.Equal(t, [][]string{{"x", "y", "z"}}, rows)
}

func TestReadTable_MySQL(t *testing.T) {
	db, mock := newMySQLMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `contacts`")).
		WillReturnRows(sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "int", "NO", "PRI", nil, "").
			AddRow("name", "varchar(255)", "YES", "", nil, ""))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `id`,`name` FROM `contacts`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow([]byte("1"), []byte("John Doe")).
			AddRow(int64(2), nil))

	header, rows, err := ReadTable(context.Background(), db, "contacts")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, header)
	assert.Equal(t, [][]string{{"1", "John Doe"}, {"2", ""}}, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadTable_Missing(t *testing.T) {
	db := newSQLite(t)

	_, _, err := ReadTable(context.Background(), db, "nowhere")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWriteTable_RoundTrip(t *testing.T) {
	db := newSQLite(t)
	ctx := context.Background()

	rows := [][]string{
		{"John Doe", "Accounting"},
		{"Jane Smith"},
		{"Bob", "Sales", "extra"},
	}

	columns, err := WriteTable(ctx, db, "merged", []string{"Name", "Dept"}, rows)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "dept", "col_3"}, columns)

	header, got, err := ReadTable(ctx, db, "merged")
	require.NoError(t, err)
	assert.Equal(t, columns, header)
	assert.Equal(t, [][]string{
		{"John Doe", "Accounting", ""},
		{"Jane Smith", "", ""},
		{"Bob", "Sales", "extra"},
	}, got)

	t.Run("Replaces Existing Rows", func(t *testing.T) {
		_, err := WriteTable(ctx, db, "merged", []string{"Name", "Dept"}, [][]string{{"Alice", "Ops"}})
		require.NoError(t, err)

		_, got, err := ReadTable(ctx, db, "merged")
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"Alice", "Ops", ""}}, got)
	})

	t.Run("Rejects Unknown Column", func(t *testing.T) {
		_, err := WriteTable(ctx, db, "merged", []string{"Name", "Phone"}, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestWriteTable_Validation(t *testing.T) {
	db := newSQLite(t)
	ctx := context.Background()

	_, err := WriteTable(ctx, db, "bad name", []string{"a"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = WriteTable(ctx, db, "empty", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
