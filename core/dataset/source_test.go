package dataset

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"row-merger/core/database"
	apperrors "row-merger/core/errors"
	"row-merger/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFileSourceAndSink(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	ds := &Dataset{Header: []string{"name", "dept"}, Rows: [][]string{{"John Doe", "Accounting"}}}

	t.Run("CSV Round Trip", func(t *testing.T) {
		path := filepath.Join(dir, "out", "merged.csv")
		require.NoError(t, (&FileSink{Path: path}).Save(ctx, ds))

		got, err := (&FileSource{Path: path, Options: DefaultReadOptions()}).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, path, got.Name)
		assert.Equal(t, ds.Header, got.Header)
		assert.Equal(t, ds.Rows, got.Rows)
	})

	t.Run("TSV Implies Tab", func(t *testing.T) {
		path := filepath.Join(dir, "merged.tsv")
		require.NoError(t, (&FileSink{Path: path}).Save(ctx, ds))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "name\tdept\nJohn Doe\tAccounting\n", string(raw))

		got, err := (&FileSource{Path: path, Options: DefaultReadOptions()}).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, ds.Rows, got.Rows)
	})

	t.Run("Missing File", func(t *testing.T) {
		_, err := (&FileSource{Path: filepath.Join(dir, "nope.csv")}).Load(ctx)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
	})
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := &WriterSink{W: &buf, Delimiter: ';'}
	require.NoError(t, sink.Save(context.Background(), &Dataset{Rows: [][]string{{"a", "b"}}}))
	assert.Equal(t, "a;b\n", buf.String())
	assert.Equal(t, "-", sink.Name())
}

func TestObjectSource(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "datasets", "crm/old.csv", mock.Anything).
			Return(io.NopCloser(strings.NewReader("name\nJohn Doe\n")), nil)

		src := &ObjectSource{Client: client, Bucket: "datasets", Key: "crm/old.csv", Options: DefaultReadOptions()}
		ds, err := src.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "s3://crm/old.csv", ds.Name)
		assert.Equal(t, []string{"name"}, ds.Header)
		assert.Equal(t, [][]string{{"John Doe"}}, ds.Rows)
		client.AssertExpectations(t)
	})

	t.Run("Missing Key", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "datasets", "missing.csv", mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})

		src := &ObjectSource{Client: client, Bucket: "datasets", Key: "missing.csv"}
		_, err := src.Load(ctx)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Backend Failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "datasets", "old.csv", mock.Anything).
			Return(nil, assert.AnError)

		src := &ObjectSource{Client: client, Bucket: "datasets", Key: "old.csv"}
		_, err := src.Load(ctx)
		assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
		assert.ErrorIs(t, err, assert.AnError)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestObjectSink(t *testing.T) {
	client := new(mocks.Client)
	expected := "name\nJohn Doe\n"
	client.On("PutObject", mock.Anything, "datasets", "merged/out.csv", mock.Anything, int64(len(expected)),
		minio.PutObjectOptions{ContentType: "text/csv"}).
		Return(minio.UploadInfo{}, nil)

	sink := &ObjectSink{Client: client, Bucket: "datasets", Key: "merged/out.csv"}
	err := sink.Save(context.Background(), &Dataset{Header: []string{"name"}, Rows: [][]string{{"John Doe"}}})
	require.NoError(t, err)
	client.AssertExpectations(t)

	t.Run("Upload Failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("PutObject", mock.Anything, "datasets", "out.tsv", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, assert.AnError)

		sink := &ObjectSink{Client: client, Bucket: "datasets", Key: "out.tsv"}
		err := sink.Save(context.Background(), &Dataset{Rows: [][]string{{"a"}}})
		assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
	})
}

func TestTableSourceAndSink(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	sink := &TableSink{DB: db, Table: "merged"}
	require.NoError(t, sink.Save(ctx, &Dataset{
		Header: []string{"Name", "Dept"},
		Rows:   [][]string{{"John Doe", "Accounting"}, {"Jane Smith", "Sales"}},
	}))

	ds, err := (&TableSource{DB: db, Table: "merged"}).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "table://merged", ds.Name)
	assert.Equal(t, []string{"name", "dept"}, ds.Header)
	assert.Equal(t, [][]string{{"John Doe", "Accounting"}, {"Jane Smith", "Sales"}}, ds.Rows)

	_, err = (&TableSource{DB: db, Table: "absent"}).Load(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = (&TableSource{DB: db, Table: "bad name"}).Load(ctx)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestMemorySource(t *testing.T) {
	original := &Dataset{Header: []string{"name"}, Rows: [][]string{{"John"}}}
	src := &MemorySource{Label: "old", Dataset: original}

	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "old", ds.Name)
	assert.Equal(t, original.Rows, ds.Rows)

	ds.Rows[0][0] = "changed"
	assert.Equal(t, "John", original.Rows[0][0])

	_, err = (&MemorySource{Label: "new"}).Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
