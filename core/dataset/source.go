package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"row-merger/core/database"
	apperrors "row-merger/core/errors"
	"row-merger/core/storage"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// Source loads a dataset.
type Source interface {
	// Name identifies the source in logs and merge history.
	Name() string
	// Load reads the whole dataset.
	Load(ctx context.Context) (*Dataset, error)
}

// Sink stores a dataset.
type Sink interface {
	// Name identifies the sink in logs and merge history.
	Name() string
	// Save replaces the sink's contents with the dataset.
	Save(ctx context.Context, ds *Dataset) error
}

// delimiterFor picks tab for .tsv paths when no delimiter was chosen explicitly.
func delimiterFor(path string, delim rune) rune {
	if delim == 0 || delim == ',' {
		if strings.EqualFold(filepath.Ext(path), ".tsv") {
			return '\t'
		}
	}
	if delim == 0 {
		return ','
	}
	return delim
}

// FileSource reads a delimited file from the local filesystem.
type FileSource struct {
	Path    string
	Options ReadOptions
}

func (s *FileSource) Name() string { return s.Path }

func (s *FileSource) Load(ctx context.Context) (*Dataset, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewSourceError(s.Path, "load", apperrors.NewNotFoundError("file", s.Path))
		}
		return nil, apperrors.NewSourceError(s.Path, "load", err)
	}
	defer f.Close()

	opts := s.Options
	opts.Delimiter = delimiterFor(s.Path, opts.Delimiter)
	ds, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Path, err)
	}
	ds.Name = s.Path
	return ds, nil
}

// FileSink writes a delimited file, creating parent directories as needed.
type FileSink struct {
	Path      string
	Delimiter rune
}

func (s *FileSink) Name() string { return s.Path }

func (s *FileSink) Save(ctx context.Context, ds *Dataset) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.NewSourceError(s.Path, "save", err)
		}
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds, delimiterFor(s.Path, s.Delimiter)); err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), 0o644); err != nil {
		return apperrors.NewSourceError(s.Path, "save", err)
	}
	return nil
}

// WriterSink streams a dataset to an io.Writer such as stdout.
type WriterSink struct {
	W         io.Writer
	Delimiter rune
}

func (s *WriterSink) Name() string { return "-" }

func (s *WriterSink) Save(ctx context.Context, ds *Dataset) error {
	return WriteCSV(s.W, ds, s.Delimiter)
}

// ObjectSource reads a delimited object from a storage bucket.
type ObjectSource struct {
	Client  storage.Client
	Bucket  string
	Key     string
	Options ReadOptions
}

func (s *ObjectSource) Name() string { return ObjectScheme + s.Key }

func (s *ObjectSource) Load(ctx context.Context) (*Dataset, error) {
	reader, err := s.Client.GetObject(ctx, s.Bucket, s.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrap(err)
	}
	defer reader.Close()

	// Objects are fetched lazily; a missing key surfaces on the first read.
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, s.wrap(err)
	}

	opts := s.Options
	opts.Delimiter = delimiterFor(s.Key, opts.Delimiter)
	ds, err := ReadCSV(bytes.NewReader(data), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Name(), err)
	}
	ds.Name = s.Name()
	return ds, nil
}

func (s *ObjectSource) wrap(err error) error {
	if storage.IsNotFound(err) {
		err = apperrors.NewNotFoundError("object", s.Key)
	}
	return apperrors.NewSourceError(s.Name(), "load", err)
}

// ObjectSink uploads a dataset as a delimited object.
type ObjectSink struct {
	Client    storage.Client
	Bucket    string
	Key       string
	Delimiter rune
}

func (s *ObjectSink) Name() string { return ObjectScheme + s.Key }

func (s *ObjectSink) Save(ctx context.Context, ds *Dataset) error {
	delim := delimiterFor(s.Key, s.Delimiter)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds, delim); err != nil {
		return err
	}

	contentType := "text/csv"
	if delim == '\t' {
		contentType = "text/tab-separated-values"
	}

	_, err := s.Client.PutObject(ctx, s.Bucket, s.Key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return apperrors.NewSourceError(s.Name(), "save", err)
	}
	return nil
}

// TableSource reads every row of a SQL table.
type TableSource struct {
	DB    *gorm.DB
	Table string
}

func (s *TableSource) Name() string { return TableScheme + s.Table }

func (s *TableSource) Load(ctx context.Context) (*Dataset, error) {
	header, rows, err := database.ReadTable(ctx, s.DB, s.Table)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return nil, err
		}
		return nil, apperrors.NewSourceError(s.Name(), "load", err)
	}
	if rows == nil {
		rows = [][]string{}
	}
	return &Dataset{Name: s.Name(), Header: header, Rows: rows}, nil
}

// TableSink replaces the rows of a SQL table, creating it when missing.
type TableSink struct {
	DB    *gorm.DB
	Table string
}

func (s *TableSink) Name() string { return TableScheme + s.Table }

func (s *TableSink) Save(ctx context.Context, ds *Dataset) error {
	if _, err := database.WriteTable(ctx, s.DB, s.Table, ds.Header, ds.Rows); err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return err
		}
		return apperrors.NewSourceError(s.Name(), "save", err)
	}
	return nil
}

// MemorySource serves a dataset that is already in memory, such as a request body.
type MemorySource struct {
	Label   string
	Dataset *Dataset
}

func (s *MemorySource) Name() string { return s.Label }

func (s *MemorySource) Load(ctx context.Context) (*Dataset, error) {
	if s.Dataset == nil {
		return nil, apperrors.NewValidationError(s.Label, "dataset is required")
	}
	ds := s.Dataset.Clone()
	ds.Name = s.Label
	if ds.Rows == nil {
		ds.Rows = [][]string{}
	}
	return ds, nil
}
