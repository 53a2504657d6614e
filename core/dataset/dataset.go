package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	apperrors "row-merger/core/errors"

	"golang.org/x/text/unicode/norm"
)

// Dataset is a named table of text rows with an optional header.
type Dataset struct {
	Name   string     `json:"name,omitempty"`
	Header []string   `json:"header,omitempty"`
	Rows   [][]string `json:"rows"`
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := &Dataset{Name: d.Name}
	if d.Header != nil {
		out.Header = append([]string(nil), d.Header...)
	}
	out.Rows = make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// Width returns the number of columns: the header length, or the widest row.
func (d *Dataset) Width() int {
	w := len(d.Header)
	for _, row := range d.Rows {
		w = max(w, len(row))
	}
	return w
}

// ReadOptions controls how delimited text is parsed.
type ReadOptions struct {
	// Delimiter separates fields. Zero means comma.
	Delimiter rune
	// HasHeader treats the first record as the header.
	HasHeader bool
	// Normalize applies NFKC normalization to every field.
	Normalize bool
}

// DefaultReadOptions returns comma-separated input with a header row.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{Delimiter: ',', HasHeader: true}
}

// ReadCSV parses delimited text. Records may have differing field counts.
// Empty input yields a dataset with no header and no rows.
func ReadCSV(r io.Reader, opts ReadOptions) (*Dataset, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		if !validDelimiter(opts.Delimiter) {
			return nil, apperrors.NewValidationError("delimiter", fmt.Sprintf("unusable delimiter %q", opts.Delimiter))
		}
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1

	var ds Dataset
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, apperrors.NewValidationError("csv", parseErr.Error())
			}
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		if opts.Normalize {
			for i, field := range record {
				record[i] = norm.NFKC.String(field)
			}
		}

		if opts.HasHeader && ds.Header == nil {
			ds.Header = record
			continue
		}
		ds.Rows = append(ds.Rows, record)
	}

	if ds.Rows == nil {
		ds.Rows = [][]string{}
	}
	return &ds, nil
}

// WriteCSV writes the header (when present) followed by every row.
func WriteCSV(w io.Writer, ds *Dataset, delimiter rune) error {
	writer := csv.NewWriter(w)
	if delimiter != 0 {
		if !validDelimiter(delimiter) {
			return apperrors.NewValidationError("delimiter", fmt.Sprintf("unusable delimiter %q", delimiter))
		}
		writer.Comma = delimiter
	}

	if len(ds.Header) > 0 {
		if err := writer.Write(ds.Header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := writer.WriteAll(ds.Rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}
