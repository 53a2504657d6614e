package dataset

import (
	"unicode/utf8"

	apperrors "row-merger/core/errors"
)

// Config holds dataset parsing and output settings.
type Config struct {
	// Delimiter is the field separator for CSV files and objects.
	Delimiter string `mapstructure:"delimiter" default:","`
	// HasHeader indicates whether the first record is a header.
	HasHeader bool `mapstructure:"has_header" default:"true"`
	// Normalize applies Unicode NFKC normalization to every field on load.
	Normalize bool `mapstructure:"normalize" default:"false"`
	// OutputPrefix is the object key prefix for merge results saved to storage.
	OutputPrefix string `mapstructure:"output_prefix" default:"merged/"`
	// TablePrefix is the name prefix required for table outputs written over HTTP.
	TablePrefix string `mapstructure:"table_prefix" default:"merged_"`
}

// Validate checks that the delimiter is usable by the CSV reader and writer.
func (c Config) Validate() error {
	_, err := ParseDelimiter(c.Delimiter)
	return err
}

// ReadOptions converts the configuration into read options.
func (c Config) ReadOptions() ReadOptions {
	delim, _ := ParseDelimiter(c.Delimiter)
	return ReadOptions{Delimiter: delim, HasHeader: c.HasHeader, Normalize: c.Normalize}
}

// ParseDelimiter turns a configured delimiter into a rune. Empty means comma;
// the escape `\t` means tab.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, apperrors.NewValidationError("delimiter", "must be a single character")
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !validDelimiter(r) {
		return 0, apperrors.NewValidationError("delimiter", "cannot be a quote, line break or replacement character")
	}
	return r, nil
}

func validDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError
}
