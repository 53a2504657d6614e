package database

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	apperrors "row-merger/core/errors"
	"row-merger/core/utils"

	"gorm.io/gorm"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var nonIdentifierRegex = regexp.MustCompile(`[^a-z0-9_]+`)

// insertBatchSize bounds the number of rows per INSERT statement.
const insertBatchSize = 500

// ValidateIdentifier rejects table names that would need quoting to be safe.
func ValidateIdentifier(name string) error {
	if !identifierRegex.MatchString(name) {
		return apperrors.NewValidationError("table", fmt.Sprintf("%q is not a valid identifier", name))
	}
	return nil
}

// ReadTable loads every row of a table as text. The header lists the columns in
// declaration order; NULL values become empty strings.
func ReadTable(ctx context.Context, db *gorm.DB, table string) ([]string, [][]string, error) {
	columns, err := GetTableColumns(db.WithContext(ctx), table)
	if err != nil {
		return nil, nil, err
	}
	if len(columns) == 0 {
		return nil, nil, apperrors.NewNotFoundError("table", table)
	}

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Field
	}

	rows, err := db.WithContext(ctx).Table(table).Select(header).Rows()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	var records [][]string
	for rows.Next() {
		values := make([]any, len(header))
		ptrs := make([]any, len(header))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row of %s: %w", table, err)
		}

		record := make([]string, len(header))
		for i, v := range values {
			record[i] = utils.ToString(v)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}

	return header, records, nil
}

// WriteTable replaces the contents of table with rows inside a transaction.
// A missing table is created with one TEXT column per header entry. Header entries are
// turned into column names (lowercase, non-alphanumerics as underscores); rows wider
// than the header get col_N columns. The column names used are returned.
func WriteTable(ctx context.Context, db *gorm.DB, table string, header []string, rows [][]string) ([]string, error) {
	if err := ValidateIdentifier(table); err != nil {
		return nil, err
	}

	width := len(header)
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return nil, apperrors.NewValidationError("header", "table output needs at least one column")
	}
	columns := ColumnNames(header, width)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Migrator().HasTable(table) {
			if err := checkColumns(tx, table, columns); err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM " + quote(tx, table)).Error; err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
		} else if err := tx.Exec(createTableSQL(tx, table, columns)).Error; err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}

		if len(rows) == 0 {
			return nil
		}

		values := make([]map[string]interface{}, 0, len(rows))
		for _, row := range rows {
			padded := utils.PadRow(row, width)
			value := make(map[string]interface{}, width)
			for i, col := range columns {
				value[col] = padded[i]
			}
			values = append(values, value)
		}

		if err := tx.Table(table).CreateInBatches(values, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert rows into %s: %w", table, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return columns, nil
}

// ColumnNames derives unique SQL column names from a header, padded to width.
func ColumnNames(header []string, width int) []string {
	names := make([]string, width)
	taken := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = strings.Trim(nonIdentifierRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(header[i])), "_"), "_")
		}
		if name == "" || (name[0] >= '0' && name[0] <= '9') {
			name = fmt.Sprintf("col_%d", i+1)
		}
		// Suffixes must not collide with names generated or given earlier.
		base := name
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func checkColumns(tx *gorm.DB, table string, columns []string) error {
	existing, err := GetTableColumns(tx, table)
	if err != nil {
		return err
	}
	have := make(map[string]struct{}, len(existing))
	for _, col := range existing {
		have[strings.ToLower(col.Field)] = struct{}{}
	}
	for _, col := range columns {
		if _, ok := have[col]; !ok {
			return apperrors.NewValidationError("header", fmt.Sprintf("table %s has no column %s", table, col))
		}
	}
	return nil
}

func createTableSQL(tx *gorm.DB, table string, columns []string) string {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quote(tx, col) + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quote(tx, table), strings.Join(defs, ", "))
}

func quote(tx *gorm.DB, name string) string {
	var b strings.Builder
	tx.Dialector.QuoteTo(&b, name)
	return b.String()
}
