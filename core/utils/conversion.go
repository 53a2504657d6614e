package utils

import (
	"fmt"
	"strconv"
	"time"
)

// ToString converts a scanned database value to its text form.
// NULL becomes the empty string, byte slices are read as text and times use RFC 3339.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// PadRow returns row resized to width: short rows are padded with empty
// strings and long rows are cut.
func PadRow(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
