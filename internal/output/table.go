package output

import (
	"fmt"
	"io"

	"github.com/rodaine/table"
)

// RenderTable renders rows as an aligned table. headerStyle, if non-nil,
// decorates the header cells.
func RenderTable(w io.Writer, columns []Column, rows []map[string]string, headerStyle func(string) string) {
	if len(rows) == 0 {
		return
	}

	headers := make([]interface{}, len(columns))
	for i, col := range columns {
		headers[i] = col.Name
	}

	tbl := table.New(headers...).WithWriter(w)
	if headerStyle != nil {
		tbl.WithHeaderFormatter(func(format string, vals ...interface{}) string {
			return headerStyle(fmt.Sprintf(format, vals...))
		})
	}

	for _, row := range rows {
		rowData := make([]interface{}, len(columns))
		for i, col := range columns {
			rowData[i] = row[col.Key]
		}
		tbl.AddRow(rowData...)
	}

	tbl.Print()
}

// MaskSecret masks sensitive values, showing only the last 4 characters
func MaskSecret(value string) string {
	if value == "" {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= 4 {
		return "****"
	}
	return "****" + string(runes[len(runes)-4:])
}
