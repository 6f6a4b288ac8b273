package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readExcel flattens every sheet to tab-separated rows. Some clinics export
// exercise schedules as spreadsheets, one exercise per row.
func readExcel(content []byte) (string, int, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return "", 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var buf strings.Builder
	sheets := f.GetSheetList()
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", 0, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			buf.WriteString(strings.Join(row, "\t"))
			buf.WriteByte('\n')
		}
	}
	return strings.TrimSpace(buf.String()), len(sheets), nil
}
