package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/sutram/service-registry/internal/core/ingest"
)

// readXLSX decodes the first worksheet. Numeric cells become float64, and
// numeric cells carrying a date number format become time.Time.
func readXLSX(data []byte) (*ingest.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(raw))
	for r, cells := range raw {
		row := make([]any, len(cells))
		for c, v := range cells {
			row[c] = xlsxCell(f, sheet, c+1, r+1, v)
		}
		if blankRow(row) {
			continue
		}
		rows = append(rows, row)
	}
	return newTable(rows)
}

func xlsxCell(f *excelize.File, sheet string, col, row int, raw string) any {
	if raw == "" {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return raw
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return raw
		}
		if isDateCell(f, sheet, cell) {
			if t, err := excelize.ExcelDateToTime(n, false); err == nil {
				return t
			}
		}
		return n
	default:
		return raw
	}
}

func isDateCell(f *excelize.File, sheet, cell string) bool {
	id, err := f.GetCellStyle(sheet, cell)
	if err != nil || id == 0 {
		return false
	}
	style, err := f.GetStyle(id)
	if err != nil || style == nil {
		return false
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt)
	}
	return (style.NumFmt >= 14 && style.NumFmt <= 22) || (style.NumFmt >= 45 && style.NumFmt <= 47)
}

// isDateFormatCode reports whether a custom number format renders a date,
// ignoring quoted literals and bracketed sections such as colours or locales.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	quoted, bracket := false, false
	for _, c := range code {
		switch {
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '[':
			bracket = true
		case c == ']':
			bracket = false
		case !bracket:
			b.WriteRune(c)
		}
	}
	s := strings.ToLower(b.String())
	return strings.ContainsAny(s, "dy")
}

// xlsMaxCols bounds the scan of rows that carry cells but no ROW record,
// which leaves their column range unset.
const xlsMaxCols = 256

// readXLS decodes the first sheet of a legacy BIFF workbook. The decoder
// panics on some corrupt files, so panics are turned into errors. The
// decoder only yields strings, so cells that round-trip as numbers become
// float64 the way numeric XLSX cells do.
func readXLS(data []byte) (t *ingest.Table, err error) {
	defer func() {
		if p := recover(); p != nil {
			t, err = nil, fmt.Errorf("xls decode: %v", p)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, errors.New("no workbook stream")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("workbook has no sheets")
	}

	var rows [][]any
	for i := 0; i <= int(sheet.MaxRow); i++ {
		r, ok := xlsRow(sheet, i)
		if !ok {
			continue
		}
		width := r.LastCol()
		if width == 0 {
			width = xlsMaxCols
		}
		row := make([]any, width)
		for j := r.FirstCol(); j < width; j++ {
			if v := r.Col(j); v != "" {
				row[j] = xlsCell(v)
			}
		}
		if blankRow(row) {
			continue
		}
		rows = append(rows, trimRow(row))
	}
	return newTable(rows)
}

// xlsRow returns row i. Sheets are sparse and the decoder panics on rows
// it never saw, so those report false.
func xlsRow(sheet *xls.WorkSheet, i int) (r *xls.Row, ok bool) {
	defer func() {
		if recover() != nil {
			r, ok = nil, false
		}
	}()
	r = sheet.Row(i)
	return r, r != nil
}

// xlsCell keeps text such as "00102" intact and turns canonical numbers
// into float64.
func xlsCell(v string) any {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || strconv.FormatFloat(n, 'f', -1, 64) != v {
		return v
	}
	return n
}

func trimRow(row []any) []any {
	n := len(row)
	for n > 0 && row[n-1] == nil {
		n--
	}
	return row[:n]
}
