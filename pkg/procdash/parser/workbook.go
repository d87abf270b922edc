package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/procdash-go/pkg/procdash/models"
	"github.com/xuri/excelize/v2"
)

// Parse decodes an xlsx blob into the required sheet tables.
// It fails on the first required sheet that is absent or malformed.
func Parse(blob []byte) (models.SheetMap, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidFormat, err)
	}
	defer f.Close()

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}
	for _, name := range models.RequiredSheets {
		if !present[name] {
			return nil, &models.MissingSheetError{Sheet: name}
		}
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	styles := make(map[int]bool)
	sheets := make(models.SheetMap, len(models.RequiredSheets))
	for _, name := range models.RequiredSheets {
		table, err := ReadTable(f, name, styles, date1904)
		if err != nil {
			return nil, err
		}
		sheets[name] = table
	}
	return sheets, nil
}

// ReadTable reads one sheet of an open workbook as a RawTable.
// styles memoises date-format lookups across sheets of the same workbook.
func ReadTable(f *excelize.File, sheetName string, styles map[int]bool, date1904 bool) (*models.RawTable, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &models.MalformedTableError{Sheet: sheetName, Reason: err.Error()}
	}
	if styles == nil {
		styles = make(map[int]bool)
	}
	isDate := func(row, col int) bool {
		text := strings.TrimSpace(rows[row][col])
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return false
		}
		cell, err := excelize.CoordinatesToCellName(col+1, row+1)
		if err != nil {
			return false
		}
		idx, err := f.GetCellStyle(sheetName, cell)
		if err != nil {
			return false
		}
		return styleIsDate(f, idx, styles)
	}
	return buildTable(sheetName, rows, isDate, date1904)
}
