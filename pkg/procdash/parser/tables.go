package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/procdash-go/pkg/procdash/models"
)

// dateLookup reports whether the cell at 0-based (row, col) has a date format.
type dateLookup func(row, col int) bool

// buildTable turns a sheet grid into a RawTable.
// The first non-empty row is the header and the block starts at the
// leftmost non-empty column.
func buildTable(sheet string, rows [][]string, isDate dateLookup, date1904 bool) (*models.RawTable, error) {
	headerRow, minCol := findDataBounds(rows)
	if headerRow < 0 {
		return nil, &models.MalformedTableError{Sheet: sheet, Reason: "no header row"}
	}

	header := trimTrailingBlanks(rows[headerRow][minCol:])
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			return nil, &models.MalformedTableError{Sheet: sheet, Reason: fmt.Sprintf("blank header in column %d", minCol+i+1)}
		}
		if seen[name] {
			return nil, &models.MalformedTableError{Sheet: sheet, Reason: fmt.Sprintf("duplicate header %q", name)}
		}
		seen[name] = true
		names[i] = name
	}

	width := len(names)
	var grid [][]rawCell
	for rowIdx := headerRow + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		if isBlankRow(row) {
			continue
		}
		cells := make([]rawCell, width)
		for colIdx := minCol; colIdx < len(row); colIdx++ {
			text := row[colIdx]
			i := colIdx - minCol
			if i >= width {
				if strings.TrimSpace(text) != "" {
					return nil, &models.MalformedTableError{
						Sheet:  sheet,
						Reason: fmt.Sprintf("row %d is wider than the header (%d columns)", rowIdx+1, width),
					}
				}
				continue
			}
			cells[i] = rawCell{text: text, isDate: isDate(rowIdx, colIdx)}
		}
		grid = append(grid, cells)
	}
	if len(grid) == 0 {
		return nil, &models.MalformedTableError{Sheet: sheet, Reason: "no data rows"}
	}

	table := &models.RawTable{
		Sheet:   sheet,
		Columns: make([]models.Column, width),
		Rows:    make([]models.Row, len(grid)),
	}
	column := make([]rawCell, len(grid))
	for i, name := range names {
		for r := range grid {
			column[r] = grid[r][i]
		}
		kind := inferKind(column)
		table.Columns[i] = models.Column{Name: name, Kind: kind}
		for r := range grid {
			if table.Rows[r] == nil {
				table.Rows[r] = make(models.Row, width)
			}
			table.Rows[r][name] = parseValue(column[r], kind, date1904)
		}
	}
	return table, nil
}

// findDataBounds returns the first row index with a non-empty cell and the
// leftmost non-empty column across the sheet, or -1 when the sheet is empty.
func findDataBounds(rows [][]string) (firstRow, minCol int) {
	firstRow, minCol = -1, -1
	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if firstRow < 0 {
				firstRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
		}
	}
	return
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimTrailingBlanks(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}
