// Package sample generates demonstration procurement workbooks.
package sample

import (
	"fmt"
	"slices"

	"github.com/ukaji3/procdash-go/pkg/procdash/models"
	"github.com/xuri/excelize/v2"
)

// Grid is a sheet's content; the first row is the header.
type Grid [][]any

// Sheets returns a small, valid dataset for every required sheet.
func Sheets() map[string]Grid {
	return map[string]Grid{
		models.SheetDailyOrders: {
			{"DAY", "PO_Count"},
			{1, 12}, {2, 18}, {3, 9}, {4, 22}, {5, 15},
		},
		models.SheetWeeklyOrders: {
			{"WEEK", "PO_Count"},
			{1, 64}, {2, 71}, {3, 58}, {4, 80},
		},
		models.SheetMonthlyOrders: {
			{"MONTH", "PO_Count"},
			{1, 240}, {2, 198}, {3, 265}, {4, 231},
		},
		models.SheetSpendingDistribution: {
			{"TYPE", "PO_AMOUNT"},
			{"Goods", 125000.5}, {"Services", 84000}, {"Software", 36250.25},
		},
		models.SheetBuyerAnalysis: {
			{"BUYER", "Total_Spending_EUR"},
			{"Alice", 91000}, {"Bruno", 67500.75}, {"Chen", 42000},
		},
		models.SheetTopSuppliersSpend: {
			{"SUPPLIER", "Total_Spend_EUR"},
			{"Acme GmbH", 50000}, {"Borealis SA", 100000}, {"Cobalt Ltd", 100000}, {"Delta BV", 75000},
		},
		models.SheetTopSuppliersPOs: {
			{"SUPPLIER", "Number_of_POs"},
			{"Acme GmbH", 41}, {"Borealis SA", 17}, {"Cobalt Ltd", 29},
		},
		models.SheetTimeTrends: {
			{"MONTH", "Total_Spend_EUR"},
			{1, 210000}, {2, 185500.5}, {3, 232000}, {4, 199999.99},
		},
	}
}

// Workbook encodes sheets as an xlsx blob. Sheets are written in
// RequiredSheets order first, then any extra names in the map.
func Workbook(sheets map[string]Grid) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	order := make([]string, 0, len(sheets))
	for _, name := range models.RequiredSheets {
		if _, ok := sheets[name]; ok {
			order = append(order, name)
		}
	}
	for name := range sheets {
		if !slices.Contains(order, name) {
			order = append(order, name)
		}
	}

	for _, name := range order {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", name, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return nil, err
			}
			values := append([]any(nil), row...)
			if err := f.SetSheetRow(name, cell, &values); err != nil {
				return nil, fmt.Errorf("write sheet %q row %d: %w", name, r+1, err)
			}
		}
	}
	if len(order) > 0 && !slices.Contains(order, "Sheet1") {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
