// Package normalize maps decoded sheet tables into chart datasets.
package normalize

import (
	"sort"

	"github.com/ukaji3/procdash-go/pkg/procdash/models"
)

// Chart ids, one per dashboard chart.
const (
	ChartDailyOrders          = "daily-orders"
	ChartWeeklyOrders         = "weekly-orders"
	ChartMonthlyOrders        = "monthly-orders"
	ChartSpendingDistribution = "spending-distribution"
	ChartBuyerAnalysis        = "buyer-analysis"
	ChartTopSuppliersSpend    = "top-suppliers-spend"
	ChartTopSuppliersPOs      = "top-suppliers-pos"
	ChartTimeTrends           = "time-trends"
)

// TopN is the number of suppliers kept by the ranking charts.
const TopN = 20

// Func normalizes one table into a chart dataset.
type Func func(table *models.RawTable) (*models.ChartDataset, error)

// categoryFunc converts a category cell to its display form.
type categoryFunc func(column string, v models.Value) (string, error)

// layout describes the columns a chart reads.
type layout struct {
	chart    string
	category string
	value    string
	group    string // optional
	display  categoryFunc
}

func plain(_ string, v models.Value) (string, error) { return v.Display(), nil }

// DailyOrders requires DAY and PO_Count.
func DailyOrders(table *models.RawTable) (*models.ChartDataset, error) {
	return layout{chart: ChartDailyOrders, category: "DAY", value: "PO_Count", display: plain}.apply(table)
}

// WeeklyOrders requires WEEK and PO_Count.
func WeeklyOrders(table *models.RawTable) (*models.ChartDataset, error) {
	return layout{chart: ChartWeeklyOrders, category: "WEEK", value: "PO_Count", display: plain}.apply(table)
}

// MonthlyOrders requires MONTH (1-12) and PO_Count.
func MonthlyOrders(table *models.RawTable) (*models.ChartDataset, error) {
	return layout{chart: ChartMonthlyOrders, category: "MONTH", value: "PO_Count", display: MonthName}.apply(table)
}

// SpendingDistribution requires TYPE and PO_AMOUNT.
func SpendingDistribution(table *models.RawTable) (*models.ChartDataset, error) {
	return layout{chart: ChartSpendingDistribution, category: "TYPE", value: "PO_AMOUNT", display: plain}.apply(table)
}

// BuyerAnalysis requires BUYER and Total_Spending_EUR.
func BuyerAnalysis(table *models.RawTable) (*models.ChartDataset, error) {
	return layout{chart: ChartBuyerAnalysis, category: "BUYER", value: "Total_Spending_EUR", display: plain}.apply(table)
}

// TopSuppliersBySpend ranks SUPPLIER by Total_Spend_EUR and keeps the top TopN.
func TopSuppliersBySpend(table *models.RawTable) (*models.ChartDataset, error) {
	return layout{chart: ChartTopSuppliersSpend, category: "SUPPLIER", value: "Total_Spend_EUR", display: plain}.ranked(table)
}

// TopSuppliersByCount ranks SUPPLIER by Number_of_POs and keeps the top TopN.
func TopSuppliersByCount(table *models.RawTable) (*models.ChartDataset, error) {
	return layout{chart: ChartTopSuppliersPOs, category: "SUPPLIER", value: "Number_of_POs", display: plain}.ranked(table)
}

// TimeTrends requires MONTH (1-12) and Total_Spend_EUR. An optional YEAR
// column fills the dataset groups and labels each category "Mon YYYY".
func TimeTrends(table *models.RawTable) (*models.ChartDataset, error) {
	return layout{chart: ChartTimeTrends, category: "MONTH", value: "Total_Spend_EUR", group: "YEAR", display: MonthName}.apply(table)
}

func (l layout) check(table *models.RawTable) error {
	for _, col := range []string{l.category, l.value} {
		if !table.HasColumn(col) {
			return &models.MissingColumnError{Chart: l.chart, Column: col}
		}
	}
	return nil
}

func (l layout) apply(table *models.RawTable) (*models.ChartDataset, error) {
	if err := l.check(table); err != nil {
		return nil, err
	}
	grouped := l.group != "" && table.HasColumn(l.group)

	ds := &models.ChartDataset{
		Chart:      l.chart,
		Categories: []string{},
		Values:     []float64{},
	}
	if grouped {
		ds.Groups = []string{}
	}
	for _, row := range table.Rows {
		value, ok := row[l.value].Finite()
		if !ok {
			ds.Dropped++
			continue
		}
		category, err := l.display(l.category, row[l.category])
		if err != nil {
			return nil, err
		}
		if grouped {
			group := row[l.group].Display()
			if group != "" {
				category += " " + group
			}
			ds.Groups = append(ds.Groups, group)
		}
		ds.Append(category, value)
	}
	return ds, nil
}

func (l layout) ranked(table *models.RawTable) (*models.ChartDataset, error) {
	if err := l.check(table); err != nil {
		return nil, err
	}
	ds, err := l.apply(RankDescending(table, l.value))
	if err != nil {
		return nil, err
	}
	if ds.Len() > TopN {
		ds.Categories = ds.Categories[:TopN]
		ds.Values = ds.Values[:TopN]
	}
	return ds, nil
}

// RankDescending returns a copy of table with rows stably sorted by column,
// highest first. Ties keep source order; rows without a finite value sort
// last in source order. The input table is not modified.
func RankDescending(table *models.RawTable, column string) *models.RawTable {
	rows := append([]models.Row(nil), table.Rows...)
	sort.SliceStable(rows, func(i, j int) bool {
		a, aok := rows[i][column].Finite()
		b, bok := rows[j][column].Finite()
		if aok != bok {
			return aok
		}
		return aok && a > b
	})
	return table.WithRows(rows)
}
