// Package procdash turns a procurement workbook into the eight dashboard charts.
package procdash

import (
	"github.com/ukaji3/procdash-go/pkg/procdash/chartspec"
	"github.com/ukaji3/procdash-go/pkg/procdash/models"
	"github.com/ukaji3/procdash-go/pkg/procdash/normalize"
)

// BuildFunc maps a normalized dataset to chart options.
type BuildFunc func(ds *models.ChartDataset, theme *models.Theme) (models.ChartOptions, error)

// ChartSpec binds one dashboard chart to its sheet, normalizer and builder.
type ChartSpec struct {
	// ID is the stable chart identifier used in URLs and file names.
	ID string
	// Title is the heading shown above the chart.
	Title string
	// Sheet is the workbook sheet the chart reads.
	Sheet string
	// Normalize converts the sheet table to a dataset.
	Normalize normalize.Func
	// Build converts the dataset to chart options.
	Build BuildFunc
}

func line(series string, smooth bool) BuildFunc {
	return func(ds *models.ChartDataset, theme *models.Theme) (models.ChartOptions, error) {
		return chartspec.BuildLine(ds, theme, series, smooth)
	}
}

func bar(series string) BuildFunc {
	return func(ds *models.ChartDataset, theme *models.Theme) (models.ChartOptions, error) {
		return chartspec.BuildBar(ds, theme, series)
	}
}

func pie(ds *models.ChartDataset, theme *models.Theme) (models.ChartOptions, error) {
	return chartspec.BuildPie(ds, theme)
}

var registry = []ChartSpec{
	{normalize.ChartDailyOrders, "Daily Orders", models.SheetDailyOrders, normalize.DailyOrders, line("PO Count", true)},
	{normalize.ChartWeeklyOrders, "Weekly Orders", models.SheetWeeklyOrders, normalize.WeeklyOrders, line("PO Count", true)},
	{normalize.ChartMonthlyOrders, "Monthly Orders", models.SheetMonthlyOrders, normalize.MonthlyOrders, bar("PO Count")},
	{normalize.ChartSpendingDistribution, "Spending Distribution", models.SheetSpendingDistribution, normalize.SpendingDistribution, pie},
	{normalize.ChartBuyerAnalysis, "Buyer Analysis", models.SheetBuyerAnalysis, normalize.BuyerAnalysis, pie},
	{normalize.ChartTopSuppliersSpend, "Top 20 by PO Value", models.SheetTopSuppliersSpend, normalize.TopSuppliersBySpend, bar("Total Spend")},
	{normalize.ChartTopSuppliersPOs, "Top 20 by PO Count", models.SheetTopSuppliersPOs, normalize.TopSuppliersByCount, bar("PO Count")},
	{normalize.ChartTimeTrends, "Total Spend Trends", models.SheetTimeTrends, normalize.TimeTrends, line("Total Spend", false)},
}

// Charts returns the dashboard charts in layout order.
func Charts() []ChartSpec {
	return append([]ChartSpec(nil), registry...)
}
