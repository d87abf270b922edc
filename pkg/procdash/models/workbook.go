package models

// Required sheet names. Lookups are case-sensitive.
const (
	SheetDailyOrders          = "Daily Orders"
	SheetWeeklyOrders         = "Weekly Orders"
	SheetMonthlyOrders        = "Monthly Orders"
	SheetSpendingDistribution = "Spending Distribution"
	SheetBuyerAnalysis        = "Buyer Analysis"
	SheetTopSuppliersSpend    = "Top 20 Suppliers (Spend)"
	SheetTopSuppliersPOs      = "Top 20 Suppliers (POs)"
	SheetTimeTrends           = "Time Trends"
)

// RequiredSheets lists every sheet the workbook must contain, in check order.
var RequiredSheets = []string{
	SheetDailyOrders,
	SheetWeeklyOrders,
	SheetMonthlyOrders,
	SheetSpendingDistribution,
	SheetBuyerAnalysis,
	SheetTopSuppliersSpend,
	SheetTopSuppliersPOs,
	SheetTimeTrends,
}

// SheetMap maps required sheet name to its decoded table.
type SheetMap map[string]*RawTable
