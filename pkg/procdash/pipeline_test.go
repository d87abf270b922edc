package procdash

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/procdash-go/internal/logger"
	"github.com/ukaji3/procdash-go/pkg/procdash/models"
	"github.com/ukaji3/procdash-go/pkg/procdash/normalize"
	"github.com/ukaji3/procdash-go/pkg/procdash/parser"
	"github.com/ukaji3/procdash-go/pkg/procdash/sample"
)

func init() {
	logger.SetOutput(io.Discard)
}

func sampleBlob(t *testing.T, edit func(map[string]sample.Grid)) []byte {
	t.Helper()
	sheets := sample.Sheets()
	if edit != nil {
		edit(sheets)
	}
	blob, err := sample.Workbook(sheets)
	require.NoError(t, err)
	return blob
}

func TestRunSample(t *testing.T) {
	dash, err := Run(sampleBlob(t, nil), models.DefaultTheme())
	require.NoError(t, err)
	require.Len(t, dash.Charts, 8)

	var ids []string
	for _, c := range dash.Charts {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{
		"daily-orders", "weekly-orders", "monthly-orders", "spending-distribution",
		"buyer-analysis", "top-suppliers-spend", "top-suppliers-pos", "time-trends",
	}, ids)

	monthly, ok := dash.Chart(normalize.ChartMonthlyOrders)
	require.True(t, ok)
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr"}, monthly.Options.XAxis.Data)
	assert.Equal(t, models.SeriesBar, monthly.Options.Series[0].Type)

	top, _ := dash.Chart(normalize.ChartTopSuppliersSpend)
	assert.Equal(t, []string{"Borealis SA", "Cobalt Ltd", "Delta BV", "Acme GmbH"}, top.Options.XAxis.Data)

	spend, _ := dash.Chart(normalize.ChartSpendingDistribution)
	assert.Nil(t, spend.Options.XAxis)
	assert.Equal(t, "Goods", spend.Options.Series[0].Data[0].Name)
}

func TestAxisChartsHaveMatchingLengths(t *testing.T) {
	dash, err := Run(sampleBlob(t, nil), models.DefaultTheme())
	require.NoError(t, err)

	for _, c := range dash.Charts {
		if c.Options.XAxis == nil {
			continue
		}
		assert.Len(t, c.Options.Series[0].Data, len(c.Options.XAxis.Data), c.ID)
		assert.Equal(t, c.Entries, len(c.Options.XAxis.Data), c.ID)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	blob := sampleBlob(t, nil)
	theme := models.DefaultTheme()

	a, err := Run(blob, theme)
	require.NoError(t, err)
	b, err := Run(blob, theme)
	require.NoError(t, err)
	assert.True(t, reflect.DeepEqual(a, b))

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
}

func TestBuildReusesSheetMap(t *testing.T) {
	sheets, err := parser.Parse(sampleBlob(t, nil))
	require.NoError(t, err)
	theme := models.DefaultTheme()

	a, err := Build(sheets, theme)
	require.NoError(t, err)
	b, err := Build(sheets, theme)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRunMissingBuyerAnalysis(t *testing.T) {
	blob := sampleBlob(t, func(s map[string]sample.Grid) { delete(s, models.SheetBuyerAnalysis) })

	dash, err := Run(blob, models.DefaultTheme())
	assert.Nil(t, dash)

	var missing *MissingSheetError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Buyer Analysis", missing.Sheet)

	var stage *StageError
	require.ErrorAs(t, err, &stage)
	assert.Equal(t, StageParse, stage.Stage)
}

func TestBuildMissingSheetInMap(t *testing.T) {
	sheets, err := parser.Parse(sampleBlob(t, nil))
	require.NoError(t, err)
	delete(sheets, models.SheetTimeTrends)

	dash, err := Build(sheets, models.DefaultTheme())
	assert.Nil(t, dash)
	var missing *MissingSheetError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, models.SheetTimeTrends, missing.Sheet)
}

func TestRunAbortsOnInvalidMonth(t *testing.T) {
	blob := sampleBlob(t, func(s map[string]sample.Grid) {
		s[models.SheetTimeTrends] = sample.Grid{{"MONTH", "Total_Spend_EUR"}, {1, 10}, {13, 20}}
	})

	dash, err := Run(blob, models.DefaultTheme())
	assert.Nil(t, dash)

	var invalid *InvalidCategoryError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "13", invalid.Value)

	var stage *StageError
	require.ErrorAs(t, err, &stage)
	assert.Equal(t, StageNormalize, stage.Stage)
	assert.Equal(t, normalize.ChartTimeTrends, stage.Chart)
}

func TestRunAbortsOnMissingColumn(t *testing.T) {
	blob := sampleBlob(t, func(s map[string]sample.Grid) {
		s[models.SheetDailyOrders] = sample.Grid{{"DATE", "PO_Count"}, {1, 10}}
	})

	_, err := Run(blob, models.DefaultTheme())
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, normalize.ChartDailyOrders, missing.Chart)
	assert.Equal(t, "DAY", missing.Column)
}

func TestRunCountsDroppedRows(t *testing.T) {
	blob := sampleBlob(t, func(s map[string]sample.Grid) {
		s[models.SheetWeeklyOrders] = sample.Grid{{"WEEK", "PO_Count"}, {1, 10}, {2, "NaN"}, {3, "N/A"}, {4, 40}}
	})

	dash, err := Run(blob, models.DefaultTheme())
	require.NoError(t, err)
	weekly, _ := dash.Chart(normalize.ChartWeeklyOrders)
	assert.Equal(t, 2, weekly.Dropped)
	assert.Equal(t, []string{"1", "4"}, weekly.Options.XAxis.Data)
	assert.Equal(t, 2, dash.Dropped()[normalize.ChartWeeklyOrders])
}

func TestRunDropsOnlyBadCells(t *testing.T) {
	blob := sampleBlob(t, func(s map[string]sample.Grid) {
		s[models.SheetDailyOrders] = sample.Grid{{"DAY", "PO_Count"}, {1, 12}, {2, 18}, {3, "#N/A"}, {4, 22}, {5, 15}}
		s[models.SheetWeeklyOrders] = sample.Grid{{"WEEK", "PO_Count"}, {1, 64}, {2, "pending"}, {3, 58}}
	})

	dash, err := Run(blob, models.DefaultTheme())
	require.NoError(t, err)

	daily, _ := dash.Chart(normalize.ChartDailyOrders)
	assert.Equal(t, 4, daily.Entries)
	assert.Equal(t, 1, daily.Dropped)
	assert.Equal(t, []string{"1", "2", "4", "5"}, daily.Options.XAxis.Data)
	assert.Equal(t, []float64{12, 18, 22, 15}, daily.Values)

	weekly, _ := dash.Chart(normalize.ChartWeeklyOrders)
	assert.Equal(t, []string{"1", "3"}, weekly.Options.XAxis.Data)
	assert.Equal(t, 1, weekly.Dropped)
}

func TestRunSkipsFooterRowInMonthColumn(t *testing.T) {
	blob := sampleBlob(t, func(s map[string]sample.Grid) {
		s[models.SheetMonthlyOrders] = sample.Grid{{"MONTH", "PO_Count"}, {1, 240}, {2, 198}, {"total", ""}, {3, 265}}
	})

	dash, err := Run(blob, models.DefaultTheme())
	require.NoError(t, err)
	monthly, _ := dash.Chart(normalize.ChartMonthlyOrders)
	assert.Equal(t, 3, monthly.Entries)
	assert.Equal(t, 1, monthly.Dropped)
	assert.Equal(t, []string{"Jan", "Feb", "Mar"}, monthly.Options.XAxis.Data)
}

func TestRunReportsJunkMonthOnKeptRow(t *testing.T) {
	blob := sampleBlob(t, func(s map[string]sample.Grid) {
		s[models.SheetMonthlyOrders] = sample.Grid{{"MONTH", "PO_Count"}, {1, 240}, {"total", 438}}
	})

	_, err := Run(blob, models.DefaultTheme())
	var invalid *InvalidCategoryError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "total", invalid.Value)
}

func TestTimeTrendsYearLabels(t *testing.T) {
	blob := sampleBlob(t, func(s map[string]sample.Grid) {
		s[models.SheetTimeTrends] = sample.Grid{{"YEAR", "MONTH", "Total_Spend_EUR"}, {2023, 12, 10}, {2024, 1, 20}}
	})

	dash, err := Run(blob, models.DefaultTheme())
	require.NoError(t, err)
	trends, _ := dash.Chart(normalize.ChartTimeTrends)
	assert.Equal(t, []string{"Dec 2023", "Jan 2024"}, trends.Options.XAxis.Data)
}

func TestChartsReturnsCopy(t *testing.T) {
	c := Charts()
	require.Len(t, c, 8)
	c[0].Title = "changed"
	assert.Equal(t, "Daily Orders", Charts()[0].Title)
}
