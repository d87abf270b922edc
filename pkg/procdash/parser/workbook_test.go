package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/procdash-go/pkg/procdash/models"
	"github.com/ukaji3/procdash-go/pkg/procdash/sample"
	"github.com/xuri/excelize/v2"
)

func encode(t *testing.T, sheets map[string]sample.Grid) []byte {
	t.Helper()
	blob, err := sample.Workbook(sheets)
	require.NoError(t, err)
	return blob
}

func TestParseSampleWorkbook(t *testing.T) {
	sheets, err := Parse(encode(t, sample.Sheets()))
	require.NoError(t, err)
	require.Len(t, sheets, len(models.RequiredSheets))

	daily := sheets[models.SheetDailyOrders]
	require.NotNil(t, daily)
	assert.Equal(t, []models.Column{
		{Name: "DAY", Kind: models.KindNumber},
		{Name: "PO_Count", Kind: models.KindNumber},
	}, daily.Columns)
	require.Len(t, daily.Rows, 5)
	assert.Equal(t, models.Number(1), daily.Rows[0]["DAY"])
	assert.Equal(t, models.Number(12), daily.Rows[0]["PO_Count"])

	spend := sheets[models.SheetSpendingDistribution]
	col, ok := spend.Column("TYPE")
	require.True(t, ok)
	assert.Equal(t, models.KindString, col.Kind)
	assert.Equal(t, models.String("Goods"), spend.Rows[0]["TYPE"])
	assert.Equal(t, models.Number(125000.5), spend.Rows[0]["PO_AMOUNT"])
}

func TestParseMissingSheet(t *testing.T) {
	sheets := sample.Sheets()
	delete(sheets, models.SheetBuyerAnalysis)

	_, err := Parse(encode(t, sheets))
	var missing *models.MissingSheetError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.Equal(t, "Buyer Analysis", missing.Sheet)
}

func TestParseSheetNameIsCaseSensitive(t *testing.T) {
	sheets := sample.Sheets()
	sheets["daily orders"] = sheets[models.SheetDailyOrders]
	delete(sheets, models.SheetDailyOrders)

	_, err := Parse(encode(t, sheets))
	var missing *models.MissingSheetError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, models.SheetDailyOrders, missing.Sheet)
}

func TestParseInvalidBlob(t *testing.T) {
	_, err := Parse([]byte("not a workbook"))
	assert.ErrorIs(t, err, models.ErrInvalidFormat)
}

func TestParseMalformedTables(t *testing.T) {
	tests := []struct {
		name   string
		grid   sample.Grid
		reason string
	}{
		{"empty sheet", sample.Grid{}, "no header row"},
		{"header only", sample.Grid{{"DAY", "PO_Count"}}, "no data rows"},
		{"blank rows only", sample.Grid{{"DAY", "PO_Count"}, {"", ""}}, "no data rows"},
		{"ragged row", sample.Grid{{"DAY", "PO_Count"}, {1, 2, "extra"}}, "row 2 is wider than the header (2 columns)"},
		{"duplicate header", sample.Grid{{"DAY", "DAY"}, {1, 2}}, `duplicate header "DAY"`},
		{"blank header", sample.Grid{{"DAY", "", "PO_Count"}, {1, 2, 3}}, "blank header in column 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheets := sample.Sheets()
			sheets[models.SheetDailyOrders] = tt.grid

			_, err := Parse(encode(t, sheets))
			var malformed *models.MalformedTableError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, models.SheetDailyOrders, malformed.Sheet)
			assert.Equal(t, tt.reason, malformed.Reason)
		})
	}
}

func TestParseOffsetBlockAndBlankRows(t *testing.T) {
	sheets := sample.Sheets()
	sheets[models.SheetWeeklyOrders] = sample.Grid{
		{},
		{nil, "WEEK", "PO_Count"},
		{nil, 1, 10},
		{},
		{nil, 2, "N/A"},
	}

	got, err := Parse(encode(t, sheets))
	require.NoError(t, err)
	weekly := got[models.SheetWeeklyOrders]
	require.Len(t, weekly.Rows, 2)
	assert.Equal(t, models.Number(2), weekly.Rows[1]["WEEK"])
	assert.Equal(t, models.Empty(), weekly.Rows[1]["PO_Count"])
}

func TestParseShortRowsArePadded(t *testing.T) {
	sheets := sample.Sheets()
	sheets[models.SheetWeeklyOrders] = sample.Grid{
		{"WEEK", "PO_Count"},
		{1},
		{2, 5},
	}

	got, err := Parse(encode(t, sheets))
	require.NoError(t, err)
	weekly := got[models.SheetWeeklyOrders]
	require.Len(t, weekly.Rows, 2)
	for _, row := range weekly.Rows {
		assert.Len(t, row, 2)
	}
	assert.Equal(t, models.Empty(), weekly.Rows[0]["PO_Count"])
}

func TestParseDateColumn(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	for name, grid := range sample.Sheets() {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for r, row := range grid {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			values := append([]any(nil), row...)
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}
	// Replace DAY with real dates carrying a date number format.
	style, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, f.SetCellValue(models.SheetDailyOrders, cell, time.Date(2024, 1, 15+i, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, f.SetCellStyle(models.SheetDailyOrders, cell, cell, style))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	sheets, err := Parse(buf.Bytes())
	require.NoError(t, err)
	daily := sheets[models.SheetDailyOrders]
	col, _ := daily.Column("DAY")
	assert.Equal(t, models.KindDate, col.Kind)
	assert.Equal(t, "2024-01-15", daily.Rows[0]["DAY"].Display())
	assert.Equal(t, "2024-01-19", daily.Rows[4]["DAY"].Display())
}

func TestParseMixedColumn(t *testing.T) {
	sheets := sample.Sheets()
	sheets[models.SheetDailyOrders] = sample.Grid{
		{"DAY", "PO_Count"},
		{1, 12}, {2, "#N/A"}, {3, "pending"}, {4, 22},
	}

	got, err := Parse(encode(t, sheets))
	require.NoError(t, err)
	daily := got[models.SheetDailyOrders]
	col, _ := daily.Column("PO_Count")
	assert.Equal(t, models.KindString, col.Kind)

	assert.Equal(t, models.String("12"), daily.Rows[0]["PO_Count"])
	assert.Equal(t, models.Empty(), daily.Rows[1]["PO_Count"])
	assert.Equal(t, models.String("pending"), daily.Rows[2]["PO_Count"])

	n, ok := daily.Rows[3]["PO_Count"].Finite()
	assert.True(t, ok)
	assert.Equal(t, 22.0, n)
}
