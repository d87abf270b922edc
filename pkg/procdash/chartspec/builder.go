// Package chartspec builds declarative chart options from normalized datasets.
//
// Builders are pure: they copy everything they need out of the dataset and
// the theme, so the resulting options are self-contained.
package chartspec

import (
	"github.com/ukaji3/procdash-go/pkg/procdash/models"
)

// Pie ring radii and tooltip format.
const (
	PieInnerRadius      = "40%"
	PieOuterRadius      = "70%"
	PieTooltipFormatter = "{b}: {d}%"
)

// BuildLine returns line chart options.
func BuildLine(ds *models.ChartDataset, theme *models.Theme, seriesName string, smooth bool) (models.ChartOptions, error) {
	if err := check(ds); err != nil {
		return models.ChartOptions{}, err
	}
	o := axisChart(ds, theme, append([]string{}, ds.Categories...))
	o.Series = []models.Series{{
		Name:   seriesName,
		Type:   models.SeriesLine,
		Data:   seriesData(ds),
		Smooth: smooth,
	}}
	return o, nil
}

// BuildBar returns bar chart options.
func BuildBar(ds *models.ChartDataset, theme *models.Theme, seriesName string) (models.ChartOptions, error) {
	if err := check(ds); err != nil {
		return models.ChartOptions{}, err
	}
	o := axisChart(ds, theme, append([]string{}, ds.Categories...))
	o.Series = []models.Series{{
		Name: seriesName,
		Type: models.SeriesBar,
		Data: seriesData(ds),
	}}
	return o, nil
}

// BuildPie returns ring chart options with tooltip-only labels. Slice
// percentages are left to the renderer.
func BuildPie(ds *models.ChartDataset, theme *models.Theme) (models.ChartOptions, error) {
	if err := check(ds); err != nil {
		return models.ChartOptions{}, err
	}
	data := make([]models.DataItem, ds.Len())
	for i, name := range ds.Categories {
		data[i] = models.DataItem{Name: name, Value: ds.Values[i]}
	}
	o := base(theme)
	o.Tooltip.Trigger = "item"
	o.Tooltip.Formatter = PieTooltipFormatter
	o.Series = []models.Series{{
		Type:   models.SeriesPie,
		Data:   data,
		Radius: []string{PieInnerRadius, PieOuterRadius},
		Label:  &models.Label{Show: false},
	}}
	return o, nil
}

func check(ds *models.ChartDataset) error {
	if !ds.Consistent() {
		return &models.InconsistentDatasetError{Chart: ds.Chart, Categories: len(ds.Categories), Values: len(ds.Values)}
	}
	return nil
}

func base(theme *models.Theme) models.ChartOptions {
	return models.ChartOptions{
		BackgroundColor: theme.Background(),
		Color:           theme.Palette(),
		TextStyle:       models.TextStyle{Color: theme.Text()},
		Tooltip:         models.Tooltip{BackgroundColor: theme.Tooltip()},
	}
}

func axisChart(ds *models.ChartDataset, theme *models.Theme, categories []string) models.ChartOptions {
	o := base(theme)
	o.Tooltip.Trigger = "axis"
	o.XAxis = &models.Axis{
		Type:      "category",
		Data:      categories,
		AxisLabel: models.AxisLabel{Color: theme.Text()},
		AxisLine:  &models.AxisLine{LineStyle: models.LineStyle{Color: theme.Axis()}},
	}
	o.YAxis = &models.Axis{
		Type:      "value",
		AxisLabel: models.AxisLabel{Color: theme.Text()},
		AxisLine:  &models.AxisLine{LineStyle: models.LineStyle{Color: theme.Axis()}},
		SplitLine: &models.SplitLine{LineStyle: models.LineStyle{Color: theme.Grid()}},
	}
	return o
}

func seriesData(ds *models.ChartDataset) []models.DataItem {
	data := make([]models.DataItem, ds.Len())
	for i, v := range ds.Values {
		data[i] = models.DataItem{Value: v}
	}
	return data
}
