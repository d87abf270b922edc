// Package render draws a dashboard as a standalone ECharts HTML page.
package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/ukaji3/procdash-go/pkg/procdash"
	"github.com/ukaji3/procdash-go/pkg/procdash/models"
)

const (
	chartWidth  = "420px"
	chartHeight = "400px"
)

// HTML writes every dashboard chart to w as one page. Each chart is
// configured from its ChartOptions alone.
func HTML(w io.Writer, d *procdash.Dashboard) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.PageTitle = "Procurement Dashboard"

	for _, c := range d.Charts {
		chart, err := toChart(c)
		if err != nil {
			return err
		}
		page.AddCharts(chart)
	}
	return page.Render(w)
}

func toChart(c procdash.Chart) (components.Charter, error) {
	o := c.Options
	if len(o.Series) != 1 {
		return nil, fmt.Errorf("chart %s: expected one series, got %d", c.ID, len(o.Series))
	}
	s := o.Series[0]
	global := globalOpts(c.Title, o)

	switch s.Type {
	case models.SeriesLine:
		line := charts.NewLine()
		line.SetGlobalOptions(append(global, axisOpts(o)...)...)
		line.SetXAxis(categories(o)).AddSeries(s.Name, lineData(s),
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(s.Smooth)}))
		return line, nil
	case models.SeriesBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(append(global, axisOpts(o)...)...)
		bar.SetXAxis(categories(o)).AddSeries(s.Name, barData(s))
		return bar, nil
	case models.SeriesPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(global...)
		showLabel := s.Label != nil && s.Label.Show
		pie.AddSeries(c.Title, pieData(s),
			charts.WithPieChartOpts(opts.PieChart{Radius: s.Radius}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(showLabel)}))
		return pie, nil
	default:
		return nil, fmt.Errorf("chart %s: unsupported series type %q", c.ID, s.Type)
	}
}

func globalOpts(title string, o models.ChartOptions) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:           chartWidth,
			Height:          chartHeight,
			BackgroundColor: o.BackgroundColor,
		}),
		charts.WithColorsOpts(opts.Colors(o.Color)),
		charts.WithTitleOpts(opts.Title{
			Title:      title,
			TitleStyle: &opts.TextStyle{Color: o.TextStyle.Color},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   o.Tooltip.Trigger,
			Formatter: types.FuncStr(o.Tooltip.Formatter),
		}),
	}
}

func axisOpts(o models.ChartOptions) []charts.GlobalOpts {
	var out []charts.GlobalOpts
	if o.XAxis != nil {
		out = append(out, charts.WithXAxisOpts(opts.XAxis{
			Type:      o.XAxis.Type,
			AxisLabel: &opts.AxisLabel{Color: o.XAxis.AxisLabel.Color},
		}))
	}
	if o.YAxis != nil {
		y := opts.YAxis{
			Type:      o.YAxis.Type,
			AxisLabel: &opts.AxisLabel{Color: o.YAxis.AxisLabel.Color},
		}
		if o.YAxis.SplitLine != nil {
			y.SplitLine = &opts.SplitLine{
				Show:      opts.Bool(true),
				LineStyle: &opts.LineStyle{Color: o.YAxis.SplitLine.LineStyle.Color},
			}
		}
		out = append(out, charts.WithYAxisOpts(y))
	}
	return out
}

func categories(o models.ChartOptions) []string {
	if o.XAxis == nil {
		return nil
	}
	return o.XAxis.Data
}

func lineData(s models.Series) []opts.LineData {
	out := make([]opts.LineData, len(s.Data))
	for i, d := range s.Data {
		out[i] = opts.LineData{Value: d.Value}
	}
	return out
}

func barData(s models.Series) []opts.BarData {
	out := make([]opts.BarData, len(s.Data))
	for i, d := range s.Data {
		out[i] = opts.BarData{Value: d.Value}
	}
	return out
}

func pieData(s models.Series) []opts.PieData {
	out := make([]opts.PieData, len(s.Data))
	for i, d := range s.Data {
		out[i] = opts.PieData{Name: d.Name, Value: d.Value}
	}
	return out
}
