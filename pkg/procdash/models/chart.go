package models

// Series types understood by the renderer.
const (
	SeriesLine = "line"
	SeriesBar  = "bar"
	SeriesPie  = "pie"
)

// DataItem is one series point. Name is only set for pie slices.
type DataItem struct {
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value"`
}

// Label controls on-series labels.
type Label struct {
	Show bool `json:"show"`
}

// Series describes one plotted series.
type Series struct {
	// Name is the legend and tooltip name.
	Name string `json:"name,omitempty"`
	// Type is one of SeriesLine, SeriesBar or SeriesPie.
	Type string `json:"type"`
	// Data holds the series points in category order.
	Data []DataItem `json:"data"`
	// Smooth enables curve smoothing for line series.
	Smooth bool `json:"smooth,omitempty"`
	// Radius is the [inner, outer] ring radius for pie series.
	Radius []string `json:"radius,omitempty"`
	// Label controls slice labels for pie series.
	Label *Label `json:"label,omitempty"`
}

// LineStyle holds a stroke color.
type LineStyle struct {
	Color string `json:"color"`
}

// AxisLine styles the axis line.
type AxisLine struct {
	LineStyle LineStyle `json:"lineStyle"`
}

// SplitLine styles the grid lines drawn across the plot.
type SplitLine struct {
	LineStyle LineStyle `json:"lineStyle"`
}

// AxisLabel styles axis tick labels.
type AxisLabel struct {
	Color string `json:"color"`
}

// Axis describes a category or value axis.
type Axis struct {
	// Type is "category" or "value".
	Type string `json:"type"`
	// Data holds the category labels, always as strings.
	Data      []string   `json:"data,omitempty"`
	AxisLabel AxisLabel  `json:"axisLabel"`
	AxisLine  *AxisLine  `json:"axisLine,omitempty"`
	SplitLine *SplitLine `json:"splitLine,omitempty"`
}

// Tooltip configures hover behavior.
type Tooltip struct {
	// Trigger is "axis" or "item".
	Trigger         string `json:"trigger"`
	Formatter       string `json:"formatter,omitempty"`
	BackgroundColor string `json:"backgroundColor"`
}

// TextStyle is the global text style.
type TextStyle struct {
	Color string `json:"color"`
}

// ChartOptions is a declarative, self-contained chart description.
// It carries no behavior; the renderer consumes it as data.
type ChartOptions struct {
	BackgroundColor string    `json:"backgroundColor"`
	Color           []string  `json:"color"`
	TextStyle       TextStyle `json:"textStyle"`
	Tooltip         Tooltip   `json:"tooltip"`
	XAxis           *Axis     `json:"xAxis,omitempty"`
	YAxis           *Axis     `json:"yAxis,omitempty"`
	Series          []Series  `json:"series"`
}
