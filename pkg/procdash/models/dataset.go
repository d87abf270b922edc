package models

// ChartDataset is the normalized view of one sheet for one chart.
// Categories, Values and (when present) Groups are parallel slices.
type ChartDataset struct {
	// Chart is the chart id the dataset was normalized for.
	Chart string `json:"chart"`
	// Categories holds display-form category labels in output order.
	Categories []string `json:"categories"`
	// Values holds finite values matching Categories.
	Values []float64 `json:"values"`
	// Groups holds an optional grouping label per entry.
	Groups []string `json:"groups,omitempty"`
	// Dropped counts source rows excluded for a missing or non-finite value.
	Dropped int `json:"dropped"`
}

// Len returns the number of dataset entries.
func (d *ChartDataset) Len() int { return len(d.Categories) }

// Consistent reports whether the parallel slices have matching lengths.
func (d *ChartDataset) Consistent() bool {
	if len(d.Categories) != len(d.Values) {
		return false
	}
	return d.Groups == nil || len(d.Groups) == len(d.Categories)
}

// Append adds one entry.
func (d *ChartDataset) Append(category string, value float64) {
	d.Categories = append(d.Categories, category)
	d.Values = append(d.Values, value)
}
