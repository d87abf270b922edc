package procdash

import (
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/procdash-go/internal/logger"
	"github.com/ukaji3/procdash-go/pkg/procdash/models"
	"github.com/ukaji3/procdash-go/pkg/procdash/parser"
)

// Chart is one rendered dashboard chart.
type Chart struct {
	ID      string              `json:"id"`
	Title   string              `json:"title"`
	Sheet   string              `json:"sheet"`
	Options models.ChartOptions `json:"options"`
	// Entries is the number of plotted categories.
	Entries int `json:"entries"`
	// Dropped counts rows excluded for a missing or non-finite value.
	Dropped int `json:"dropped"`
	// Values holds the plotted values, for diagnostics.
	Values []float64 `json:"-"`
}

// Dashboard is the full set of charts produced by one render pass.
type Dashboard struct {
	Charts []Chart `json:"charts"`
}

// Chart returns the chart with the given id.
func (d *Dashboard) Chart(id string) (Chart, bool) {
	for _, c := range d.Charts {
		if c.ID == id {
			return c, true
		}
	}
	return Chart{}, false
}

// Dropped returns the dropped-row count per chart id.
func (d *Dashboard) Dropped() map[string]int {
	out := make(map[string]int, len(d.Charts))
	for _, c := range d.Charts {
		out[c.ID] = c.Dropped
	}
	return out
}

// Run parses an xlsx blob and builds every dashboard chart.
func Run(blob []byte, theme *models.Theme) (*Dashboard, error) {
	sheets, err := parser.Parse(blob)
	if err != nil {
		return nil, NewStageError(StageParse, "", err)
	}
	return Build(sheets, theme)
}

// Build normalizes every required sheet and builds its chart options.
// Any failure aborts the whole pass; no partial dashboard is returned.
func Build(sheets models.SheetMap, theme *models.Theme) (*Dashboard, error) {
	start := time.Now()
	runID := uuid.NewString()

	for _, name := range models.RequiredSheets {
		if sheets[name] == nil {
			return nil, NewStageError(StageParse, "", &models.MissingSheetError{Sheet: name})
		}
	}

	dash := &Dashboard{Charts: make([]Chart, 0, len(registry))}
	dropped := 0
	for _, spec := range registry {
		ds, err := spec.Normalize(sheets[spec.Sheet])
		if err != nil {
			logger.L().Warn("render pass aborted", "run", runID, "stage", StageNormalize, "chart", spec.ID, "error", err)
			return nil, NewStageError(StageNormalize, spec.ID, err)
		}
		opts, err := spec.Build(ds, theme)
		if err != nil {
			logger.L().Warn("render pass aborted", "run", runID, "stage", StageBuild, "chart", spec.ID, "error", err)
			return nil, NewStageError(StageBuild, spec.ID, err)
		}
		if ds.Dropped > 0 {
			logger.L().Debug("rows dropped", "run", runID, "chart", spec.ID, "dropped", ds.Dropped)
		}
		dropped += ds.Dropped
		dash.Charts = append(dash.Charts, Chart{
			ID:      spec.ID,
			Title:   spec.Title,
			Sheet:   spec.Sheet,
			Options: opts,
			Entries: ds.Len(),
			Dropped: ds.Dropped,
			Values:  append([]float64(nil), ds.Values...),
		})
	}

	logger.L().Info("render pass complete", "run", runID, "charts", len(dash.Charts), "dropped", dropped, "elapsed", time.Since(start))
	return dash, nil
}
