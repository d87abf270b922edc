package procdash

import (
	"fmt"

	"github.com/ukaji3/procdash-go/pkg/procdash/models"
)

// Error types raised by the pipeline stages.
type (
	MissingSheetError        = models.MissingSheetError
	MalformedTableError      = models.MalformedTableError
	MissingColumnError       = models.MissingColumnError
	InvalidCategoryError     = models.InvalidCategoryError
	InconsistentDatasetError = models.InconsistentDatasetError
)

// ErrInvalidFormat indicates the input blob is not a valid xlsx workbook.
var ErrInvalidFormat = models.ErrInvalidFormat

// Pipeline stages reported by StageError.
const (
	StageParse     = "parse"
	StageNormalize = "normalize"
	StageBuild     = "build"
)

// StageError represents a failure in one stage of a render pass.
type StageError struct {
	Stage string // "parse", "normalize", "build"
	Chart string // empty for the parse stage
	Err   error
}

func (e *StageError) Error() string {
	if e.Chart == "" {
		return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s failed for chart %s: %v", e.Stage, e.Chart, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError.
func NewStageError(stage, chart string, err error) *StageError {
	return &StageError{
		Stage: stage,
		Chart: chart,
		Err:   err,
	}
}
