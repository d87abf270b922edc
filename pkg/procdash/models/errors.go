package models

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat indicates the input blob is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// MissingSheetError reports a required sheet absent from the workbook.
type MissingSheetError struct {
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("missing sheet %q", e.Sheet)
}

// MalformedTableError reports a sheet that cannot be read as a table.
type MalformedTableError struct {
	Sheet  string
	Reason string
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("malformed table in sheet %q: %s", e.Sheet, e.Reason)
}

// MissingColumnError reports a required column absent from a chart's table.
type MissingColumnError struct {
	Chart  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("chart %s: missing column %q", e.Chart, e.Column)
}

// InvalidCategoryError reports a categorical value with no display mapping.
type InvalidCategoryError struct {
	Column string
	// Value is the offending cell in display form.
	Value string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid category value %q in column %s", e.Value, e.Column)
}

// InconsistentDatasetError reports a dataset whose parallel slices disagree in length.
type InconsistentDatasetError struct {
	Chart      string
	Categories int
	Values     int
}

func (e *InconsistentDatasetError) Error() string {
	return fmt.Sprintf("chart %s: dataset has %d categories but %d values", e.Chart, e.Categories, e.Values)
}
