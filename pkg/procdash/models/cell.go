// Package models defines data structures shared by the dashboard pipeline.
package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the type held by a Value or inferred for a column.
type Kind int

const (
	// KindEmpty marks a blank cell or a recognised missing token.
	KindEmpty Kind = iota
	// KindNumber marks a numeric cell.
	KindNumber
	// KindString marks a text cell.
	KindString
	// KindDate marks a cell carrying a date number format.
	KindDate
)

// DateLayout is the display layout used for date categories.
const DateLayout = "2006-01-02"

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	default:
		return "empty"
	}
}

// Value is a single typed cell value.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Time time.Time
}

// Empty returns a blank value.
func Empty() Value { return Value{Kind: KindEmpty} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// String returns a text value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Date returns a date value.
func Date(t time.Time) Value { return Value{Kind: KindDate, Time: t} }

// Finite reports whether v holds a number that is neither NaN nor infinite.
// A String counts when its text parses as a number, so numeric cells in a
// mixed column still read as numbers.
func (v Value) Finite() (float64, bool) {
	n := v.Num
	switch v.Kind {
	case KindNumber:
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// Display renders v the way it is shown as an axis category.
func (v Value) Display() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	case KindDate:
		return v.Time.Format(DateLayout)
	default:
		return ""
	}
}
