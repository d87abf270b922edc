package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/procdash-go/pkg/procdash/models"
	"github.com/xuri/excelize/v2"
)

// missingTokens are cell texts treated as blank, compared lower-cased.
// The # entries are Excel error values.
var missingTokens = map[string]bool{
	"":        true,
	"na":      true,
	"n/a":     true,
	"null":    true,
	"none":    true,
	"-":       true,
	"#n/a":    true,
	"#div/0!": true,
	"#value!": true,
	"#ref!":   true,
	"#null!":  true,
	"#num!":   true,
	"#name?":  true,
}

// rawCell is a cell before column inference.
type rawCell struct {
	text   string
	isDate bool
}

func (c rawCell) empty() bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(c.text))]
}

func (c rawCell) number() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(c.text), 64)
	return f, err == nil
}

// inferKind picks one kind for a column from all of its cells.
// Empty cells do not vote.
func inferKind(cells []rawCell) models.Kind {
	allNumeric, allDates, seen := true, true, false
	for _, c := range cells {
		if c.empty() {
			continue
		}
		seen = true
		if _, ok := c.number(); !ok {
			allNumeric = false
			allDates = false
			continue
		}
		if !c.isDate {
			allDates = false
		}
	}
	switch {
	case !seen:
		return models.KindEmpty
	case allDates:
		return models.KindDate
	case allNumeric:
		return models.KindNumber
	default:
		return models.KindString
	}
}

// parseValue converts a raw cell into a Value of the column's kind.
func parseValue(c rawCell, kind models.Kind, date1904 bool) models.Value {
	if c.empty() {
		return models.Empty()
	}
	switch kind {
	case models.KindNumber:
		f, _ := c.number()
		return models.Number(f)
	case models.KindDate:
		f, _ := c.number()
		t, err := excelize.ExcelDateToTime(f, date1904)
		if err != nil {
			return models.Number(f)
		}
		return models.Date(t.UTC().Truncate(time.Second))
	default:
		return models.String(strings.TrimSpace(c.text))
	}
}

// builtinDateFormats are the built-in number format ids that render as dates.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isDateFormat reports whether a custom number format contains date tokens.
// Quoted literals and bracketed sections are ignored.
func isDateFormat(format string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(format) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	f := b.String()
	for _, tok := range []string{"yy", "dd", "mmm", "d/", "m/", "/d", "/m", "d-", "-d"} {
		if strings.Contains(f, tok) {
			return true
		}
	}
	return false
}

// styleIsDate reports whether the workbook style idx carries a date format.
// Results are memoised per workbook in cache.
func styleIsDate(f *excelize.File, idx int, cache map[int]bool) bool {
	if idx == 0 {
		return false
	}
	if v, ok := cache[idx]; ok {
		return v
	}
	isDate := false
	if style, err := f.GetStyle(idx); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			isDate = isDateFormat(*style.CustomNumFmt)
		} else {
			isDate = builtinDateFormats[style.NumFmt]
		}
	}
	cache[idx] = isDate
	return isDate
}
