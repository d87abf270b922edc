package models

import (
	"errors"
	"fmt"
	"strings"
)

// ThemeSpec holds the raw color settings a Theme is built from.
type ThemeSpec struct {
	Palette    []string `mapstructure:"palette"`
	Background string   `mapstructure:"background"`
	Axis       string   `mapstructure:"axis"`
	Text       string   `mapstructure:"text"`
	Grid       string   `mapstructure:"grid"`
	Tooltip    string   `mapstructure:"tooltip"`
}

// DefaultThemeSpec returns the dark dashboard colors.
func DefaultThemeSpec() ThemeSpec {
	return ThemeSpec{
		Palette:    []string{"#5470c6", "#FF5400", "#6C757D", "#CAF0F8", "#03045E"},
		Background: "#222831",
		Axis:       "#888",
		Text:       "#fff",
		Grid:       "#444",
		Tooltip:    "#333",
	}
}

// Theme is the immutable styling shared by every chart build.
// Fields are unexported; accessors never expose internal slices.
type Theme struct {
	palette    []string
	background string
	axis       string
	text       string
	grid       string
	tooltip    string
}

// NewTheme validates spec and returns a Theme owning a private copy of it.
func NewTheme(spec ThemeSpec) (*Theme, error) {
	if len(spec.Palette) == 0 {
		return nil, errors.New("theme palette must not be empty")
	}
	palette := make([]string, len(spec.Palette))
	for i, c := range spec.Palette {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, fmt.Errorf("theme palette entry %d is blank", i)
		}
		palette[i] = c
	}
	fields := []struct{ name, value string }{
		{"background", spec.Background},
		{"axis", spec.Axis},
		{"text", spec.Text},
		{"grid", spec.Grid},
		{"tooltip", spec.Tooltip},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return nil, fmt.Errorf("theme %s color is blank", f.name)
		}
	}
	return &Theme{
		palette:    palette,
		background: strings.TrimSpace(spec.Background),
		axis:       strings.TrimSpace(spec.Axis),
		text:       strings.TrimSpace(spec.Text),
		grid:       strings.TrimSpace(spec.Grid),
		tooltip:    strings.TrimSpace(spec.Tooltip),
	}, nil
}

// DefaultTheme returns the dark dashboard theme.
func DefaultTheme() *Theme {
	t, err := NewTheme(DefaultThemeSpec())
	if err != nil {
		panic(err)
	}
	return t
}

// Palette returns a copy of the series color palette.
func (t *Theme) Palette() []string { return append([]string(nil), t.palette...) }

// Background returns the chart background color.
func (t *Theme) Background() string { return t.background }

// Axis returns the axis line color.
func (t *Theme) Axis() string { return t.axis }

// Text returns the label and title color.
func (t *Theme) Text() string { return t.text }

// Grid returns the split line color.
func (t *Theme) Grid() string { return t.grid }

// Tooltip returns the tooltip background color.
func (t *Theme) Tooltip() string { return t.tooltip }
