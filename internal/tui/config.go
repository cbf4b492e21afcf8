package tui

import (
	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/Veraticus/app-strategy/internal/sheets"
	"github.com/Veraticus/app-strategy/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme             themes.Theme
	Table             *model.Table
	Publisher         sheets.Publisher
	ExportDir         string
	Width             int
	Height            int
	HeatmapRows       int
	PriorityTolerance float64
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:             themes.Default,
		ExportDir:         ".",
		Width:             120,
		Height:            40,
		HeatmapRows:       metrics.HeatmapLimit,
		PriorityTolerance: metrics.DefaultPriorityTolerance,
	}
}

// WithTable sets the category table shown by the dashboard.
func WithTable(table *model.Table) Option {
	return func(c *Config) {
		c.Table = table
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithExportDir sets the directory CSV and chart exports are written to.
func WithExportDir(dir string) Option {
	return func(c *Config) {
		c.ExportDir = dir
	}
}

// WithPublisher enables publishing the displayed table to Google Sheets.
func WithPublisher(p sheets.Publisher) Option {
	return func(c *Config) {
		c.Publisher = p
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithHeatmapRows sets how many categories the heatmap shows.
func WithHeatmapRows(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.HeatmapRows = n
		}
	}
}

// WithPriorityTolerance sets the tolerance of the business priority audit
// reported at startup.
func WithPriorityTolerance(tolerance float64) Option {
	return func(c *Config) {
		if tolerance >= 0 {
			c.PriorityTolerance = tolerance
		}
	}
}
