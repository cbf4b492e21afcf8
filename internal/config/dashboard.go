package config

import (
	"fmt"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/metrics"
	"github.com/spf13/viper"
)

// Default values for the dashboard configuration keys.
const (
	DefaultSource     = "query1_results.csv"
	DefaultSnapshotDB = "~/.local/share/strategy/snapshots.db"
	DefaultLogFile    = "~/.local/state/strategy/strategy.log"
	DefaultTheme      = "default"
)

// Dashboard is the resolved application configuration.
type Dashboard struct {
	Source            string
	SnapshotDB        string
	Theme             string
	ThemeFile         string
	ExportDir         string
	LogLevel          string
	LogFormat         string
	LogFile           string
	HeatmapRows       int
	PriorityTolerance float64
}

// SetDefaults registers the default value of every dashboard key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.source", DefaultSource)
	v.SetDefault("data.snapshot_db", DefaultSnapshotDB)
	v.SetDefault("dashboard.theme", DefaultTheme)
	v.SetDefault("dashboard.theme_file", "")
	v.SetDefault("dashboard.heatmap_rows", metrics.HeatmapLimit)
	v.SetDefault("dashboard.priority_tolerance", metrics.DefaultPriorityTolerance)
	v.SetDefault("export.dir", ".")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", DefaultLogFile)
}

// LoadDashboard reads the dashboard keys from v, expanding paths.
func LoadDashboard(v *viper.Viper) (Dashboard, error) {
	d := Dashboard{
		Source:            v.GetString("data.source"),
		SnapshotDB:        ExpandPath(v.GetString("data.snapshot_db")),
		Theme:             v.GetString("dashboard.theme"),
		ThemeFile:         ExpandPath(v.GetString("dashboard.theme_file")),
		HeatmapRows:       v.GetInt("dashboard.heatmap_rows"),
		PriorityTolerance: v.GetFloat64("dashboard.priority_tolerance"),
		ExportDir:         ExpandPath(v.GetString("export.dir")),
		LogLevel:          v.GetString("logging.level"),
		LogFormat:         v.GetString("logging.format"),
		LogFile:           ExpandPath(v.GetString("logging.file")),
	}

	if err := d.Validate(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

// Validate checks the values that cannot be corrected silently.
func (d Dashboard) Validate() error {
	if d.Source == "" {
		return fmt.Errorf("%w: data.source is empty", common.ErrMissingConfig)
	}
	if d.HeatmapRows <= 0 {
		return fmt.Errorf("%w: dashboard.heatmap_rows must be positive, got %d", common.ErrInvalidConfig, d.HeatmapRows)
	}
	if d.PriorityTolerance < 0 {
		return fmt.Errorf("%w: dashboard.priority_tolerance cannot be negative", common.ErrInvalidConfig)
	}
	if d.Theme == "" && d.ThemeFile == "" {
		return fmt.Errorf("%w: dashboard.theme is empty", common.ErrMissingConfig)
	}
	return nil
}
