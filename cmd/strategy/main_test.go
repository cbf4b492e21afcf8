package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/app-strategy/internal/common"
	"github.com/Veraticus/app-strategy/internal/export"
	"github.com/Veraticus/app-strategy/internal/model"
	"github.com/Veraticus/app-strategy/internal/testutil/categories"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv is a temporary workspace with a category CSV and a config file
// pointing the snapshot database and exports into it.
type testEnv struct {
	dir        string
	source     string
	configPath string
	exportDir  string
}

func newTestEnv(t *testing.T, fixture categories.Fixture) *testEnv {
	t.Helper()
	dir := t.TempDir()

	table := categories.NewBuilder(t).WithFixture(fixture).Build()
	raw := table.Raw()
	f, err := os.Create(filepath.Join(dir, "query1_results.csv"))
	require.NoError(t, err)
	require.NoError(t, export.WriteCSV(f, export.Slice{Headers: raw.Headers, Rows: raw.Rows}))
	require.NoError(t, f.Close())

	env := &testEnv{
		dir:        dir,
		source:     f.Name(),
		configPath: filepath.Join(dir, "config.yaml"),
		exportDir:  filepath.Join(dir, "exports"),
	}
	config := "data:\n" +
		"  source: " + env.source + "\n" +
		"  snapshot_db: " + filepath.Join(dir, "snapshots.db") + "\n" +
		"export:\n" +
		"  dir: " + env.exportDir + "\n" +
		"logging:\n" +
		"  level: error\n" +
		"  file: " + filepath.Join(dir, "strategy.log") + "\n"
	require.NoError(t, os.WriteFile(env.configPath, []byte(config), 0o600))

	return env
}

// run executes the root command with args and returns its output.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	t.Cleanup(viper.Reset)

	for _, env := range []string{"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_REFRESH_TOKEN"} {
		t.Setenv(env, "")
	}

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", e.configPath}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, categories.FixtureMinimal)

	out, err := env.run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "strategy dev\n", out)
}

func TestSummary(t *testing.T) {
	env := newTestEnv(t, categories.FixtureStandard)

	out, err := env.run(t, "", "summary")
	require.NoError(t, err)

	assert.Contains(t, out, "Categories analysed:          7")
	assert.Contains(t, out, "Severity issues")
	assert.Contains(t, out, "Very high demand categories:  3")
	assert.Contains(t, out, "Merchants affected by gaps:   85,000")
	assert.Contains(t, out, model.SegmentBelowStandard)
	assert.NotContains(t, out, model.SegmentMeetingExpectations, "synonym is folded")
}

func TestTop(t *testing.T) {
	env := newTestEnv(t, categories.FixtureStandard)

	tests := []struct {
		name  string
		args  []string
		first string
		rows  int
	}{
		{"default business priority", []string{"top"}, string(categories.CategoryReviews), 7},
		{"limit", []string{"top", "-n", "2"}, string(categories.CategoryReviews), 2},
		{"by header name", []string{"top", "--by", "Merchant Impact (0-100)", "-n", "1"}, string(categories.CategoryShipping), 1},
		{"ascending", []string{"top", "--by", "quality_severity", "--asc", "-n", "3"}, string(categories.CategoryShipping), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.run(t, "", tt.args...)
			require.NoError(t, err)

			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			require.Len(t, lines, tt.rows+2, out)
			assert.True(t, strings.HasPrefix(lines[2], tt.first), lines[2])
		})
	}
}

func TestTop_TextColumnRejected(t *testing.T) {
	env := newTestEnv(t, categories.FixtureMinimal)

	_, err := env.run(t, "", "top", "--by", "demand_level")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrFieldNotFound)
}

func TestSegments(t *testing.T) {
	env := newTestEnv(t, categories.FixtureStandard)

	t.Run("distribution", func(t *testing.T) {
		out, err := env.run(t, "", "segments")
		require.NoError(t, err)
		assert.Contains(t, out, model.SegmentBelowStandard)
		assert.Contains(t, out, "28.6%")
	})

	t.Run("detail", func(t *testing.T) {
		out, err := env.run(t, "", "segments", model.SegmentBelowStandard)
		require.NoError(t, err)
		assert.Contains(t, out, "2 categories")
		assert.Contains(t, out, string(categories.CategoryReviews))
		assert.Contains(t, out, string(categories.CategoryChat))
		assert.NotContains(t, out, string(categories.CategoryShipping))
	})

	t.Run("healthy segment shows performance", func(t *testing.T) {
		out, err := env.run(t, "", "segments", model.SegmentHighDemandGoodQual)
		require.NoError(t, err)
		assert.Contains(t, out, "No quality issues")
		assert.Contains(t, out, string(categories.CategoryShipping))
	})

	t.Run("unknown segment", func(t *testing.T) {
		_, err := env.run(t, "", "segments", "Imaginary Segment")
		assert.ErrorIs(t, err, common.ErrUnknownEntity)
	})
}

func TestQuadrants(t *testing.T) {
	env := newTestEnv(t, categories.FixtureStandard)

	out, err := env.run(t, "", "quadrants", "--x-threshold", "50", "--y-threshold", "50")
	require.NoError(t, err)

	assert.Contains(t, out, "≥ 50.00")
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "High / High"):
			assert.Contains(t, line, string(categories.CategoryReviews))
			assert.Contains(t, line, string(categories.CategoryChat))
		case strings.HasPrefix(line, "Low / High"):
			assert.Contains(t, line, string(categories.CategoryShipping))
		}
	}
}

func TestValidate(t *testing.T) {
	env := newTestEnv(t, categories.FixtureStandard)

	out, err := env.run(t, "", "validate", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 7 categories")
	assert.Contains(t, out, "All business priorities within 0.5")
}

func TestValidate_PriorityMismatch(t *testing.T) {
	env := newTestEnv(t, categories.FixtureMinimal)
	data, err := os.ReadFile(env.source)
	require.NoError(t, err)
	// Reviews: 0.4*80 + 0.6*50 = 62
	require.Contains(t, string(data), ",62,")
	require.NoError(t, os.WriteFile(env.source, []byte(strings.Replace(string(data), ",62,", ",70,", 1)), 0o600))

	out, err := env.run(t, "", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "1 business priorities differ")
	assert.Contains(t, out, "+8.00")

	_, err = env.run(t, "", "validate", "--strict")
	assert.ErrorIs(t, err, errAuditFailed)

	_, err = env.run(t, "", "validate", "--strict", "--tolerance", "10")
	assert.NoError(t, err)
}

func TestExport(t *testing.T) {
	env := newTestEnv(t, categories.FixtureStandard)

	t.Run("complete table", func(t *testing.T) {
		out, err := env.run(t, "", "export")
		require.NoError(t, err)
		assert.Contains(t, out, "Exported 7 rows")
		assert.FileExists(t, filepath.Join(env.exportDir, export.CompleteTableFileName))
	})

	t.Run("segment view with chart", func(t *testing.T) {
		out, err := env.run(t, "", "export", "--view", "segment:"+model.SegmentBelowStandard, "--chart")
		require.NoError(t, err)
		assert.Contains(t, out, "Exported 2 rows")
		assert.FileExists(t, filepath.Join(env.exportDir, "segment_below_standard_performance.csv"))
		assert.FileExists(t, filepath.Join(env.exportDir, "segment_below_standard_performance.png"))
	})

	t.Run("segment distribution pie", func(t *testing.T) {
		dir := filepath.Join(env.dir, "other")
		_, err := env.run(t, "", "export", "--view", "segments", "--chart", "--dir", dir)
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "segment_distribution.csv"))
		assert.FileExists(t, filepath.Join(dir, "segment_distribution.png"))
	})

	t.Run("unknown view", func(t *testing.T) {
		_, err := env.run(t, "", "export", "--view", "everything")
		require.Error(t, err)
		assert.Contains(t, common.UserMessage(err), "Unknown view")
	})
}

func TestPublish_NotConfigured(t *testing.T) {
	env := newTestEnv(t, categories.FixtureMinimal)

	_, err := env.run(t, "", "publish", "--view", "urgent")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestImportAndSnapshots(t *testing.T) {
	env := newTestEnv(t, categories.FixtureStandard)

	out, err := env.run(t, "", "import", "--label", "Q3", env.source)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 snapshots")

	out, err = env.run(t, "", "snapshots", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Q3")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	id := strings.Fields(lines[2])[0]

	out, err = env.run(t, "", "--source", model.SnapshotPrefix+id, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Categories analysed:          7")

	out, err = env.run(t, "n\n", "snapshots", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing deleted")

	out, err = env.run(t, "y\n", "snapshots", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted snapshot "+id)

	out, err = env.run(t, "", "snapshots", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No snapshots found")
}

func TestImport_RejectsInvalidTable(t *testing.T) {
	env := newTestEnv(t, categories.FixtureMinimal)
	bad := filepath.Join(env.dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("Feature Category,Demand Level\nReviews,High\n"), 0o600))

	_, err := env.run(t, "", "import", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid category table")

	out, err := env.run(t, "", "snapshots", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No snapshots found")
}

func TestResolveSlice(t *testing.T) {
	table := categories.NewBuilder(t).WithFixture(categories.FixtureStandard).Build()

	tests := []struct {
		view     string
		fileName string
		rows     int
	}{
		{"complete", export.CompleteTableFileName, 7},
		{"segments", "segment_distribution.csv", 5},
		{"urgent", "urgent.csv", 7},
		{"severity", "severity.csv", 4},
		{"demand", "very_high_demand.csv", 3},
		{"top-problems", "top_problems.csv", 7},
		{"heatmap", "heatmap.csv", 3},
		{"category:" + string(categories.CategoryChat), "category_live_chat.csv", 1},
	}

	for _, tt := range tests {
		t.Run(tt.view, func(t *testing.T) {
			s, err := resolveSlice(table, tt.view, 3)
			require.NoError(t, err)
			assert.Equal(t, tt.fileName, s.FileName)
			assert.Len(t, s.Rows, tt.rows)
		})
	}

	_, err := resolveSlice(table, "category:Nope", 3)
	assert.ErrorIs(t, err, common.ErrUnknownEntity)
}
