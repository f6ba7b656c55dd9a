package coverage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gderrors "github.com/gdtdd/gdtdd/errors"
	"github.com/gdtdd/gdtdd/model"
)

func TestParse(t *testing.T) {
	data := `{
  "files": [
    {"path": "res://Scripts/tile/tile_database.gd", "total_lines": 40, "covered_lines": 30},
    {"file": "res://Scripts/player.gd", "total_lines": 60, "covered_lines": 0},
    {"path": "res://Scripts/empty.gd", "total_lines": 0, "covered_lines": 0},
    {"total_lines": 500, "covered_lines": 500},
    {"path": "", "total_lines": 10, "covered_lines": 10}
  ]
}`

	report, err := Parse([]byte(data))
	require.NoError(t, err)

	require.Equal(t, 3, report.TotalFiles)
	require.Equal(t, 1, report.CoveredFiles)
	require.Equal(t, 100, report.TotalLines)
	require.Equal(t, 30, report.CoveredLines)
	require.InDelta(t, 30.0, report.Percent, 1e-9)

	require.Len(t, report.Files, 3)
	require.Equal(t, model.FileCoverage{
		Path:         "res://Scripts/tile/tile_database.gd",
		TotalLines:   40,
		CoveredLines: 30,
		Percent:      75,
	}, report.Files[0])
	require.Equal(t, "res://Scripts/player.gd", report.Files[1].Path)
	require.Equal(t, 0.0, report.Files[1].Percent)
	require.Equal(t, 0.0, report.Files[2].Percent)
}

func TestParseOverallIsNotAMean(t *testing.T) {
	data := `{"files": [
    {"path": "a.gd", "total_lines": 10, "covered_lines": 10},
    {"path": "b.gd", "total_lines": 100, "covered_lines": 0}
  ]}`

	report, err := Parse([]byte(data))
	require.NoError(t, err)

	require.InDelta(t, 9.0909, report.Percent, 1e-3)
	require.Equal(t, 1, report.CoveredFiles)
}

func TestParseMissingFiles(t *testing.T) {
	for _, data := range []string{`{}`, `{"version": 2}`} {
		report, err := Parse([]byte(data))
		require.NoError(t, err)
		require.Equal(t, &model.CoverageReport{Files: []model.FileCoverage{}}, report)
	}
}

func TestParseDefaultsMissingCounts(t *testing.T) {
	report, err := Parse([]byte(`{"files": [{"path": "a.gd"}, {"path": "b.gd", "total_lines": 8.0, "covered_lines": 2}]}`))
	require.NoError(t, err)

	require.Equal(t, 2, report.TotalFiles)
	require.Equal(t, 0, report.Files[0].TotalLines)
	require.Equal(t, 8, report.Files[1].TotalLines)
	require.InDelta(t, 25.0, report.Percent, 1e-9)
}

func TestParsePathKeyWins(t *testing.T) {
	data := `{"files": [
    {"path": "", "file": "res://empty_path.gd", "total_lines": 10, "covered_lines": 10},
    {"path": null, "file": "res://null_path.gd", "total_lines": 10, "covered_lines": 10},
    {"file": "res://only_file.gd", "total_lines": 10, "covered_lines": 5},
    {"file": null, "total_lines": 10, "covered_lines": 10}
  ]}`

	report, err := Parse([]byte(data))
	require.NoError(t, err)

	require.Equal(t, 1, report.TotalFiles)
	require.Equal(t, "res://only_file.gd", report.Files[0].Path)
	require.InDelta(t, 50.0, report.Percent, 1e-9)
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{"files": [`},
		{name: "top level array", data: `[]`},
		{name: "files not array", data: `{"files": {"path": "a.gd"}}`},
		{name: "files null", data: `{"files": null}`},
		{name: "file entry not object", data: `{"files": ["a.gd"]}`},
		{name: "count not integer", data: `{"files": [{"path": "a.gd", "total_lines": "10"}]}`},
		{name: "fractional count", data: `{"files": [{"path": "a.gd", "total_lines": 10.5}]}`},
		{name: "count too large", data: `{"files": [{"path": "a.gd", "total_lines": 1e20, "covered_lines": 0}]}`},
		{name: "negative count", data: `{"files": [{"path": "a.gd", "total_lines": 10, "covered_lines": -1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			require.True(t, gderrors.Is(err, gderrors.KindMalformedInput))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "coverage.json"))
	require.True(t, gderrors.Is(err, gderrors.KindNotFound))

	path := filepath.Join(dir, "coverage.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"files": [{"path": "a.gd", "total_lines": 4, "covered_lines": 4}]}`), 0644))

	report, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 100.0, report.Percent)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		percent   float64
		threshold float64
		want      bool
	}{
		{name: "exactly at threshold", percent: 80, threshold: 80, want: true},
		{name: "above", percent: 80.01, threshold: 80, want: true},
		{name: "below", percent: 79.99, threshold: 80, want: false},
		{name: "zero threshold passes empty report", percent: 0, threshold: 0, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(&model.CoverageReport{Percent: tt.percent}, tt.threshold)
			assert.Equal(t, tt.want, v.Passed)
			assert.Equal(t, tt.threshold, v.Threshold)
		})
	}
}

func TestListLowCoverage(t *testing.T) {
	report := &model.CoverageReport{
		Files: []model.FileCoverage{
			{Path: "c.gd", Percent: 49.99},
			{Path: "a.gd", Percent: 50},
			{Path: "b.gd", Percent: 0},
			{Path: "d.gd", Percent: 90},
		},
	}

	low := ListLowCoverage(report, 50)

	require.Equal(t, []LowCoverage{
		{Path: "c.gd", Percent: 49.99},
		{Path: "b.gd", Percent: 0},
	}, low)
	require.Empty(t, ListLowCoverage(report, 0))
}
