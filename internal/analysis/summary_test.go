package analysis_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/rosterlens/internal/analysis"
	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

func scenario() []dataset.Record {
	return []dataset.Record{
		{"Dept": "Eng", "Salary": "100"},
		{"Dept": "Eng", "Salary": "200"},
		{"Dept": "HR", "Salary": "50"},
	}
}

func TestSummarize_Scenario(t *testing.T) {
	s, err := analysis.Summarize(scenario(), "Dept", "Salary")
	require.NoError(t, err)
	require.Len(t, s.Groups, 2)

	eng := s.Groups[0]
	assert.Equal(t, "Eng", eng.Key)
	assert.Equal(t, 2, eng.Count)
	require.True(t, eng.Defined())
	assert.Equal(t, 150.0, eng.Stats.Mean)
	assert.Equal(t, 100.0, eng.Stats.Min)
	assert.Equal(t, 200.0, eng.Stats.Max)
	assert.Equal(t, 300.0, eng.Stats.Sum)
	assert.Equal(t, 50.0, eng.Stats.Std, "population std")
	// rank-based: index floor(0.5*2) = 1
	assert.Equal(t, 200.0, eng.Stats.Median)

	hr := s.Groups[1]
	assert.Equal(t, "HR", hr.Key)
	assert.Equal(t, 1, hr.Count)
	assert.Equal(t, 50.0, hr.Stats.Mean)
	assert.Equal(t, 50.0, hr.Stats.Min)
	assert.Equal(t, 50.0, hr.Stats.Max)
	assert.Equal(t, 50.0, hr.Stats.Sum)
	assert.Empty(t, s.Warnings)
}

func TestSummarize_EmptyGroupIsExplicitlyUndefined(t *testing.T) {
	recs := append(scenario(),
		dataset.Record{"Dept": "Ops", "Salary": ""},
		dataset.Record{"Dept": "Ops", "Salary": "tbd"},
	)
	s, err := analysis.Summarize(recs, "Dept", "Salary")
	require.NoError(t, err)
	require.Len(t, s.Groups, 3)

	ops := s.Groups[2]
	assert.Equal(t, "Ops", ops.Key)
	assert.Equal(t, 2, ops.Rows)
	assert.Equal(t, 0, ops.Count)
	assert.False(t, ops.Defined())
	assert.Nil(t, ops.Stats)
	require.Len(t, s.Warnings, 1)
	assert.Equal(t, "Ops", s.Warnings[0].Group)

	vals, err := analysis.SelectStat(s, "mean")
	require.NoError(t, err)
	assert.False(t, vals[2].Defined)
	assert.False(t, math.IsNaN(vals[2].Value))
}

func TestSummarize_CountsAddUpToParseableValues(t *testing.T) {
	recs := []dataset.Record{
		{"g": "a", "v": "1"}, {"g": "b", "v": "x"}, {"g": "a", "v": "3"},
		{"g": "", "v": "4"}, {"g": "c", "v": ""}, {"g": "b", "v": "2.5"},
	}
	s, err := analysis.Summarize(recs, "g", "v")
	require.NoError(t, err)

	total := 0
	for _, g := range s.Groups {
		total += g.Count
	}
	parseable := 0
	for _, r := range recs {
		if _, ok := r.Float("v"); ok {
			parseable++
		}
	}
	assert.Equal(t, parseable, total)

	keys := make([]string, 0, len(s.Groups))
	for _, g := range s.Groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"a", "b", "", "c"}, keys, "first-encounter order, blanks kept")
}

func TestSummarize_PercentilesAreMonotonic(t *testing.T) {
	samples := [][]float64{
		{5},
		{3, 1},
		{9, 2, 7, 4, 4, 8, 1},
		{-3.5, 10, 0, 0, 2.25, 99, -40, 7, 7, 7, 12},
	}
	for _, sample := range samples {
		d, err := analysis.Describe(sample)
		require.NoError(t, err)
		assert.LessOrEqual(t, d.Min, d.Q25)
		assert.LessOrEqual(t, d.Q25, d.Q50)
		assert.LessOrEqual(t, d.Q50, d.Q75)
		assert.LessOrEqual(t, d.Q75, d.Max)
		assert.Equal(t, d.Q50, d.Median)
	}
}

func TestDescribe_LeavesInputUnsorted(t *testing.T) {
	sample := []float64{3, 1, 2}
	_, err := analysis.Describe(sample)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, sample)
}

func TestRankPercentile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}
	assert.Equal(t, 20.0, analysis.RankPercentile(sorted, 0.25))
	assert.Equal(t, 30.0, analysis.RankPercentile(sorted, 0.5))
	assert.Equal(t, 40.0, analysis.RankPercentile(sorted, 0.75))
	assert.Equal(t, 40.0, analysis.RankPercentile(sorted, 1))
	assert.Equal(t, 10.0, analysis.RankPercentile(sorted, 0))
}

func TestSummarize_MissingColumn(t *testing.T) {
	_, err := analysis.Summarize(scenario(), "Team", "Salary")
	var mc *dataset.MissingColumnError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, "Team", mc.Column)

	_, err = analysis.Summarize(scenario(), "Dept", "Bonus")
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
}

func TestSelectStat(t *testing.T) {
	s, err := analysis.Summarize(scenario(), "Dept", "Salary")
	require.NoError(t, err)

	sum, err := analysis.SelectStat(s, "Sum")
	require.NoError(t, err)
	assert.Equal(t, []analysis.StatValue{
		{Key: "Eng", Value: 300, Defined: true},
		{Key: "HR", Value: 50, Defined: true},
	}, sum)

	med, err := analysis.SelectStat(s, "q50")
	require.NoError(t, err)
	assert.Equal(t, 200.0, med[0].Value)

	_, err = analysis.SelectStat(s, "mode")
	assert.ErrorIs(t, err, analysis.ErrUnknownStat)
}
