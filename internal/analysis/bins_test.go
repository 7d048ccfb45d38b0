package analysis_test

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/rosterlens/internal/analysis"
	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

func ageBins(t *testing.T) *analysis.Bins {
	t.Helper()
	b, err := analysis.NewBins([]float64{20, 30, 40, 50, 60}, nil)
	require.NoError(t, err)
	return b
}

func TestNewBins_DefaultLabels(t *testing.T) {
	b := ageBins(t)
	assert.Equal(t, []string{"20-30", "30-40", "40-50", "50-60"}, b.Labels)

	frac, err := analysis.NewBins([]float64{0, 0.5, 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"0-0.5", "0.5-1"}, frac.Labels)
}

func TestNewBins_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		edges  []float64
		labels []string
	}{
		{"too few edges", []float64{1}, nil},
		{"not increasing", []float64{1, 3, 3}, nil},
		{"decreasing", []float64{5, 1}, nil},
		{"nan edge", []float64{0, math.NaN()}, nil},
		{"label count", []float64{0, 1, 2}, []string{"only one"}},
		{"duplicate label", []float64{0, 10, 20}, []string{"x", "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := analysis.NewBins(tc.edges, tc.labels)
			assert.ErrorIs(t, err, analysis.ErrInvalidBins)
		})
	}
}

func TestLocate_HalfOpenIntervals(t *testing.T) {
	b := ageBins(t)
	cases := map[float64]string{20: "20-30", 29.999: "20-30", 30: "30-40", 45: "40-50", 59.9: "50-60"}
	for v, want := range cases {
		got, ok := b.Locate(v)
		assert.True(t, ok, "value %v", v)
		assert.Equal(t, want, got, "value %v", v)
	}
	for _, v := range []float64{19.99, 60, 75, math.NaN()} {
		_, ok := b.Locate(v)
		assert.False(t, ok, "value %v", v)
	}
}

func TestAssign_EveryInRangeValueGetsExactlyOneLabel(t *testing.T) {
	b := ageBins(t)
	var recs []dataset.Record
	for age := 15.0; age <= 65; age += 0.5 {
		recs = append(recs, dataset.Record{"Age": strconv.FormatFloat(age, 'f', -1, 64)})
	}
	recs = append(recs, dataset.Record{"Age": ""}, dataset.Record{"Age": "unknown"})

	assigned, err := b.Assign(recs, "Age")
	require.NoError(t, err)
	require.Len(t, assigned, len(recs))
	for i, a := range assigned {
		assert.Equal(t, i, a.Index)
		v, parsed := recs[i].Float("Age")
		inRange := parsed && v >= 20 && v < 60
		assert.Equal(t, inRange, a.OK, "age %q", recs[i]["Age"])
		if !inRange {
			continue
		}
		hits := 0
		for j, lbl := range b.Labels {
			if v >= b.Edges[j] && v < b.Edges[j+1] {
				hits++
				assert.Equal(t, lbl, a.Label)
			}
		}
		assert.Equal(t, 1, hits)
	}
}

func TestLabel_CopiesAndDropsUnlabeled(t *testing.T) {
	b := ageBins(t)
	recs := []dataset.Record{
		{"Name": "A", "Age": "25"},
		{"Name": "B", "Age": "61"},
		{"Name": "C", "Age": "44"},
	}
	out, err := b.Label(recs, "Age", "Age Interval")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "20-30", out[0]["Age Interval"])
	assert.Equal(t, "C", out[1]["Name"])
	_, touched := recs[0]["Age Interval"]
	assert.False(t, touched)

	_, err = b.Label(recs, "Years", "x")
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
}

func TestBuildCrossTab(t *testing.T) {
	b := ageBins(t)
	recs := []dataset.Record{
		{"Department": "Eng", "Age": "25", "Salary": "100"},
		{"Department": "HR", "Age": "35", "Salary": "60"},
		{"Department": "Eng", "Age": "28", "Salary": "120"},
		{"Department": "Eng", "Age": "41", "Salary": "150"},
		{"Department": "HR", "Age": "70", "Salary": "90"},
		{"Department": "HR", "Age": "33", "Salary": ""},
	}
	ct, err := analysis.BuildCrossTab(recs, b, "Age", "Department", "Salary")
	require.NoError(t, err)

	assert.Equal(t, []string{"Eng", "HR"}, ct.Groups)
	assert.Equal(t, 1, ct.Unbinned)
	require.Len(t, ct.Cells, 3)
	assert.Equal(t, "Eng", ct.Cells[0].Group)
	assert.Equal(t, "20-30", ct.Cells[0].Interval)
	assert.Equal(t, "40-50", ct.Cells[1].Interval)
	assert.Equal(t, "HR", ct.Cells[2].Group)

	young, ok := ct.Cell("Eng", "20-30")
	require.True(t, ok)
	assert.Equal(t, 2, young.Summary.Count)
	assert.Equal(t, 110.0, young.Summary.Stats.Mean)
	assert.Equal(t, []float64{100, 120}, young.Values)

	hr, ok := ct.Cell("HR", "30-40")
	require.True(t, ok)
	assert.Equal(t, 2, hr.Summary.Rows)
	assert.Equal(t, 1, hr.Summary.Count)

	_, ok = ct.Cell("HR", "50-60")
	assert.False(t, ok)
}
