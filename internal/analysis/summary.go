package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

// Descriptive holds the numeric statistics of one non-empty sample.
type Descriptive struct {
	Mean   float64
	Median float64
	Std    float64 // population standard deviation
	Min    float64
	Max    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Sum    float64
}

// GroupSummary is the per-group result of Summarize.
// Stats is nil when the group has no parseable values.
type GroupSummary struct {
	Key   string
	Rows  int // records in the group, parseable or not
	Count int // records with a parseable value
	Stats *Descriptive
}

// Defined reports whether statistics exist for the group.
func (g GroupSummary) Defined() bool { return g.Stats != nil }

// EmptyGroupWarning flags a group whose value column had nothing to aggregate.
// It is informational and never aborts a summary.
type EmptyGroupWarning struct {
	Group  string
	Column string
}

func (w EmptyGroupWarning) Error() string {
	return fmt.Sprintf("group %q has no numeric values in column %q", w.Group, w.Column)
}

// Summary is the ordered result of grouping records by one column.
type Summary struct {
	GroupColumn string
	ValueColumn string
	Groups      []GroupSummary
	Warnings    []EmptyGroupWarning
}

// Summarize groups records by groupCol and describes valueCol per group.
// Groups appear in first-encounter order; blank group values form their own group.
func Summarize(records []dataset.Record, groupCol, valueCol string) (*Summary, error) {
	if err := dataset.CheckColumns(records, groupCol, valueCol); err != nil {
		return nil, err
	}
	sum := &Summary{GroupColumn: groupCol, ValueColumn: valueCol}

	order := make([]string, 0)
	rows := make(map[string]int)
	samples := make(map[string][]float64)
	for _, rec := range records {
		key := rec[groupCol]
		if _, ok := rows[key]; !ok {
			order = append(order, key)
		}
		rows[key]++
		if v, ok := rec.Float(valueCol); ok {
			samples[key] = append(samples[key], v)
		}
	}

	for _, key := range order {
		g := GroupSummary{Key: key, Rows: rows[key], Count: len(samples[key])}
		if g.Count == 0 {
			w := EmptyGroupWarning{Group: key, Column: valueCol}
			sum.Warnings = append(sum.Warnings, w)
		} else {
			d, err := Describe(samples[key])
			if err != nil {
				return nil, fmt.Errorf("describe group %q: %w", key, err)
			}
			g.Stats = d
		}
		sum.Groups = append(sum.Groups, g)
	}
	return sum, nil
}

// Describe computes the statistics of a non-empty sample.
// The input slice is not modified.
func Describe(sample []float64) (*Descriptive, error) {
	data := stats.Float64Data(sample)
	total, err := stats.Sum(data)
	if err != nil {
		return nil, err
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return nil, err
	}
	std, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return nil, err
	}
	lo, err := stats.Min(data)
	if err != nil {
		return nil, err
	}
	hi, err := stats.Max(data)
	if err != nil {
		return nil, err
	}

	sorted := append([]float64(nil), sample...)
	sort.Float64s(sorted)
	q50 := RankPercentile(sorted, 0.50)
	return &Descriptive{
		Mean:   mean,
		Median: q50,
		Std:    std,
		Min:    lo,
		Max:    hi,
		Q25:    RankPercentile(sorted, 0.25),
		Q50:    q50,
		Q75:    RankPercentile(sorted, 0.75),
		Sum:    total,
	}, nil
}

// RankPercentile returns sorted[floor(p*n)], clamped to the last element.
// This is rank-based, not interpolated: for [100, 200] the median is 200.
func RankPercentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	i := int(math.Floor(p * float64(n)))
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return sorted[i]
}
