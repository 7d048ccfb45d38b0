package analysis

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

// Column kinds inferred by Profile.
const (
	KindNumeric     = "numeric"
	KindCategorical = "categorical"
	KindText        = "text"
	KindEmpty       = "empty"
)

// ColumnProfile captures inferred type and statistics per column.
type ColumnProfile struct {
	Name    string
	Kind    string
	NonNull int
	Missing int
	Unique  int
	// Numeric stats (sample std)
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Categorical top values
	TopValues []CategoryCount
}

type CategoryCount struct {
	Value string
	Count int
}

// categoricalLimit is the unique-value ceiling under which a text column is
// treated as categorical.
const categoricalLimit = 50

// Profile describes every column of the dataset in schema order.
func Profile(ds *dataset.Dataset) []ColumnProfile {
	out := make([]ColumnProfile, 0, len(ds.Columns))
	for _, col := range ds.Columns {
		out = append(out, profileColumn(ds.Records, col))
	}
	return out
}

func profileColumn(records []dataset.Record, col string) ColumnProfile {
	p := ColumnProfile{Name: col}
	counts := make(map[string]int)
	var nums []float64
	for _, rec := range records {
		v := strings.TrimSpace(rec[col])
		if v == "" {
			p.Missing++
			continue
		}
		p.NonNull++
		counts[v]++
		if f, ok := dataset.ParseFloat(v); ok {
			nums = append(nums, f)
		}
	}
	p.Unique = len(counts)

	switch {
	case p.NonNull == 0:
		p.Kind = KindEmpty
	case len(nums) == p.NonNull:
		p.Kind = KindNumeric
		p.Min = floats.Min(nums)
		p.Max = floats.Max(nums)
		if len(nums) > 1 {
			p.Mean, p.Std = stat.MeanStdDev(nums, nil)
		} else {
			p.Mean = nums[0]
		}
	case p.Unique <= categoricalLimit && p.Unique < p.NonNull:
		p.Kind = KindCategorical
		tops := make([]CategoryCount, 0, len(counts))
		for k, v := range counts {
			tops = append(tops, CategoryCount{Value: k, Count: v})
		}
		sort.Slice(tops, func(i, j int) bool {
			if tops[i].Count == tops[j].Count {
				return tops[i].Value < tops[j].Value
			}
			return tops[i].Count > tops[j].Count
		})
		if len(tops) > 8 {
			tops = tops[:8]
		}
		p.TopValues = tops
	default:
		p.Kind = KindText
	}
	return p
}
