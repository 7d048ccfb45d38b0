package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

// ErrInvalidBins is returned when bin edges or labels are inconsistent.
var ErrInvalidBins = errors.New("invalid bins")

// Bins partitions a numeric axis into half-open intervals [Edges[i], Edges[i+1]).
type Bins struct {
	Edges  []float64
	Labels []string
}

// NewBins validates edges and labels. Edges must be strictly increasing and
// finite, with at least two of them. Nil labels default to "lo-hi"; labels
// must be distinct.
func NewBins(edges []float64, labels []string) (*Bins, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("%w: need at least two edges, got %d", ErrInvalidBins, len(edges))
	}
	for i, e := range edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return nil, fmt.Errorf("%w: edge %d is not finite", ErrInvalidBins, i)
		}
		if i > 0 && e <= edges[i-1] {
			return nil, fmt.Errorf("%w: edges must be strictly increasing (%g after %g)", ErrInvalidBins, e, edges[i-1])
		}
	}
	if len(labels) == 0 {
		labels = make([]string, len(edges)-1)
		for i := range labels {
			labels[i] = formatEdge(edges[i]) + "-" + formatEdge(edges[i+1])
		}
	}
	if len(labels) != len(edges)-1 {
		return nil, fmt.Errorf("%w: %d edges need %d labels, got %d", ErrInvalidBins, len(edges), len(edges)-1, len(labels))
	}
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidBins, l)
		}
		seen[l] = true
	}
	return &Bins{
		Edges:  append([]float64(nil), edges...),
		Labels: append([]string(nil), labels...),
	}, nil
}

func formatEdge(e float64) string { return strconv.FormatFloat(e, 'g', -1, 64) }

// Locate returns the label of the interval containing v.
func (b *Bins) Locate(v float64) (string, bool) {
	i, ok := b.index(v)
	if !ok {
		return "", false
	}
	return b.Labels[i], true
}

func (b *Bins) index(v float64) (int, bool) {
	n := len(b.Edges)
	if math.IsNaN(v) || v < b.Edges[0] || v >= b.Edges[n-1] {
		return 0, false
	}
	// first edge strictly greater than v closes the interval
	j := sort.SearchFloat64s(b.Edges, v)
	if j < n && b.Edges[j] == v {
		return j, true
	}
	return j - 1, true
}

// Assignment is the bin outcome for one record, by input position.
type Assignment struct {
	Index int
	Label string
	OK    bool
}

// Assign labels every record by its value in col. Records outside every bin
// or without a parseable value get OK == false.
func (b *Bins) Assign(records []dataset.Record, col string) ([]Assignment, error) {
	if err := dataset.CheckColumns(records, col); err != nil {
		return nil, err
	}
	out := make([]Assignment, len(records))
	for i, rec := range records {
		out[i].Index = i
		v, ok := rec.Float(col)
		if !ok {
			continue
		}
		out[i].Label, out[i].OK = b.Locate(v)
	}
	return out, nil
}

// Label returns copies of the labeled records with the interval stored under
// labelCol. Unlabeled records are dropped; the inputs are not modified.
func (b *Bins) Label(records []dataset.Record, col, labelCol string) ([]dataset.Record, error) {
	assigned, err := b.Assign(records, col)
	if err != nil {
		return nil, err
	}
	out := make([]dataset.Record, 0, len(records))
	for _, a := range assigned {
		if !a.OK {
			continue
		}
		src := records[a.Index]
		rec := make(dataset.Record, len(src)+1)
		for k, v := range src {
			rec[k] = v
		}
		rec[labelCol] = a.Label
		out = append(out, rec)
	}
	return out, nil
}
