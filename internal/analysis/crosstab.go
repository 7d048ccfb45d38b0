package analysis

import (
	"fmt"

	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

// CrossCell summarizes the records of one (group, interval) pair.
type CrossCell struct {
	Group    string
	Interval string
	Summary  GroupSummary
	Values   []float64 // parseable values in input order
}

// CrossTab is the result of grouping by a column and a binned column at once.
type CrossTab struct {
	GroupColumn string
	BinColumn   string
	ValueColumn string
	Groups      []string // first-encounter order
	Intervals   []string // bin order
	Cells       []CrossCell
	Unbinned    int // records excluded because they fell outside every bin
}

// Cell looks up the cell for a group and interval.
func (ct *CrossTab) Cell(group, interval string) (CrossCell, bool) {
	for _, c := range ct.Cells {
		if c.Group == group && c.Interval == interval {
			return c, true
		}
	}
	return CrossCell{}, false
}

// BuildCrossTab bins records on binCol and summarizes valueCol per
// (groupCol, interval). Pairs with no records produce no cell.
func BuildCrossTab(records []dataset.Record, bins *Bins, binCol, groupCol, valueCol string) (*CrossTab, error) {
	if err := dataset.CheckColumns(records, binCol, groupCol, valueCol); err != nil {
		return nil, err
	}
	assigned, err := bins.Assign(records, binCol)
	if err != nil {
		return nil, err
	}

	ct := &CrossTab{
		GroupColumn: groupCol,
		BinColumn:   binCol,
		ValueColumn: valueCol,
		Intervals:   append([]string(nil), bins.Labels...),
	}
	type pair struct{ group, interval string }
	members := make(map[pair][]dataset.Record)
	seenGroup := make(map[string]bool)
	for _, a := range assigned {
		rec := records[a.Index]
		g := rec[groupCol]
		if !seenGroup[g] {
			seenGroup[g] = true
			ct.Groups = append(ct.Groups, g)
		}
		if !a.OK {
			ct.Unbinned++
			continue
		}
		k := pair{g, a.Label}
		members[k] = append(members[k], rec)
	}

	for _, g := range ct.Groups {
		for _, iv := range ct.Intervals {
			recs := members[pair{g, iv}]
			if len(recs) == 0 {
				continue
			}
			s, err := Summarize(recs, groupCol, valueCol)
			if err != nil {
				return nil, fmt.Errorf("summarize %s/%s: %w", g, iv, err)
			}
			cell := CrossCell{Group: g, Interval: iv, Summary: s.Groups[0]}
			for _, r := range recs {
				if v, ok := r.Float(valueCol); ok {
					cell.Values = append(cell.Values, v)
				}
			}
			ct.Cells = append(ct.Cells, cell)
		}
	}
	return ct, nil
}
