package view

import (
	"sort"
	"strings"

	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

// SortSpec orders records by one column. An empty Column keeps input order.
type SortSpec struct {
	Column string
	Desc   bool
}

// IsZero reports whether the spec is the identity sort.
func (s SortSpec) IsZero() bool { return s.Column == "" }

func (s SortSpec) String() string {
	if s.IsZero() {
		return "none"
	}
	if s.Desc {
		return s.Column + " desc"
	}
	return s.Column + " asc"
}

// ParseSortSpec reads "Column", "Column asc" or "Column desc".
func ParseSortSpec(s string) SortSpec {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return SortSpec{}
	}
	spec := SortSpec{Column: fields[0]}
	if len(fields) > 1 {
		switch strings.ToLower(fields[len(fields)-1]) {
		case "desc", "descending":
			spec.Column = strings.Join(fields[:len(fields)-1], " ")
			spec.Desc = true
		case "asc", "ascending":
			spec.Column = strings.Join(fields[:len(fields)-1], " ")
		default:
			spec.Column = strings.Join(fields, " ")
		}
	}
	return spec
}

// Sort returns a stably ordered copy of records. Values that both parse as
// numbers compare numerically; anything else compares as case-sensitive
// strings. Equal keys keep their input order in both directions.
func Sort(records []dataset.Record, spec SortSpec) ([]dataset.Record, error) {
	if spec.IsZero() {
		return records, nil
	}
	if err := dataset.CheckColumns(records, spec.Column); err != nil {
		return nil, err
	}
	out := make([]dataset.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		c := Compare(out[i][spec.Column], out[j][spec.Column])
		if spec.Desc {
			return c > 0
		}
		return c < 0
	})
	return out, nil
}

// Compare orders two cell values: -1, 0 or +1.
func Compare(a, b string) int {
	fa, okA := dataset.ParseFloat(a)
	fb, okB := dataset.ParseFloat(b)
	if okA && okB {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}
