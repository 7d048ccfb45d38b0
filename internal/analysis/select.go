package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStat is returned for statistic names SelectStat does not know.
var ErrUnknownStat = errors.New("unknown statistic")

// StatNames lists the statistics SelectStat accepts, in display order.
var StatNames = []string{"count", "mean", "std", "min", "q25", "median", "q75", "max", "sum"}

// StatValue is one group's value for a selected statistic.
type StatValue struct {
	Key     string
	Value   float64
	Defined bool
}

// SelectStat projects one statistic out of a summary, keeping group order.
// "q50" is accepted as an alias of "median".
func SelectStat(s *Summary, name string) ([]StatValue, error) {
	pick, err := statPicker(name)
	if err != nil {
		return nil, err
	}
	out := make([]StatValue, 0, len(s.Groups))
	for _, g := range s.Groups {
		v, ok := pick(g)
		out = append(out, StatValue{Key: g.Key, Value: v, Defined: ok})
	}
	return out, nil
}

func statPicker(name string) (func(GroupSummary) (float64, bool), error) {
	field := func(f func(*Descriptive) float64) func(GroupSummary) (float64, bool) {
		return func(g GroupSummary) (float64, bool) {
			if g.Stats == nil {
				return 0, false
			}
			return f(g.Stats), true
		}
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "count":
		return func(g GroupSummary) (float64, bool) { return float64(g.Count), true }, nil
	case "mean":
		return field(func(d *Descriptive) float64 { return d.Mean }), nil
	case "median", "q50":
		return field(func(d *Descriptive) float64 { return d.Median }), nil
	case "sum":
		return field(func(d *Descriptive) float64 { return d.Sum }), nil
	case "std":
		return field(func(d *Descriptive) float64 { return d.Std }), nil
	case "min":
		return field(func(d *Descriptive) float64 { return d.Min }), nil
	case "max":
		return field(func(d *Descriptive) float64 { return d.Max }), nil
	case "q25":
		return field(func(d *Descriptive) float64 { return d.Q25 }), nil
	case "q75":
		return field(func(d *Descriptive) float64 { return d.Q75 }), nil
	default:
		return nil, fmt.Errorf("%w: %q (use one of %s)", ErrUnknownStat, name, strings.Join(StatNames, ", "))
	}
}
