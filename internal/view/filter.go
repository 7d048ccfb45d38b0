package view

import (
	"strings"

	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

// Op is a predicate comparison.
type Op int

const (
	// OpEquals matches the exact cell value.
	OpEquals Op = iota
	// OpContains matches a case-insensitive substring.
	OpContains
)

func (o Op) String() string {
	switch o {
	case OpEquals:
		return "equals"
	case OpContains:
		return "contains"
	default:
		return "unknown"
	}
}

// Predicate tests one column of a record.
type Predicate struct {
	Column string
	Op     Op
	Value  string
}

// Equals builds an exact-match predicate (department selection).
func Equals(col, value string) Predicate {
	return Predicate{Column: col, Op: OpEquals, Value: value}
}

// Contains builds a case-insensitive substring predicate (name search).
func Contains(col, value string) Predicate {
	return Predicate{Column: col, Op: OpContains, Value: value}
}

// FilterSpec is a conjunction of predicates. The zero value matches everything.
type FilterSpec struct {
	Predicates []Predicate
}

// IsEmpty reports whether the spec has no predicates.
func (s FilterSpec) IsEmpty() bool { return len(s.Predicates) == 0 }

// Columns lists the columns the spec references.
func (s FilterSpec) Columns() []string {
	cols := make([]string, 0, len(s.Predicates))
	for _, p := range s.Predicates {
		cols = append(cols, p.Column)
	}
	return cols
}

// Filter returns the records passing every predicate, in input order.
// An empty spec returns records unchanged. Records lacking a column never pass.
func Filter(records []dataset.Record, spec FilterSpec) []dataset.Record {
	if spec.IsEmpty() {
		return records
	}
	// lowercase the needles once
	preds := make([]Predicate, len(spec.Predicates))
	for i, p := range spec.Predicates {
		if p.Op == OpContains {
			p.Value = strings.ToLower(p.Value)
		}
		preds[i] = p
	}

	out := make([]dataset.Record, 0, len(records))
	for _, rec := range records {
		if matchAll(rec, preds) {
			out = append(out, rec)
		}
	}
	return out
}

func matchAll(rec dataset.Record, preds []Predicate) bool {
	for _, p := range preds {
		v, ok := rec[p.Column]
		if !ok {
			return false
		}
		switch p.Op {
		case OpEquals:
			if v != p.Value {
				return false
			}
		case OpContains:
			if !strings.Contains(strings.ToLower(v), p.Value) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Distinct returns the non-empty values of col in first-encounter order.
func Distinct(records []dataset.Record, col string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range records {
		v := rec[col]
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
