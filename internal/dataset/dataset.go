package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Record is one row of a dataset keyed by header column name.
// Values are kept exactly as they appeared in the source cell.
type Record map[string]string

// Get returns the raw value for col and whether the column is present.
func (r Record) Get(col string) (string, bool) {
	v, ok := r[col]
	return v, ok
}

// Float parses col as a float64. Empty, absent, or invalid values are missing.
func (r Record) Float(col string) (float64, bool) {
	v, ok := r[col]
	if !ok {
		return 0, false
	}
	return ParseFloat(v)
}

// ParseFloat is the numeric coercion shared by every engine. NaN and
// infinities count as missing so they never reach an aggregate.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Dataset is the canonical, immutable record sequence of one load.
type Dataset struct {
	ID      string
	Name    string
	Columns []string
	Records []Record
}

// New assembles a dataset and stamps it with a fresh load ID.
func New(name string, columns []string, records []Record) *Dataset {
	return &Dataset{
		ID:      uuid.NewString(),
		Name:    name,
		Columns: columns,
		Records: records,
	}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Has reports whether col is part of the schema.
func (d *Dataset) Has(col string) bool {
	if d == nil {
		return false
	}
	for _, c := range d.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Require returns a MissingColumnError for the first column not in the schema.
// Empty names are ignored so optional parameters can be passed through.
func (d *Dataset) Require(cols ...string) error {
	for _, c := range cols {
		if c == "" {
			continue
		}
		if !d.Has(c) {
			return &MissingColumnError{Column: c}
		}
	}
	return nil
}

// CheckColumns validates cols against the key set of the first record.
// Every record shares one key set, so the first record stands for the schema.
// An empty sequence has no schema to violate.
func CheckColumns(records []Record, cols ...string) error {
	if len(records) == 0 {
		return nil
	}
	for _, c := range cols {
		if _, ok := records[0][c]; !ok {
			return &MissingColumnError{Column: c}
		}
	}
	return nil
}
