package view

import (
	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

// Query is the table view state: filter first, then sort.
type Query struct {
	Filter FilterSpec
	Sort   SortSpec
}

// Validate checks every referenced column against the dataset schema.
func (q Query) Validate(ds *dataset.Dataset) error {
	if err := ds.Require(q.Filter.Columns()...); err != nil {
		return err
	}
	return ds.Require(q.Sort.Column)
}

// Apply derives the current view from the canonical records. The dataset is
// never modified.
func (q Query) Apply(ds *dataset.Dataset) ([]dataset.Record, error) {
	if err := q.Validate(ds); err != nil {
		return nil, err
	}
	return Sort(Filter(ds.Records, q.Filter), q.Sort)
}
