// Package dashboard holds the state of one interactive session: the canonical
// dataset plus the parameters each view is derived from. Derived views are
// recomputed from the canonical records on every request.
package dashboard

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/KaramelBytes/rosterlens/internal/analysis"
	"github.com/KaramelBytes/rosterlens/internal/dataset"
	"github.com/KaramelBytes/rosterlens/internal/tree"
	"github.com/KaramelBytes/rosterlens/internal/view"
)

// ErrNoDataset is returned by operations that need a loaded dataset.
var ErrNoDataset = errors.New("no dataset loaded")

// Session is single-user and not safe for concurrent use.
type Session struct {
	ds    *dataset.Dataset
	query view.Query
	log   *slog.Logger

	tree    *tree.Tree
	treeKey treeKey
}

type treeKey struct {
	datasetID string
	group     string
	label     string
	details   string
}

// NewSession starts a session over ds. A nil logger discards log output.
func NewSession(ds *dataset.Dataset, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{log: logger}
	s.Reload(ds)
	return s
}

// Dataset returns the canonical dataset.
func (s *Session) Dataset() *dataset.Dataset { return s.ds }

// Reload replaces the canonical dataset wholesale. Filter and sort state is
// kept only while its columns still exist; the tree is always dropped.
func (s *Session) Reload(ds *dataset.Dataset) {
	s.ds = ds
	s.tree = nil
	s.treeKey = treeKey{}
	if ds == nil {
		s.query = view.Query{}
		return
	}
	if err := s.query.Validate(ds); err != nil {
		s.log.Warn("view state reset after reload", "error", err)
		s.query = view.Query{}
	}
	s.log.Info("dataset loaded", "name", ds.Name, "id", ds.ID, "rows", ds.Len(), "columns", len(ds.Columns))
}

// Query returns the current table view parameters.
func (s *Session) Query() view.Query { return s.query }

// SetFilter replaces the filter after checking its columns exist.
func (s *Session) SetFilter(spec view.FilterSpec) error {
	if s.ds == nil {
		return ErrNoDataset
	}
	if err := s.ds.Require(spec.Columns()...); err != nil {
		return fmt.Errorf("set filter: %w", err)
	}
	s.query.Filter = spec
	return nil
}

// SetSort replaces the sort order after checking its column exists.
func (s *Session) SetSort(spec view.SortSpec) error {
	if s.ds == nil {
		return ErrNoDataset
	}
	if err := s.ds.Require(spec.Column); err != nil {
		return fmt.Errorf("set sort: %w", err)
	}
	s.query.Sort = spec
	return nil
}

// ClearView drops filter and sort state.
func (s *Session) ClearView() { s.query = view.Query{} }

// View derives the filtered, sorted table from the canonical records.
func (s *Session) View() ([]dataset.Record, error) {
	if s.ds == nil {
		return nil, ErrNoDataset
	}
	recs, err := s.query.Apply(s.ds)
	if err != nil {
		return nil, fmt.Errorf("derive view: %w", err)
	}
	s.log.Debug("view recomputed", "filter", len(s.query.Filter.Predicates), "sort", s.query.Sort.String(), "rows", len(recs))
	return recs, nil
}

// Summary aggregates the canonical records, ignoring the table view.
func (s *Session) Summary(groupCol, valueCol string) (*analysis.Summary, error) {
	if s.ds == nil {
		return nil, ErrNoDataset
	}
	if err := s.ds.Require(groupCol, valueCol); err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	sum, err := analysis.Summarize(s.ds.Records, groupCol, valueCol)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	for _, w := range sum.Warnings {
		s.log.Warn("group has no numeric values", "group", w.Group, "column", w.Column)
	}
	return sum, nil
}

// CrossTab bins the canonical records and summarizes each (group, interval).
func (s *Session) CrossTab(bins *analysis.Bins, binCol, groupCol, valueCol string) (*analysis.CrossTab, error) {
	if s.ds == nil {
		return nil, ErrNoDataset
	}
	if err := s.ds.Require(binCol, groupCol, valueCol); err != nil {
		return nil, fmt.Errorf("cross tab: %w", err)
	}
	ct, err := analysis.BuildCrossTab(s.ds.Records, bins, binCol, groupCol, valueCol)
	if err != nil {
		return nil, fmt.Errorf("cross tab: %w", err)
	}
	if ct.Unbinned > 0 {
		s.log.Debug("records outside every interval", "column", binCol, "count", ct.Unbinned)
	}
	return ct, nil
}

// Tree returns the hierarchy for the given columns. It is built once per
// dataset and column choice; later calls return the same tree with its
// collapse state intact.
func (s *Session) Tree(groupCol, labelCol string, detailCols ...string) (*tree.Tree, error) {
	if s.ds == nil {
		return nil, ErrNoDataset
	}
	key := treeKey{datasetID: s.ds.ID, group: groupCol, label: labelCol, details: fmt.Sprint(detailCols)}
	if s.tree != nil && s.treeKey == key {
		return s.tree, nil
	}
	if err := s.ds.Require(append([]string{groupCol, labelCol}, detailCols...)...); err != nil {
		return nil, fmt.Errorf("build tree: %w", err)
	}
	t, err := tree.Build(s.ds.Records, groupCol, labelCol, slices.Clone(detailCols)...)
	if err != nil {
		return nil, fmt.Errorf("build tree: %w", err)
	}
	s.tree, s.treeKey = t, key
	s.log.Debug("tree built", "group", groupCol, "label", labelCol, "groups", len(t.Roots))
	return t, nil
}

// Toggle flips one node of the current tree.
func (s *Session) Toggle(path ...int) error {
	if s.tree == nil {
		return fmt.Errorf("toggle: %w", tree.ErrNodeNotFound)
	}
	return s.tree.Toggle(path...)
}
