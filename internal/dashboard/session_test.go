package dashboard_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/rosterlens/internal/analysis"
	"github.com/KaramelBytes/rosterlens/internal/dashboard"
	"github.com/KaramelBytes/rosterlens/internal/dataset"
	"github.com/KaramelBytes/rosterlens/internal/tree"
	"github.com/KaramelBytes/rosterlens/internal/view"
)

func load(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.FromRows("employees.csv",
		[]string{"Name", "Department", "Age", "Salary"},
		[][]string{
			{"Alice", "Engineering", "34", "120000"},
			{"Bob", "HR", "45", "65000"},
			{"Carol", "Engineering", "28", "95000"},
			{"Dan", "Interns", "22", ""},
		})
	require.NoError(t, err)
	return ds
}

func names(recs []dataset.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r["Name"]
	}
	return out
}

func TestView_FilterThenSortFromCanonical(t *testing.T) {
	ds := load(t)
	s := dashboard.NewSession(ds, nil)

	recs, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dan"}, names(recs))

	require.NoError(t, s.SetFilter(view.FilterSpec{Predicates: []view.Predicate{view.Equals("Department", "Engineering")}}))
	require.NoError(t, s.SetSort(view.SortSpec{Column: "Salary"}))
	recs, err = s.View()
	require.NoError(t, err)
	assert.Equal(t, []string{"Carol", "Alice"}, names(recs))

	// canonical order untouched
	assert.Equal(t, "Alice", ds.Records[0]["Name"])

	s.ClearView()
	recs, err = s.View()
	require.NoError(t, err)
	assert.Len(t, recs, 4)
}

func TestSetFilterAndSort_RejectUnknownColumns(t *testing.T) {
	s := dashboard.NewSession(load(t), nil)
	err := s.SetFilter(view.FilterSpec{Predicates: []view.Predicate{view.Contains("Team", "x")}})
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
	err = s.SetSort(view.SortSpec{Column: "Team"})
	var mc *dataset.MissingColumnError
	require.ErrorAs(t, err, &mc)
	assert.Equal(t, "Team", mc.Column)
	assert.True(t, s.Query().Filter.IsEmpty())
}

func TestSummary_IgnoresTableView(t *testing.T) {
	var logs bytes.Buffer
	s := dashboard.NewSession(load(t), slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, s.SetFilter(view.FilterSpec{Predicates: []view.Predicate{view.Equals("Department", "HR")}}))

	sum, err := s.Summary("Department", "Salary")
	require.NoError(t, err)
	require.Len(t, sum.Groups, 3)
	assert.Equal(t, "Engineering", sum.Groups[0].Key)
	assert.False(t, sum.Groups[2].Defined())
	assert.Contains(t, logs.String(), "group=Interns")
}

func TestCrossTab(t *testing.T) {
	s := dashboard.NewSession(load(t), nil)
	bins, err := analysis.NewBins([]float64{20, 30, 40, 50}, nil)
	require.NoError(t, err)
	ct, err := s.CrossTab(bins, "Age", "Department", "Salary")
	require.NoError(t, err)
	c, ok := ct.Cell("Engineering", "20-30")
	require.True(t, ok)
	assert.Equal(t, 1, c.Summary.Count)
}

func TestTree_KeepsStateUntilReload(t *testing.T) {
	s := dashboard.NewSession(load(t), nil)
	tr, err := s.Tree("Department", "Name")
	require.NoError(t, err)
	require.NoError(t, s.Toggle(0))

	again, err := s.Tree("Department", "Name")
	require.NoError(t, err)
	assert.Same(t, tr, again)
	assert.False(t, again.Roots[0].Collapsed)

	s.Reload(load(t))
	assert.ErrorIs(t, s.Toggle(0), tree.ErrNodeNotFound)
	fresh, err := s.Tree("Department", "Name")
	require.NoError(t, err)
	assert.NotSame(t, tr, fresh)
	assert.True(t, fresh.Roots[0].Collapsed)
}

func TestReload_ResetsStaleViewState(t *testing.T) {
	s := dashboard.NewSession(load(t), nil)
	require.NoError(t, s.SetSort(view.SortSpec{Column: "Age"}))

	other, err := dataset.FromRows("other.csv", []string{"Name"}, [][]string{{"Zed"}})
	require.NoError(t, err)
	s.Reload(other)
	assert.True(t, s.Query().Sort.IsZero())
	recs, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, []string{"Zed"}, names(recs))
}

func TestNoDataset(t *testing.T) {
	s := dashboard.NewSession(nil, nil)
	_, err := s.View()
	assert.ErrorIs(t, err, dashboard.ErrNoDataset)
	_, err = s.Summary("Department", "Salary")
	assert.ErrorIs(t, err, dashboard.ErrNoDataset)
}

func TestHeaderOnlyDataset_StillChecksSchema(t *testing.T) {
	ds, err := dataset.FromRows("empty.csv", []string{"Name", "Dept", "Salary"}, nil)
	require.NoError(t, err)
	s := dashboard.NewSession(ds, nil)

	_, err = s.Summary("Team", "Salary")
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
	_, err = s.Tree("Team", "Name")
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
	_, err = s.Tree("Dept", "Name", "City")
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
	bins, err := analysis.NewBins([]float64{20, 30}, nil)
	require.NoError(t, err)
	_, err = s.CrossTab(bins, "Age", "Dept", "Salary")
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)

	sum, err := s.Summary("Dept", "Salary")
	require.NoError(t, err)
	assert.Empty(t, sum.Groups)
}
