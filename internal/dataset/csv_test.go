package dataset_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

const employees = "Name,Age,Department,Salary,City,lat,lon\n" +
	"Alice,34,Engineering,120000,Seattle,47.6062,-122.3321\n" +
	"Bob,45,HR,65000,Austin,30.2672,-97.7431\n" +
	"Carol,29,Engineering, 98000,Denver,39.7392,-104.9903\n"

func TestParseCSV_KeepsHeaderOrderAndRawValues(t *testing.T) {
	ds, err := dataset.ParseCSV(strings.NewReader(employees), dataset.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Age", "Department", "Salary", "City", "lat", "lon"}, ds.Columns)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, "Alice", ds.Records[0]["Name"])
	assert.Equal(t, "Bob", ds.Records[1]["Name"])
	// no coercion: the leading space survives
	assert.Equal(t, " 98000", ds.Records[2]["Salary"])
	assert.NotEmpty(t, ds.ID)

	v, ok := ds.Records[2].Float("Salary")
	require.True(t, ok)
	assert.Equal(t, 98000.0, v)
}

func TestParseCSV_MissingHeader(t *testing.T) {
	_, err := dataset.ParseCSV(strings.NewReader(""), dataset.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrParse))
}

func TestParseCSV_RaggedRowFailsWholeParse(t *testing.T) {
	in := "Name,Department\nAlice,Engineering\nBob\nCarol,HR\n"
	ds, err := dataset.ParseCSV(strings.NewReader(in), dataset.Options{})
	require.Error(t, err)
	assert.Nil(t, ds)

	var pe *dataset.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line)
	assert.Contains(t, pe.Error(), "expected 2 fields, got 1")
}

func TestParseCSV_DuplicateColumn(t *testing.T) {
	_, err := dataset.ParseCSV(strings.NewReader("Name,Name\na,b\n"), dataset.Options{})
	assert.ErrorIs(t, err, dataset.ErrParse)
}

func TestParseCSV_StripsByteOrderMark(t *testing.T) {
	ds, err := dataset.ParseCSV(strings.NewReader("\ufeffName,Age\nAlice,30\n"), dataset.Options{})
	require.NoError(t, err)
	assert.True(t, ds.Has("Name"))
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	ds, err := dataset.ParseCSV(strings.NewReader("Name,Age\n"), dataset.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
	assert.Len(t, ds.Columns, 2)
}

func TestLoadFile_TSVAndUnsupported(t *testing.T) {
	dir := t.TempDir()
	tsv := filepath.Join(dir, "people.tsv")
	require.NoError(t, os.WriteFile(tsv, []byte("Name\tAge\nAlice\t30\nBob\t41\n"), 0o644))

	ds, err := dataset.LoadFile(tsv, dataset.Options{})
	require.NoError(t, err)
	assert.Equal(t, "people.tsv", ds.Name)
	assert.Equal(t, "41", ds.Records[1]["Age"])

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o644))
	_, err = dataset.LoadFile(txt, dataset.Options{})
	assert.ErrorIs(t, err, dataset.ErrUnsupported)

	_, err = dataset.LoadFile(filepath.Join(dir, "absent.csv"), dataset.Options{})
	assert.Error(t, err)
}

func TestRequireAndCheckColumns(t *testing.T) {
	ds, err := dataset.ParseCSV(strings.NewReader(employees), dataset.Options{})
	require.NoError(t, err)

	require.NoError(t, ds.Require("Name", "", "Salary"))

	err = ds.Require("Salary", "Bonus")
	var mc *dataset.MissingColumnError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, "Bonus", mc.Column)
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)

	assert.NoError(t, dataset.CheckColumns(nil, "anything"))
	assert.ErrorIs(t, dataset.CheckColumns(ds.Records, "Bonus"), dataset.ErrMissingColumn)
}

func TestRecordFloat(t *testing.T) {
	r := dataset.Record{"a": "1.5", "b": "", "c": "n/a", "d": "NaN", "e": "+Inf"}
	v, ok := r.Float("a")
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)
	for _, col := range []string{"b", "c", "d", "e", "missing"} {
		_, ok := r.Float(col)
		assert.False(t, ok, col)
	}
}

func TestFromRows(t *testing.T) {
	ds, err := dataset.FromRows("mem", []string{"k", "v"}, [][]string{{"a", "1"}, {"b", "2"}})
	require.NoError(t, err)
	assert.Equal(t, "mem", ds.Name)
	assert.Equal(t, "b", ds.Records[1]["k"])

	_, err = dataset.FromRows("mem", []string{"k", "v"}, [][]string{{"a"}})
	assert.ErrorIs(t, err, dataset.ErrParse)
}
