package dataset_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

func writeWorkbook(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Name", "Department", "Salary", "Note"},
		{"Alice", "Engineering", 120000, "lead"},
		{"Bob", "HR", 65000}, // trailing cell left empty
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	_, err := f.NewSheet("Offices")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Offices", "A1", &[]interface{}{"City", "lat"}))
	require.NoError(t, f.SetSheetRow("Offices", "A2", &[]interface{}{"Austin", 30.2672}))
	require.NoError(t, f.SaveAs(path))
}

func TestLoadFile_XLSXFirstSheetPadsShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staff.xlsx")
	writeWorkbook(t, path)

	ds, err := dataset.LoadFile(path, dataset.Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Department", "Salary", "Note"}, ds.Columns)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "", ds.Records[1]["Note"])
	v, ok := ds.Records[0].Float("Salary")
	require.True(t, ok)
	assert.Equal(t, 120000.0, v)
	assert.Contains(t, ds.Name, "Sheet1")
}

func TestLoadFile_XLSXSheetSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staff.xlsx")
	writeWorkbook(t, path)

	byName, err := dataset.LoadFile(path, dataset.Options{Sheet: "offices"})
	require.NoError(t, err)
	assert.Equal(t, []string{"City", "lat"}, byName.Columns)

	byIndex, err := dataset.LoadFile(path, dataset.Options{SheetIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, "Austin", byIndex.Records[0]["City"])

	_, err = dataset.LoadFile(path, dataset.Options{Sheet: "Nope"})
	assert.ErrorContains(t, err, "available sheets")

	_, err = dataset.LoadFile(path, dataset.Options{SheetIndex: 9})
	assert.Error(t, err)
}
