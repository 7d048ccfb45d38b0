package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWriteFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "q3", "stats.md")
	require.NoError(t, SafeWriteFile(path, []byte("# Stats\n")))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Stats\n", string(b))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"rows": 3})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"rows\": 3\n}", string(b))
}

func TestResolveOutput(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "a.png"), ResolveOutput("out", "a.png"))
	assert.Equal(t, filepath.Join("x", "a.png"), ResolveOutput("out", filepath.Join("x", "a.png")))
	assert.Equal(t, "a.png", ResolveOutput("", "a.png"))
	assert.Equal(t, "", ResolveOutput("out", ""))
}
