package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDint64Unique(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		require.Greater(t, id, int64(0))
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestIsEmptyOrNA(t *testing.T) {
	assert.True(t, IsEmptyOrNA(""))
	assert.True(t, IsEmptyOrNA("   "))
	assert.True(t, IsEmptyOrNA("N/A"))
	assert.False(t, IsEmptyOrNA("2019-05-01"))
}

func TestInSlice(t *testing.T) {
	vals := []string{"male", "female", "unknown"}
	assert.True(t, InSlice("female", vals))
	assert.False(t, InSlice("FEMALE", vals))
	assert.False(t, InSlice("", vals))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, FileExists(filepath.Join(dir, "missing.yml")))
	assert.False(t, FileExists(dir))

	file := filepath.Join(dir, "present.yml")
	require.NoError(t, os.WriteFile(file, []byte("system:\n"), 0644))
	assert.True(t, FileExists(file))
}
