package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, size int) {
	t.Helper()

	err := os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0o644)
	require.NoError(t, err)
}

func TestScanFiltersAndOrders(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "b.flac", 10)
	writeFile(t, dir, "a.flac", 20)
	writeFile(t, dir, "notes.txt", 5)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	writeFile(t, filepath.Join(dir, "nested"), "c.flac", 5)

	samples, err := Scan(dir, ".flac")
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, "a.flac", samples[0].Name)
	assert.Equal(t, "b.flac", samples[1].Name)
	assert.Equal(t, int64(20), samples[0].SizeBytes)
	assert.Equal(t, filepath.Join(dir, "a.flac"), samples[0].Path)
}

func TestScanExtensionCaseInsensitive(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "LOUD.FLAC", 1)
	writeFile(t, dir, "quiet.flac", 1)

	samples, err := Scan(dir, ".flac")
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, "LOUD.FLAC", samples[0].Name)
}

func TestScanMissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := Scan(missing, ".flac")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScanEmptyDir(t *testing.T) {
	samples, err := Scan(t.TempDir(), ".flac")
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestSizeMB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  int64
	}{
		{0, 0},
		{1024, 0},
		{1024*1024 - 1, 0},
		{1024 * 1024, 1},
		{150*1024*1024 + 12, 150},
	}

	for _, tt := range tests {
		got := Sample{SizeBytes: tt.bytes}.SizeMB()
		assert.Equal(t, tt.want, got, "SizeMB for %d bytes", tt.bytes)
	}
}
