package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rig/internal/adapters/fs"
)

func TestKey(t *testing.T) {
	a := fs.Key("system:git", "1:2.43.0-1ubuntu7.3")
	assert.Len(t, a, 16)
	assert.Equal(t, a, fs.Key("system:git", "1:2.43.0-1ubuntu7.3"))
	assert.NotEqual(t, fs.Key("a", "bc"), fs.Key("ab", "c"))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "record.json")

	require.NoError(t, fs.WriteFileAtomic(path, []byte("one")))
	require.NoError(t, fs.WriteFileAtomic(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "source.properties")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	assert.True(t, fs.Exists(dir, file))
	assert.False(t, fs.Exists(dir, filepath.Join(dir, "missing")))
	assert.True(t, fs.Exists())
}

func TestIsWithin(t *testing.T) {
	tests := []struct {
		parent, child string
		want          bool
	}{
		{"/.gradle-ro-cache", "/.gradle-ro-cache", true},
		{"/.gradle-ro-cache", "/.gradle-ro-cache/caches", true},
		{"/.gradle-ro-cache", "/.gradle-ro-cache-other", false},
		{"/.gradle-ro-cache", "/root/.gradle", false},
		{"/opt/android-sdk", "/opt/android-sdk/../evil", false},
		{"/opt", "/opt/..data", true},
		{"", "/anything", false},
	}
	for _, tt := range tests {
		t.Run(tt.parent+"|"+tt.child, func(t *testing.T) {
			assert.Equal(t, tt.want, fs.IsWithin(tt.parent, tt.child))
		})
	}
}
