package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mortar/internal/adapters/fs"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	writeTestFile(t, tmpDir, "main.cpp", "int main() { return 0; }\n")
	writeTestFile(t, tmpDir, "alpha.cpp", "void alpha() {}\n")
	writeTestFile(t, tmpDir, "beta.cpp", "void beta() {}\n")
	writeTestFile(t, tmpDir, "beta.o", "object bytes")
	writeTestFile(t, tmpDir, "helper.h", "#pragma once\n")
	writeTestFile(t, tmpDir, "notes.txt", "not a source")
	writeTestFile(t, tmpDir, ".cpp", "extension only, not a source")

	// Sources in subdirectories must not be picked up
	subDir := filepath.Join(tmpDir, "vendor")
	require.NoError(t, os.MkdirAll(subDir, 0o750))
	writeTestFile(t, subDir, "nested.cpp", "void nested() {}\n")

	scanner := fs.NewScanner()
	units, err := scanner.Scan(tmpDir)
	require.NoError(t, err)

	require.Len(t, units, 3)
	assert.Equal(t, filepath.Join(tmpDir, "alpha.cpp"), units[0].Source.String())
	assert.Equal(t, filepath.Join(tmpDir, "beta.cpp"), units[1].Source.String())
	assert.Equal(t, filepath.Join(tmpDir, "main.cpp"), units[2].Source.String())

	for _, unit := range units {
		assert.True(t, unit.SourceStamp.Exists, "source %s should exist", unit.Source.String())
	}

	assert.Equal(t, filepath.Join(tmpDir, "alpha.o"), units[0].Object.String())
	assert.False(t, units[0].ObjectStamp.Exists, "alpha.o was never compiled")
	assert.True(t, units[1].ObjectStamp.Exists, "beta.o is on disk")
	assert.False(t, units[2].ObjectStamp.Exists, "main.o was never compiled")
}

func TestScanner_Scan_EmptyDir(t *testing.T) {
	scanner := fs.NewScanner()

	units, err := scanner.Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestScanner_Scan_MissingDir(t *testing.T) {
	scanner := fs.NewScanner()

	_, err := scanner.Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestScanner_Stat(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTestFile(t, tmpDir, "main.cpp", "int main() {}\n")

	scanner := fs.NewScanner()

	stamp, err := scanner.Stat(path)
	require.NoError(t, err)
	assert.True(t, stamp.Exists)
	assert.WithinDuration(t, time.Now(), stamp.ModTime, time.Minute)
}

func TestScanner_Stat_Missing(t *testing.T) {
	scanner := fs.NewScanner()

	stamp, err := scanner.Stat(filepath.Join(t.TempDir(), "absent.cpp"))
	require.NoError(t, err)
	assert.False(t, stamp.Exists)
	assert.True(t, stamp.ModTime.IsZero())
}
