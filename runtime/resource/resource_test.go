package resource_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/runtime/resource"
)

func TestTableCloseAllClosesEveryTrackedResource(t *testing.T) {
	table := resource.NewTable()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	res, f, err := resource.OpenFile(path, resource.WriteMode)
	require.NoError(t, err)
	require.NoError(t, f.Write("hello"))
	table.Track(res)

	errs := table.CloseAll()
	assert.Empty(t, errs)
	assert.True(t, res.Closed())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestFileReadAllRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\nline two"), 0o644))

	res, f, err := resource.OpenFile(path, resource.ReadMode)
	require.NoError(t, err)
	defer res.Close()

	text, err := f.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", text)
}

func TestFileWriteModeRejectsReadAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "write_only.txt")
	res, f, err := resource.OpenFile(path, resource.WriteMode)
	require.NoError(t, err)
	defer res.Close()

	_, err = f.ReadAll()
	assert.Error(t, err)
}
