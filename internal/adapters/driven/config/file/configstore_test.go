package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	require.NoError(t, store.Set("output.format", "csv"))
	assert.FileExists(t, filepath.Join(dir, "config.toml"))
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_ReadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[paths]
raw_dir = "filings/raw"

[scrape]
timeout_seconds = 45

[output]
catalog = false

[routes]
rules = ["blackrock=blackrock", "state street=statestreet"]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "filings/raw", store.GetString("paths.raw_dir"))
	assert.Equal(t, 45, store.GetInt("scrape.timeout_seconds"))
	assert.False(t, store.GetBool("output.catalog"))
	_, ok := store.Get("output.catalog")
	assert.True(t, ok)
	assert.Equal(t, []string{"blackrock=blackrock", "state street=statestreet"}, store.GetStringSlice("routes.rules"))
	assert.Equal(t, []string{"output.catalog", "paths.raw_dir", "routes.rules", "scrape.timeout_seconds"}, store.Keys())
}

func TestConfigStore_TypedGetters_WrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("output.format", "xlsx"))

	assert.Zero(t, store.GetInt("output.format"))
	assert.False(t, store.GetBool("output.format"))
	assert.Nil(t, store.GetStringSlice("output.format"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_Persistence_WritesTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("output.overwrite", "skip"))
	require.NoError(t, store.Set("scrape.timeout_seconds", 30))
	require.NoError(t, store.Set("processors.category", true))
	require.NoError(t, store.Set("routes.rules", []string{"vanguard=vanguard"}))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "[output]"), string(raw))
	assert.False(t, strings.Contains(string(raw), `"output.overwrite"`), string(raw))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "skip", reloaded.GetString("output.overwrite"))
	assert.Equal(t, 30, reloaded.GetInt("scrape.timeout_seconds"))
	assert.True(t, reloaded.GetBool("processors.category"))
	assert.Equal(t, []string{"vanguard=vanguard"}, reloaded.GetStringSlice("routes.rules"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("paths.output_dir", "out"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Set_EmptyKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("", "value"))
}

func TestConfigStore_Set_KeyConflict(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("output", "xlsx"))

	assert.Error(t, store.Set("output.format", "csv"))
}

func TestConfigStore_Set_UnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("output.format", "xlsx"))

	// A directory in place of the file makes the write fail.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Save())
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("output.format", "csv")
			_ = store.GetString("output.format")
		}()
	}
	wg.Wait()

	assert.Equal(t, "csv", store.GetString("output.format"))
}

func TestExpandKeys(t *testing.T) {
	tree, err := expandKeys(map[string]any{
		"paths.raw_dir":    "raw",
		"paths.output_dir": "out",
		"version":          1,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"paths":   map[string]any{"raw_dir": "raw", "output_dir": "out"},
		"version": 1,
	}, tree)
	assert.Equal(t, map[string]any{"paths.raw_dir": "raw", "paths.output_dir": "out", "version": 1}, flattenMap(tree, ""))
}
