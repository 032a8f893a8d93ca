package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewConfigStore_Success(t *testing.T) {
	store, dir := newStore(t)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".iacgen"), dir)
}

func TestNewConfigStore_NestedDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "deep")

	_, err := NewConfigStore(nested)
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0o700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not valid TOML {{{[["), 0o600))

	store, err := NewConfigStore(dir)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_ReadsNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := `
[paths]
docs_dir = "knowledge"

[chunking]
chunk_size = 1500
chunk_overlap = 200

[embedding]
provider = "hash"
requests_per_second = 2.5

[llm]
provider = "custom"
insecure_skip_verify = true

[loader]
extensions = [".md", ".txt"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "knowledge", store.GetString("paths.docs_dir"))
	assert.Equal(t, 1500, store.GetInt("chunking.chunk_size"))
	assert.Equal(t, 200, store.GetInt("chunking.chunk_overlap"))
	assert.Equal(t, "hash", store.GetString("embedding.provider"))
	assert.InDelta(t, 2.5, store.GetFloat("embedding.requests_per_second"), 1e-9)
	assert.Equal(t, []string{".md", ".txt"}, store.GetStringSlice("loader.extensions"))

	v, ok := store.GetBool("llm.insecure_skip_verify")
	assert.True(t, ok)
	assert.True(t, v)

	_, ok = store.GetBool("validation.fail_open_unknown_tool")
	assert.False(t, ok)

	assert.Contains(t, store.Keys(), "llm.provider")
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, _ := newStore(t)
	store.mu.Lock()
	store.data["str"] = "value"
	store.data["int64"] = int64(9999)
	store.data["float"] = 3.5
	store.data["bool"] = true
	store.data["list"] = []any{"a", 1, "b"}
	store.data["csv"] = " .md, .txt ,"
	store.mu.Unlock()

	assert.Equal(t, "value", store.GetString("str"))
	assert.Equal(t, "", store.GetString("int64"))
	assert.Equal(t, "", store.GetString("missing"))

	assert.Equal(t, 9999, store.GetInt("int64"))
	assert.Equal(t, 3, store.GetInt("float"))
	assert.Equal(t, 0, store.GetInt("str"))

	assert.InDelta(t, 3.5, store.GetFloat("float"), 1e-9)
	assert.InDelta(t, 9999, store.GetFloat("int64"), 1e-9)
	assert.Zero(t, store.GetFloat("missing"))

	b, ok := store.GetBool("bool")
	assert.True(t, b)
	assert.True(t, ok)
	_, ok = store.GetBool("str")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("list"))
	assert.Equal(t, []string{".md", ".txt"}, store.GetStringSlice("csv"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SetPersistsAsTables(t *testing.T) {
	store, dir := newStore(t)

	require.NoError(t, store.Set("llm.provider", "anthropic"))
	require.NoError(t, store.Set("llm.max_tokens", int64(1024)))
	require.NoError(t, store.Set("retrieval.top_k", int64(4)))
	require.NoError(t, store.Set("validation.fail_open_unknown_tool", false))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[llm]")
	assert.NotContains(t, string(data), `"llm.provider"`)

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", reloaded.GetString("llm.provider"))
	assert.Equal(t, 1024, reloaded.GetInt("llm.max_tokens"))
	assert.Equal(t, 4, reloaded.GetInt("retrieval.top_k"))
	v, ok := reloaded.GetBool("validation.fail_open_unknown_tool")
	assert.True(t, ok)
	assert.False(t, v)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("llm.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigStore_Set_WriteErrorRollsBack(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("test", "value"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0o700))

	assert.Error(t, store.Set("another", "value"))
	_, ok := store.Get("another")
	assert.False(t, ok)
}

func TestConfigStore_Set_UnmarshallableValue(t *testing.T) {
	store, _ := newStore(t)
	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("valid", "data"))
	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml ][}{"), 0o600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Load_CommentOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("# Just a comment\n\n"), 0o600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, _ := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Set("server.addr", "127.0.0.1:8080")
			_ = store.GetString("server.addr")
			_ = store.Keys()
		}()
	}
	wg.Wait()
	assert.Equal(t, "127.0.0.1:8080", store.GetString("server.addr"))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a.b.c": 1,
		"a.d":   "x",
		"e":     true,
		"e.f":   "shadowed",
	})

	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1},
			"d": "x",
		},
		"e": true,
	}, nested)
	assert.Equal(t, map[string]any{"a.b.c": 1, "a.d": "x", "e": true}, flattenMap(nested, ""))
}
