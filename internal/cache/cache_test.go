package cache

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	loadErr error
	saveErr error
	saved   Cache
}

func (f *failingStore) Load() (Cache, error) { return nil, f.loadErr }
func (f *failingStore) Save(c Cache) error {
	f.saved = c
	return f.saveErr
}
func (f *failingStore) Location() string { return "broken.json" }

func TestCacheLookup(t *testing.T) {
	c := Cache{"fp": {{OriginalText: "Hei ", Translation: "Hello "}, {OriginalText: "maailma", Translation: "world"}}}

	got, ok := c.Lookup("fp", "maailma")
	assert.True(t, ok)
	assert.Equal(t, "world", got)

	_, ok = c.Lookup("fp", "maailma ")
	assert.False(t, ok, "lookup must be exact")

	_, ok = c.Lookup("other", "Hei ")
	assert.False(t, ok)

	assert.True(t, c.Has("fp"))
	assert.False(t, c.Has("other"))
}

func TestPendingUpsert(t *testing.T) {
	p := Pending{}
	p.Init("fp")
	p.Init("fp")
	assert.Equal(t, []Pair{}, p["fp"])

	p.Upsert("fp", Pair{OriginalText: "a", Translation: "1"})
	p.Upsert("fp", Pair{OriginalText: "b", Translation: "2"})
	p.Upsert("fp", Pair{OriginalText: "a", Translation: "3"})

	assert.Equal(t, []Pair{{"a", "3"}, {"b", "2"}}, p["fp"])
}

func TestCommit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "cache.json"))
	c := Cache{
		"keep":       {{"x", "y"}},
		"invalidate": {{"old", "vanha"}},
		"replace":    {{"old", "vanha"}},
	}
	pending := Pending{
		"invalidate": {},
		"absent":     {},
		"replace":    {{"new", "uusi"}},
		"added":      {{"a", "b"}},
	}

	var warn bytes.Buffer
	require.True(t, Commit(c, pending, store, &warn))
	assert.Empty(t, warn.String())

	assert.Equal(t, []Pair{{"x", "y"}}, c["keep"])
	assert.Equal(t, []Pair{}, c["invalidate"])
	assert.Equal(t, []Pair{{"new", "uusi"}}, c["replace"])
	assert.Equal(t, []Pair{{"a", "b"}}, c["added"])
	assert.False(t, c.Has("absent"))

	reloaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, c, reloaded)
}

func TestCommitCopiesPendingLists(t *testing.T) {
	store := &failingStore{}
	c := Cache{}
	pending := Pending{"fp": {{"a", "b"}}}
	Commit(c, pending, store, &bytes.Buffer{})

	pending["fp"][0].Translation = "changed"
	assert.Equal(t, "b", c["fp"][0].Translation)
}

func TestLoadAndSaveWarnings(t *testing.T) {
	var warn bytes.Buffer
	store := &failingStore{loadErr: errors.New("boom"), saveErr: errors.New("read-only")}

	c := Load(store, &warn)
	assert.NotNil(t, c)
	assert.Empty(t, c)
	assert.Contains(t, warn.String(), "Could not load cache file broken.json")

	warn.Reset()
	assert.False(t, Save(store, Cache{"a": {}}, &warn))
	assert.Contains(t, warn.String(), "Could not save cache file broken.json")
}

func TestNewStore(t *testing.T) {
	s, err := NewStore("json", "c.json")
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, s)

	s, err = NewStore("sqlite", "c.db")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)

	_, err = NewStore("redis", "x")
	assert.Error(t, err)
}

func TestJSONStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "translation_cache.json")
	store := NewJSONStore(path)

	t.Run("missing file is empty", func(t *testing.T) {
		c, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, c)
	})

	t.Run("round trip keeps non-ASCII and markers readable", func(t *testing.T) {
		c := Cache{"fp": {{OriginalText: "Hyvää päivää<", Translation: "Good day <"}}}
		require.NoError(t, store.Save(c))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Hyvää päivää<")
		assert.Contains(t, string(data), "\n    \"fp\": [")

		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, c, got)
	})

	t.Run("corrupt file is an error", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		_, err := store.Load()
		assert.Error(t, err)

		var warn bytes.Buffer
		assert.Empty(t, Load(store, &warn))
		assert.Contains(t, warn.String(), "Starting with an empty cache")
	})

	t.Run("hand edited entries are tolerated", func(t *testing.T) {
		content := `{
			"good": [{"original_text": "a", "translation": "b", "note": "extra"}],
			"missing_translation": [{"original_text": "c"}],
			"junk_items": [42, "text", null, {"translation": "orphan"}],
			"not_a_list": {"original_text": "x"}
		}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, []Pair{{"a", "b"}}, got["good"])
		assert.Equal(t, []Pair{{"c", ""}}, got["missing_translation"])
		assert.Equal(t, []Pair{}, got["junk_items"])
		assert.False(t, got.Has("not_a_list"))
	})

	t.Run("unwritable directory fails", func(t *testing.T) {
		bad := NewJSONStore(filepath.Join(dir, "missing", "cache.json"))
		assert.Error(t, bad.Save(Cache{}))
	})
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	store := NewSQLiteStore(path)

	c, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, c)

	want := Cache{
		"p1": {{"Hei ", "Hello "}, {"maailma", "world"}},
		"p2": {},
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	want = Cache{"p3": {{"a", "b"}}}
	require.NoError(t, store.Save(want))
	got, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got, "save replaces the whole cache")
}
