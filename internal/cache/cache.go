package cache

import (
	"encoding/json"
	"fmt"
	"io"
)

// DefaultPath is the cache location used when none is configured.
const DefaultPath = "translation_cache.json"

// Pair is one cached run translation.
type Pair struct {
	OriginalText string `json:"original_text"`
	Translation  string `json:"translation"`
}

// Cache maps page fingerprints to the translated runs of that page.
type Cache map[string][]Pair

// Has reports whether the page has an entry, even an empty one.
func (c Cache) Has(fingerprint string) bool {
	_, ok := c[fingerprint]
	return ok
}

// Lookup finds the translation of text within the page entry.
func (c Cache) Lookup(fingerprint, text string) (string, bool) {
	for _, p := range c[fingerprint] {
		if p.OriginalText == text {
			return p.Translation, true
		}
	}
	return "", false
}

// Pending stages cache changes made during one run.
type Pending map[string][]Pair

// Init creates an empty bucket for the page unless one exists.
func (p Pending) Init(fingerprint string) {
	if _, ok := p[fingerprint]; !ok {
		p[fingerprint] = []Pair{}
	}
}

// Upsert records a translation for the page, replacing an earlier pair with
// the same original text.
func (p Pending) Upsert(fingerprint string, pair Pair) {
	list := p[fingerprint]
	for i := range list {
		if list[i].OriginalText == pair.OriginalText {
			list[i] = pair
			return
		}
	}
	p[fingerprint] = append(list, pair)
}

// Store persists a whole cache.
type Store interface {
	// Load returns the stored cache. A store that does not exist yet yields
	// an empty cache and no error.
	Load() (Cache, error)

	// Save replaces the stored cache with c.
	Save(c Cache) error

	// Location describes where the cache lives, for messages.
	Location() string
}

// Load reads the cache from store. Any failure is reported to warn and
// yields an empty cache.
func Load(store Store, warn io.Writer) Cache {
	c, err := store.Load()
	if err != nil {
		fmt.Fprintf(warn, "Warning: Could not load cache file %s. Error: %v. Starting with an empty cache.\n", store.Location(), err)
		return Cache{}
	}
	if c == nil {
		return Cache{}
	}
	return c
}

// Save writes the cache to store, reporting failures to warn.
func Save(store Store, c Cache, warn io.Writer) bool {
	if err := store.Save(c); err != nil {
		fmt.Fprintf(warn, "Warning: Could not save cache file %s. Error: %v\n", store.Location(), err)
		return false
	}
	return true
}

// Commit merges pending into c and persists the result. Non-empty buckets
// replace the page entry. An empty bucket clears an existing entry so the
// page is translated again next run; an empty bucket for an unknown page is
// ignored.
func Commit(c Cache, pending Pending, store Store, warn io.Writer) bool {
	for fingerprint, pairs := range pending {
		if len(pairs) > 0 {
			c[fingerprint] = append([]Pair(nil), pairs...)
			continue
		}
		if c.Has(fingerprint) {
			c[fingerprint] = []Pair{}
		}
	}
	return Save(store, c, warn)
}

// decodePairs reads a page entry, skipping items that are not objects or
// lack original_text. Unknown fields are ignored.
func decodePairs(raw json.RawMessage) ([]Pair, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	pairs := make([]Pair, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			continue
		}
		var p Pair
		origRaw, ok := fields["original_text"]
		if !ok || json.Unmarshal(origRaw, &p.OriginalText) != nil {
			continue
		}
		if tr, ok := fields["translation"]; ok {
			_ = json.Unmarshal(tr, &p.Translation)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// NewStore returns the store for a backend name: "json" or "sqlite".
func NewStore(backend, path string) (Store, error) {
	switch backend {
	case "", "json":
		return NewJSONStore(path), nil
	case "sqlite":
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", backend)
	}
}
