package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore keeps the cache in a pretty-printed JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store for the file at path
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Location() string {
	return s.path
}

// Load parses the cache file. A missing file is an empty cache; entries that
// are not lists are dropped.
func (s *JSONStore) Load() (Cache, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Cache{}, nil
	}
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid cache JSON: %w", err)
	}

	c := make(Cache, len(raw))
	for fingerprint, entry := range raw {
		pairs, err := decodePairs(entry)
		if err != nil {
			continue
		}
		c[fingerprint] = pairs
	}
	return c, nil
}

// Save writes the whole cache to a temporary file and renames it over the
// cache file, so a failed write leaves the previous cache intact.
func (s *JSONStore) Save(c Cache) error {
	if c == nil {
		c = Cache{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".cache-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
