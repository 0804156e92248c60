package seencache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// FileStore keeps the cache as a JSON document on disk
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the cache file. A missing file is an empty cache.
func (s *FileStore) Load(ctx context.Context) (Cache, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Cache{}, nil
		}
		return Cache{}, err
	}

	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return Cache{}, fmt.Errorf("parse cache file: %w", err)
	}
	return c, nil
}

// Save writes the cache through a temp file and rename, so a crash mid-write
// never leaves a half-written cache behind.
func (s *FileStore) Save(ctx context.Context, c Cache) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return os.Rename(tmp, s.path)
}
