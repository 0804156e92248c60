package seencache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheAdd(t *testing.T) {
	c := Cache{URLs: []string{"http://a"}}
	c.Add("http://b", "http://a", "", "http://b")

	set := c.Set()
	if len(c.URLs) != 2 || !set["http://a"] || !set["http://b"] {
		t.Fatalf("urls = %v; want exactly a and b", c.URLs)
	}
	if c.Updated.IsZero() {
		t.Fatal("Add did not refresh timestamp")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "seen.json"))
	ctx := context.Background()

	// Missing file reads as empty
	c, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load of missing file failed: %v", err)
	}
	if len(c.URLs) != 0 {
		t.Fatalf("missing file produced %d urls", len(c.URLs))
	}

	c.Add("http://x/1", "http://x/2")
	if err := store.Save(ctx, c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	set := loaded.Set()
	if !set["http://x/1"] || !set["http://x/2"] {
		t.Fatalf("loaded urls = %v", loaded.URLs)
	}
	if loaded.Updated.IsZero() {
		t.Fatal("timestamp lost in round trip")
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	if err := os.WriteFile(path, []byte("{definitely not json"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewFileStore(path)

	if _, err := store.Load(context.Background()); err == nil {
		t.Fatal("expected error for corrupt cache file")
	}

	// The pipeline path treats corruption as an empty cache
	c := LoadOrEmpty(context.Background(), store)
	if len(c.URLs) != 0 {
		t.Fatalf("LoadOrEmpty returned %d urls; want 0", len(c.URLs))
	}
}

func TestOpenPicksFileBackend(t *testing.T) {
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "seen.json"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, ok := store.(*FileStore); !ok {
		t.Fatalf("Open returned %T; want *FileStore", store)
	}
}
