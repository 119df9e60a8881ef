package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := c.Get("key")
	if !found {
		t.Fatal("Expected key to be found")
	}
	if string(got) != "value" {
		t.Errorf("Expected value, got %q", got)
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("absent"); found {
		t.Error("Expected miss for absent key")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("a", []byte("1"), 0)
	_ = c.Set("b", []byte("2"), 0)

	if err := c.Delete("a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("a"); found {
		t.Error("Expected a to be deleted")
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, found := c.Get("b"); found {
		t.Error("Expected b to be cleared")
	}
}

func TestDiskCache_SetGet(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set(FetchKey("https://example.com/a"), []byte("cached page"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := c.Get(FetchKey("https://example.com/a"))
	if !found {
		t.Fatal("Expected key to be found")
	}
	if string(got) != "cached page" {
		t.Errorf("Expected cached page, got %q", got)
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Set("key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, found := c.Get("key"); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestDiskCache_DeleteMissing(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)

	if err := c.Delete("never-set"); err != nil {
		t.Errorf("Expected no error deleting missing key, got %v", err)
	}
}

func TestLayeredCache_DiskPromotion(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	if err := c.Set("key", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh layered cache over the same directory only has the disk copy
	c2 := NewLayeredCache(time.Minute, dir, time.Minute)
	got, found := c2.Get("key")
	if !found {
		t.Fatal("Expected disk hit in fresh cache")
	}
	if string(got) != "value" {
		t.Errorf("Expected value, got %q", got)
	}

	// Promoted to memory: still present after clearing the disk layer
	if err := c2.disk.Clear(); err != nil {
		t.Fatalf("Clear disk failed: %v", err)
	}
	if _, found := c2.Get("key"); !found {
		t.Error("Expected promoted memory hit after disk clear")
	}
}

func TestKeys_Distinct(t *testing.T) {
	if FetchKey("https://a.com") == FetchKey("https://b.com") {
		t.Error("Expected distinct fetch keys for distinct URLs")
	}
	if EvidenceKey("factcheck", "claim") == EvidenceKey("search", "claim") {
		t.Error("Expected distinct evidence keys per source")
	}
	if FetchKey("x") == EvidenceKey("factcheck", "x") {
		t.Error("Expected fetch and evidence keys to differ")
	}
}
