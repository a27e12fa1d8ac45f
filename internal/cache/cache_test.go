package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndDistinct(t *testing.T) {
	a := Key("reason", "grounded", "digest1")
	b := Key("reason", "grounded", "digest1")
	if a != b {
		t.Error("identical parts should produce identical keys")
	}
	if !strings.HasPrefix(a, "toulmin:v1:") {
		t.Errorf("key missing namespace prefix: %q", a)
	}
	if a == Key("reason", "grounded", "digest2") {
		t.Error("different parts should produce different keys")
	}
	// The separator must keep ("ab","c") and ("a","bc") apart.
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("joining must not be ambiguous across part boundaries")
	}
}

func TestMemoryStore_SetGetDeleteClear(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Minute)

	if _, found := store.Get("missing"); found {
		t.Error("empty store should miss")
	}
	if err := store.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, found := store.Get("k"); !found || string(val) != "v" {
		t.Errorf("Get: %q, %v", val, found)
	}
	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := store.Get("k"); found {
		t.Error("deleted key should miss")
	}

	store.Set("a", []byte("1"), time.Minute)
	store.Set("b", []byte("2"), time.Minute)
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, found := store.Get("a"); found {
		t.Error("cleared store should miss")
	}
}

func TestDiskStore_PersistsAndExpires(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(dir, time.Minute)

	if err := store.Set(Key("x"), []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, found := store.Get(Key("x")); !found || string(val) != "payload" {
		t.Errorf("Get after Set: %q, %v", val, found)
	}

	// A fresh store over the same directory sees the entry.
	reopened := NewDiskStore(dir, time.Minute)
	if _, found := reopened.Get(Key("x")); !found {
		t.Error("entry should survive a store restart")
	}

	if err := store.Set(Key("y"), []byte("stale"), -time.Second); err != nil {
		t.Fatalf("Set expired: %v", err)
	}
	if _, found := store.Get(Key("y")); found {
		t.Error("expired entry should miss")
	}
}

func TestLayeredStore_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	store := NewLayeredStore(time.Minute, dir, time.Minute)

	if err := store.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A second layered store shares only the disk layer; the first Get
	// promotes the entry into its memory layer.
	fresh := NewLayeredStore(time.Minute, dir, time.Minute)
	if val, found := fresh.Get("k"); !found || string(val) != "v" {
		t.Fatalf("disk-backed Get: %q, %v", val, found)
	}
	if _, found := fresh.memory.Get("k"); !found {
		t.Error("disk hit should be promoted to memory")
	}
}
