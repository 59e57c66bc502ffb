package cache

import (
	"context"
	"testing"
	"time"
)

func testCacheRoundTrip(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, found, err := c.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("Get(missing) = found=%v err=%v, want miss", found, err)
	}

	if err := c.Set(ctx, "k", []byte("svg bytes"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, found, err := c.Get(ctx, "k")
	if err != nil || !found {
		t.Fatalf("Get(k) = found=%v err=%v, want hit", found, err)
	}
	if string(data) != "svg bytes" {
		t.Errorf("Get(k) = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := c.Get(ctx, "k"); found {
		t.Error("key present after Delete")
	}

	// Deleting an absent key is fine.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(absent) = %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	testCacheRoundTrip(t, NewMemoryCache())
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	testCacheRoundTrip(t, c)
}

func TestExpiration(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if err := c.Set(ctx, "k", []byte("x"), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, found, _ := c.Get(ctx, "k"); found {
		t.Error("expired entry still served")
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := c.Get(ctx, "k"); found {
		t.Error("null cache stored a value")
	}
}

func TestRenderKey(t *testing.T) {
	a := RenderKey("digraph G {}", "svg")
	b := RenderKey("digraph G {}", "svg")
	if a != b {
		t.Error("identical inputs produced different keys")
	}

	if RenderKey("digraph G {}", "png") == a {
		t.Error("format not part of the key")
	}
	if RenderKey("digraph H {}", "svg") == a {
		t.Error("DOT content not part of the key")
	}
}
