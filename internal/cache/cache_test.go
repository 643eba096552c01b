package cache

import (
	"testing"
	"time"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute, 10)
	c.Set("k", "v")

	got, ok := c.Get("k")
	if !ok || got.(string) != "v" {
		t.Fatalf("expected hit with %q, got %v %v", "v", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("unexpected hit for missing key")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := New(10*time.Millisecond, 10)
	c.Set("k", "v")

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("entry should have expired")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be dropped on read, len=%d", c.Len())
	}
}

func TestCacheCapacityEvictsOldest(t *testing.T) {
	c := New(time.Minute, 2)
	c.Set("a", 1)
	time.Sleep(time.Millisecond)
	c.Set("b", 2)
	time.Sleep(time.Millisecond)
	c.Set("c", 3)

	if c.Len() != 2 {
		t.Fatalf("capacity 2 exceeded: len=%d", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("newest entry missing")
	}
}

func TestCacheOverwriteDoesNotEvict(t *testing.T) {
	c := New(time.Minute, 2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3)

	if c.Len() != 2 {
		t.Errorf("overwrite changed size: %d", c.Len())
	}
	got, _ := c.Get("a")
	if got.(int) != 3 {
		t.Errorf("overwrite lost: %v", got)
	}
}
