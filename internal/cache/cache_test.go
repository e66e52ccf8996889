package cache

import (
	"testing"
	"time"
)

func TestTTLSetGetDelete(t *testing.T) {
	c := NewTTL[string](time.Minute)

	if _, ok := c.Get("k"); ok {
		t.Fatalf("empty cache returned a value")
	}

	c.Set("k", "v")
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("got %q, %v", v, ok)
	}

	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatalf("deleted key still present")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewTTL[int](10 * time.Millisecond)
	c.Set("k", 42)
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expired entry still readable")
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewTTL[int](10 * time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	c.Set("c", 3)

	if n := c.CleanExpired(); n != 2 {
		t.Fatalf("cleaned %d, want 2", n)
	}
	if c.Size() != 1 {
		t.Fatalf("size %d, want 1", c.Size())
	}
}

func TestManagerStopIsIdempotent(t *testing.T) {
	m := NewManager()
	m.Register(NewTTL[int](time.Minute))
	m.StartCleanup(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	m.Stop()
	m.Stop() // must not panic
}
