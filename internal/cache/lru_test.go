package cache

import (
	"testing"
	"time"
)

func TestGetMissingKey(t *testing.T) {
	c := New[int](4, time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Fatal("Get returned ok for missing key")
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	c := New[string](4, time.Minute)

	c.Set("a", "first")
	c.Set("a", "second")

	got, ok := c.Get("a")
	if !ok || got != "second" {
		t.Fatalf("Get = %q, %v, want second, true", got, ok)
	}
	if c.Size() != 1 {
		t.Fatalf("Size = %d, want 1", c.Size())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("least recently used entry survived eviction")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("recently used entry evicted")
	}
}

func TestExpiry(t *testing.T) {
	c := New[int](4, time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("a", 1)
	c.now = func() time.Time { return base.Add(2 * time.Minute) }

	if _, ok := c.Get("a"); ok {
		t.Fatal("expired entry still returned")
	}
	if c.Size() != 0 {
		t.Fatalf("Size = %d after expiry read, want 0", c.Size())
	}
}

func TestCleanExpired(t *testing.T) {
	c := New[int](4, time.Minute)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("a", 1)
	c.Set("b", 2)
	c.now = func() time.Time { return base.Add(90 * time.Second) }
	c.Set("c", 3)

	if removed := c.CleanExpired(); removed != 2 {
		t.Fatalf("CleanExpired = %d, want 2", removed)
	}
	if _, ok := c.Get("c"); !ok {
		t.Fatal("fresh entry removed by CleanExpired")
	}
}
