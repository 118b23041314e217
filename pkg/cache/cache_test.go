package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestSetGetAndExpire(t *testing.T) {
	c := NewReplies(10)
	key := Key("unit", "expire")

	if _, ok := c.Get(key); ok {
		t.Fatalf("expected no value initially")
	}

	c.Set(key, "hello", 50*time.Millisecond)
	if v, ok := c.Get(key); !ok || v != "hello" {
		t.Fatalf("expected value 'hello', got %q ok=%v", v, ok)
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok := c.Get(key); ok {
		t.Fatalf("expected expired value to be gone")
	}
}

func TestDelete(t *testing.T) {
	c := NewReplies(10)
	key := Key("unit", "delete")
	c.Set(key, "reply", time.Second)
	if _, ok := c.Get(key); !ok {
		t.Fatalf("expected value present before delete")
	}
	c.Delete(key)
	if _, ok := c.Get(key); ok {
		t.Fatalf("expected deleted value to be absent")
	}
}

func TestEmptyReplyNeverCached(t *testing.T) {
	c := NewReplies(10)
	key := Key("unit", "empty")
	c.Set(key, "", time.Second)
	if _, ok := c.Get(key); ok {
		t.Fatalf("empty reply must not be cached")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewReplies(2)
	c.Set("a", "1", time.Minute)
	c.Set("b", "2", time.Minute)
	// touch "a" so "b" becomes LRU
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected 'a' present")
	}
	c.Set("c", "3", time.Minute)

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected LRU entry 'b' to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected 'a' to survive eviction")
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
}

func TestKeyStability(t *testing.T) {
	k1 := Key("a", "b", "c")
	k2 := Key("a", "b", "c")
	if k1 != k2 {
		t.Fatalf("expected same inputs to yield same key")
	}
	k3 := Key("a", "b", "d")
	if k1 == k3 {
		t.Fatalf("expected different inputs to yield different key")
	}
	// boundary bytes matter, not just concatenation
	if Key("ab", "c") == Key("a", "bc") {
		t.Fatalf("expected part boundaries to affect the key")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := NewReplies(100)
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 200; j++ {
				k := Key("conc", fmt.Sprint(n), fmt.Sprint(j%10))
				c.Set(k, "v", time.Minute)
				c.Get(k)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
