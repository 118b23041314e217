package middleware

import (
	"testing"
	"time"
)

func TestAllowExhaustsCapacity(t *testing.T) {
	rl := NewRateLimiter(time.Second, 3)
	key := "1@127.0.0.1"

	for i := 0; i < 3; i++ {
		if !rl.Allow(key) {
			t.Fatalf("expected request %d to pass", i)
		}
	}
	if rl.Allow(key) {
		t.Fatalf("expected request over capacity to be rejected")
	}
}

func TestAllowRefillsOverWindow(t *testing.T) {
	rl := NewRateLimiter(50*time.Millisecond, 2)
	key := "1@127.0.0.1"

	rl.Allow(key)
	rl.Allow(key)
	if rl.Allow(key) {
		t.Fatalf("expected bucket to be empty")
	}

	time.Sleep(70 * time.Millisecond)
	if !rl.Allow(key) {
		t.Fatalf("expected bucket to refill after window")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(time.Second, 1)
	if !rl.Allow("1@127.0.0.1") {
		t.Fatalf("expected first key to pass")
	}
	if !rl.Allow("2@127.0.0.1") {
		t.Fatalf("expected different key to have its own bucket")
	}
	if rl.Allow("1@127.0.0.1") {
		t.Fatalf("expected first key to be exhausted")
	}
}
