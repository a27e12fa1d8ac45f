package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	limiter := NewLimiter(1, 2)

	if !limiter.Allow("openai") {
		t.Error("first request should be admitted")
	}
	if !limiter.Allow("openai") {
		t.Error("second request should fit the burst")
	}
	if limiter.Allow("openai") {
		t.Error("third immediate request should be rejected")
	}
	// A different key has its own budget.
	if !limiter.Allow("ollama") {
		t.Error("fresh key should be admitted")
	}
}

func TestLimiter_ZeroRateFallsBack(t *testing.T) {
	// An unset configuration yields rate 0; that must not freeze callers
	// once the burst is spent.
	limiter := NewLimiter(0, 0)
	for i := 0; i < 5; i++ {
		if !limiter.Allow("k") {
			t.Fatalf("request %d should fit the default burst", i+1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := limiter.Wait(ctx, "k"); err != nil {
		t.Errorf("post-burst wait should succeed at the fallback rate: %v", err)
	}
}

func TestLimiter_SetKeyRate(t *testing.T) {
	limiter := NewLimiter(1, 1)
	limiter.SetKeyRate("slow", 0.001, 1)

	if !limiter.Allow("slow") {
		t.Error("burst of one should admit the first request")
	}
	if limiter.Allow("slow") {
		t.Error("throttled key should reject the second request")
	}
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	if err := limiter.Wait(context.Background(), "k"); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx, "k"); err == nil {
		t.Error("second wait should fail once the context expires")
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 10)
	start := time.Now()
	if err := limiter.WaitWithDelay(context.Background(), "k", 20*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("delay not applied, elapsed %v", elapsed)
	}
}
