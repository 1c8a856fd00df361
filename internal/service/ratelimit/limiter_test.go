package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowConsumesBurst(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 0.0001) {
			t.Fatalf("token %d should be available", i)
		}
	}
	if l.Allow("k", 3, 0.0001) {
		t.Fatalf("bucket should be empty")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0.0001) {
		t.Fatalf("first token for a")
	}
	if l.Allow("a", 1, 0.0001) {
		t.Fatalf("a should be exhausted")
	}
	if !l.Allow("b", 1, 0.0001) {
		t.Fatalf("b must not share a's bucket")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := New()
	if !l.Allow("k", 1, 0.0001) {
		t.Fatalf("first token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "k", 1, 0.0001); err == nil {
		t.Fatalf("wait on an empty slow bucket should time out")
	}
}

func TestWaitReturnsWhenRefilled(t *testing.T) {
	l := New()
	if !l.Allow("k", 1, 100) {
		t.Fatalf("first token")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Wait(ctx, "k", 1, 100); err != nil {
		t.Fatalf("refill at 100/s should satisfy the wait: %v", err)
	}
}
