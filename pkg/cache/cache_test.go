package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(4))
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "snap:BTCUSDT", `{"candles":1}`, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got string
	if err := mc.Get(ctx, "snap:BTCUSDT", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `{"candles":1}` {
		t.Fatalf("got %q", got)
	}

	if err := mc.Get(ctx, "snap:ETHUSDT", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpires(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(4))
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(time.Millisecond)

	var got string
	if err := mc.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expired entry should miss, got %v", err)
	}
}

func TestMemoryCacheEvictsLRU(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", "1", 0)
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "b", "2", 0)
	time.Sleep(time.Millisecond)

	// reading a makes b the least recently used
	var got string
	if err := mc.Get(ctx, "a", &got); err != nil {
		t.Fatalf("get a: %v", err)
	}
	time.Sleep(time.Millisecond)

	_ = mc.Set(ctx, "c", "3", 0)

	if err := mc.Get(ctx, "b", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("b should be evicted, got %v", err)
	}
	if err := mc.Get(ctx, "a", &got); err != nil {
		t.Fatalf("a should survive: %v", err)
	}
}

func TestMemoryCacheDecodesJSONValues(t *testing.T) {
	type snapshot struct {
		Symbol  string `json:"symbol"`
		Candles int    `json:"candles"`
	}

	mc := NewMemoryCache(WithMemoryMaxSize(4))
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", snapshot{Symbol: "BTCUSDT", Candles: 42}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got snapshot
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Symbol != "BTCUSDT" || got.Candles != 42 {
		t.Fatalf("got %+v", got)
	}

	// the layered refill path stores through a *string
	s := "raw"
	if err := mc.Set(ctx, "p", &s, 0); err != nil {
		t.Fatalf("set pointer: %v", err)
	}
	var raw string
	if err := mc.Get(ctx, "p", &raw); err != nil || raw != "raw" {
		t.Fatalf("pointer round trip: %q, %v", raw, err)
	}
}
