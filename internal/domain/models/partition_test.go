package models

import "testing"

func TestNewPriceRangePartitionRejectsBadInput(t *testing.T) {
	if _, err := NewPriceRangePartition(100, 200, 0); err == nil {
		t.Fatalf("expected error for zero chunks")
	}
	if _, err := NewPriceRangePartition(200, 100, 10); err == nil {
		t.Fatalf("expected error for inverted range")
	}
	if _, err := NewPriceRangePartition(100, 100, 10); err == nil {
		t.Fatalf("expected error for empty range")
	}
}

func TestChunkIndexClamps(t *testing.T) {
	p, err := NewPriceRangePartition(100, 200, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.ChunkIndex(50); got != 0 {
		t.Fatalf("below range: got %d, want 0", got)
	}
	if got := p.ChunkIndex(250); got != 9 {
		t.Fatalf("above range: got %d, want 9", got)
	}
	if got := p.ChunkIndex(100); got != 0 {
		t.Fatalf("at start: got %d, want 0", got)
	}
	if got := p.ChunkIndex(200); got != 9 {
		t.Fatalf("at end: got %d, want 9", got)
	}
	if got := p.ChunkIndex(155); got != 5 {
		t.Fatalf("mid range: got %d, want 5", got)
	}
}

func TestCountIntersectingChunks(t *testing.T) {
	p, _ := NewPriceRangePartition(100, 200, 10)

	if got := p.CountIntersectingChunks(10, 20); got != 0 {
		t.Fatalf("disjoint below: got %d, want 0", got)
	}
	if got := p.CountIntersectingChunks(300, 400); got != 0 {
		t.Fatalf("disjoint above: got %d, want 0", got)
	}
	if got := p.CountIntersectingChunks(100, 200); got != 10 {
		t.Fatalf("full span: got %d, want 10", got)
	}
	if got := p.CountIntersectingChunks(115, 125); got != 2 {
		t.Fatalf("two buckets: got %d, want 2", got)
	}
	// argument order must not matter
	if p.CountIntersectingChunks(125, 115) != p.CountIntersectingChunks(115, 125) {
		t.Fatalf("count is order dependent")
	}
	// span straddling an edge still counts its clamped buckets
	if got := p.CountIntersectingChunks(50, 115); got != 2 {
		t.Fatalf("clamped span: got %d, want 2", got)
	}
}

func TestChunkBounds(t *testing.T) {
	p, _ := NewPriceRangePartition(0, 100, 4)
	bottom, top := p.ChunkBounds(2)
	if bottom != 50 || top != 75 {
		t.Fatalf("bounds of chunk 2: got [%v, %v], want [50, 75]", bottom, top)
	}
}
