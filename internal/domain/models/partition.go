package models

import (
	"fmt"
	"math"
)

// PriceRangePartition divides [Start, End] into NChunks equal-width buckets.
type PriceRangePartition struct {
	Start   float64
	End     float64
	NChunks int
}

func NewPriceRangePartition(start, end float64, nChunks int) (PriceRangePartition, error) {
	if nChunks <= 0 {
		return PriceRangePartition{}, fmt.Errorf("partition: n_chunks must be positive, got %d", nChunks)
	}
	if end <= start {
		return PriceRangePartition{}, fmt.Errorf("partition: end %v must exceed start %v", end, start)
	}
	return PriceRangePartition{Start: start, End: end, NChunks: nChunks}, nil
}

// ChunkSize is the width of one bucket.
func (p PriceRangePartition) ChunkSize() float64 {
	return (p.End - p.Start) / float64(p.NChunks)
}

// ChunkIndex maps a price to its bucket, clamping out-of-range prices to the
// nearest edge bucket. A price exactly at End lands in the last bucket.
func (p PriceRangePartition) ChunkIndex(price float64) int {
	idx := int(math.Floor((price - p.Start) / p.ChunkSize()))
	if idx < 0 {
		return 0
	}
	if idx >= p.NChunks {
		return p.NChunks - 1
	}
	return idx
}

// CountIntersectingChunks returns how many buckets the inclusive price span
// [low, high] touches. Argument order does not matter. Returns 0 only when the
// span lies entirely outside [Start, End].
func (p PriceRangePartition) CountIntersectingChunks(low, high float64) int {
	if low > high {
		low, high = high, low
	}
	if high < p.Start || low > p.End {
		return 0
	}
	first := p.ChunkIndex(low)
	last := p.ChunkIndex(high)
	return last - first + 1
}

// ChunkBounds returns the [bottom, top] price interval of bucket idx.
func (p PriceRangePartition) ChunkBounds(idx int) (float64, float64) {
	bottom := p.Start + float64(idx)*p.ChunkSize()
	return bottom, bottom + p.ChunkSize()
}
