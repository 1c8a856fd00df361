package models

import "testing"

func TestPriceExtentAcrossRanges(t *testing.T) {
	s := NewOhlcvTimeSeries(NewPairInterval("BTCUSDT", 60_000), 0, 6)
	highs := []float64{105, 110, 300, 120, 108}
	lows := []float64{95, 90, 280, 100, 97}
	for i := range highs {
		s.Append(Candle{Open: 100, High: highs[i], Low: lows[i], Close: 100})
	}

	// skip the spike at index 2
	lo, hi, ok := s.PriceExtent([]IndexRange{{Start: 0, End: 2}, {Start: 3, End: 5}})
	if !ok {
		t.Fatalf("expected candles in ranges")
	}
	if lo != 90 || hi != 120 {
		t.Fatalf("extent: got [%v, %v], want [90, 120]", lo, hi)
	}

	if _, _, ok := s.PriceExtent(nil); ok {
		t.Fatalf("empty ranges must report no extent")
	}
}

func TestTimestampAt(t *testing.T) {
	s := NewOhlcvTimeSeries(NewPairInterval("BTCUSDT", 60_000), 1_000_000, 2)
	if got := s.TimestampAt(3); got != 1_000_000+3*60_000 {
		t.Fatalf("timestamp: got %d", got)
	}
}

func TestTotalCandles(t *testing.T) {
	ranges := []IndexRange{{Start: 0, End: 3}, {Start: 5, End: 5}, {Start: 7, End: 10}}
	if got := TotalCandles(ranges); got != 6 {
		t.Fatalf("total candles: got %d, want 6", got)
	}
}
