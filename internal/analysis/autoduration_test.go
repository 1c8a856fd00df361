package analysis

import (
	"testing"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
)

const dayMs = int64(86_400_000)

func newDailySeries(t *testing.T, opens, highs, lows []float64) *models.OhlcvTimeSeries {
	t.Helper()
	series := models.NewOhlcvTimeSeries(models.NewPairInterval("BTCUSDT", dayMs), 0, len(opens))
	for i := range opens {
		series.Append(models.Candle{
			Open:       opens[i],
			High:       highs[i],
			Low:        lows[i],
			Close:      opens[i],
			BaseVolume: 1,
		})
	}
	return series
}

func TestAutoSelectRangesFindsRelevantRuns(t *testing.T) {
	series := newDailySeries(t,
		[]float64{95, 96, 120, 125, 98, 99, 100},
		[]float64{96, 97, 125, 130, 99, 100, 101},
		[]float64{94, 95, 119, 124, 97, 98, 99},
	)

	ranges, priceMin, priceMax := AutoSelectRanges(series, 100, AutoDurationConfig{RelevancyThreshold: 0.15})
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d: %v", len(ranges), ranges)
	}
	if ranges[0] != (models.IndexRange{Start: 0, End: 2}) {
		t.Fatalf("first range: got %v, want [0, 2)", ranges[0])
	}
	if ranges[1] != (models.IndexRange{Start: 4, End: 7}) {
		t.Fatalf("second range: got %v, want [4, 7)", ranges[1])
	}
	if priceMax != 115 {
		t.Fatalf("band max: got %v, want 115", priceMax)
	}
	if priceMin >= priceMax || priceMin <= 0 {
		t.Fatalf("band min out of order: %v", priceMin)
	}
}

func TestAutoSelectRangesMinLookbackExtendsEarliest(t *testing.T) {
	// only the tail overlaps the band; the minimum lookback drags the
	// earliest range backward to cover the deficit
	series := newDailySeries(t,
		[]float64{500, 500, 500, 500, 500, 100, 100},
		[]float64{510, 510, 510, 510, 510, 101, 101},
		[]float64{490, 490, 490, 490, 490, 99, 99},
	)

	ranges, _, _ := AutoSelectRanges(series, 100, AutoDurationConfig{
		RelevancyThreshold: 0.15,
		MinLookbackDays:    5,
	})
	if len(ranges) != 1 {
		t.Fatalf("expected 1 range, got %d: %v", len(ranges), ranges)
	}
	if ranges[0] != (models.IndexRange{Start: 2, End: 7}) {
		t.Fatalf("extended range: got %v, want [2, 7)", ranges[0])
	}
}

func TestAutoSelectRangesSaturatesAtZero(t *testing.T) {
	series := newDailySeries(t,
		[]float64{100, 100},
		[]float64{101, 101},
		[]float64{99, 99},
	)

	ranges, _, _ := AutoSelectRanges(series, 100, AutoDurationConfig{
		RelevancyThreshold: 0.15,
		MinLookbackDays:    30,
	})
	if len(ranges) != 1 || ranges[0].Start != 0 {
		t.Fatalf("expected start clamped to 0, got %v", ranges)
	}
}

func TestAutoSelectRangesEmptySeries(t *testing.T) {
	series := models.NewOhlcvTimeSeries(models.NewPairInterval("BTCUSDT", dayMs), 0, 0)
	ranges, priceMin, priceMax := AutoSelectRanges(series, 100, AutoDurationConfig{RelevancyThreshold: 0.15})
	if ranges != nil || priceMin != 0 || priceMax != 0 {
		t.Fatalf("empty series: got %v, %v, %v", ranges, priceMin, priceMax)
	}
}
