package analysis

import (
	"testing"
	"time"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
)

func cacheTestSeries(t *testing.T) *models.OhlcvTimeSeries {
	t.Helper()
	series := models.NewOhlcvTimeSeries(models.NewPairInterval("BTCUSDT", 60_000), 0, 8)
	for i := 0; i < 8; i++ {
		series.Append(models.Candle{Open: 100, High: 102, Low: 98, Close: 101, BaseVolume: 1, QuoteVolume: 100})
	}
	return series
}

func TestResultCacheHitSharesAllocation(t *testing.T) {
	cache := NewResultCache(16)
	series := cacheTestSeries(t)
	params := Params{ZoneCount: 10, TimeDecayFactor: 1.0, MinCandles: 1}
	ranges := []models.IndexRange{{Start: 0, End: 8}}

	first, err := cache.GetCVAResults(series, ranges, params, 90, 110)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cache.GetCVAResults(series, ranges, params, 90, 110)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected the hit to return the cached pointer")
	}
	if cache.Len() != 1 {
		t.Fatalf("cache size: got %d, want 1", cache.Len())
	}
}

func TestResultCacheMissesOnChangedParameters(t *testing.T) {
	cache := NewResultCache(16)
	series := cacheTestSeries(t)
	params := Params{ZoneCount: 10, TimeDecayFactor: 1.0, MinCandles: 1}
	ranges := []models.IndexRange{{Start: 0, End: 8}}

	first, _ := cache.GetCVAResults(series, ranges, params, 90, 110)

	narrower, _ := cache.GetCVAResults(series, ranges, params, 95, 110)
	if narrower == first {
		t.Fatalf("different price range must not hit")
	}

	params.ZoneCount = 20
	rezoned, _ := cache.GetCVAResults(series, ranges, params, 90, 110)
	if rezoned == first {
		t.Fatalf("different zone count must not hit")
	}

	if cache.Len() != 3 {
		t.Fatalf("cache size: got %d, want 3", cache.Len())
	}
}

func TestResultCacheEvictsLRU(t *testing.T) {
	cache := NewResultCache(2)
	series := cacheTestSeries(t)
	params := Params{ZoneCount: 10, TimeDecayFactor: 1.0, MinCandles: 1}
	ranges := []models.IndexRange{{Start: 0, End: 8}}

	first, _ := cache.GetCVAResults(series, ranges, params, 90, 110)
	time.Sleep(time.Millisecond)
	cache.GetCVAResults(series, ranges, params, 95, 110)
	time.Sleep(time.Millisecond)
	cache.GetCVAResults(series, ranges, params, 85, 110)

	if cache.Len() != 2 {
		t.Fatalf("cache size after eviction: got %d, want 2", cache.Len())
	}
	refetched, _ := cache.GetCVAResults(series, ranges, params, 90, 110)
	if refetched == first {
		t.Fatalf("evicted entry should have been recomputed")
	}
}
