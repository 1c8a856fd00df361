package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
)

func sumScores(scores []float64) float64 {
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total
}

func TestFoldCandlesInsufficientData(t *testing.T) {
	series := models.NewOhlcvTimeSeries(models.NewPairInterval("BTCUSDT", 60_000), 0, 4)
	series.Append(models.Candle{Open: 100, High: 101, Low: 99, Close: 100, BaseVolume: 1})

	params := Params{ZoneCount: 10, TimeDecayFactor: 1.0, MinCandles: 5}
	_, err := FoldCandles(series, []models.IndexRange{{Start: 0, End: 1}}, params, 90, 110)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestFoldCandlesAccumulatesAllScoreTypes(t *testing.T) {
	series := models.NewOhlcvTimeSeries(models.NewPairInterval("BTCUSDT", 60_000), 1000, 4)
	series.Append(models.Candle{
		Open: 100, High: 112, Low: 95, Close: 110,
		BaseVolume: 10, QuoteVolume: 1000,
	})

	params := Params{ZoneCount: 8, TimeDecayFactor: 1.0, MinCandles: 1}
	cva, err := FoldCandles(series, []models.IndexRange{{Start: 0, End: 1}}, params, 90, 130)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// spreading conserves total score per type
	if got := sumScores(cva.Scores(models.ScoreBodyVolume)); math.Abs(got-10) > 1e-9 {
		t.Fatalf("body volume total: got %v, want 10", got)
	}
	if got := sumScores(cva.Scores(models.ScoreQuoteVolume)); math.Abs(got-1000) > 1e-9 {
		t.Fatalf("quote volume total: got %v, want 1000", got)
	}
	if got := sumScores(cva.Scores(models.ScoreLowWick)); math.Abs(got-1) > 1e-9 {
		t.Fatalf("low wick total: got %v, want 1", got)
	}
	if got := sumScores(cva.Scores(models.ScoreHighWick)); math.Abs(got-1) > 1e-9 {
		t.Fatalf("high wick total: got %v, want 1", got)
	}

	if cva.TotalCandles != 1 {
		t.Fatalf("total candles: got %d, want 1", cva.TotalCandles)
	}
	if cva.StartTimestampMs != 1000 || cva.EndTimestampMs != 61_000 {
		t.Fatalf("window timestamps: got [%d, %d]", cva.StartTimestampMs, cva.EndTimestampMs)
	}
}

func TestFoldCandlesSpreadsQuoteVolumeAcrossWicks(t *testing.T) {
	series := models.NewOhlcvTimeSeries(models.NewPairInterval("BTCUSDT", 60_000), 0, 4)
	// body [100,110], wicks stretch the traded range to [95,112]
	series.Append(models.Candle{
		Open: 100, High: 112, Low: 95, Close: 110,
		BaseVolume: 10, QuoteVolume: 1000,
	})

	params := Params{ZoneCount: 8, TimeDecayFactor: 1.0, MinCandles: 1}
	cva, err := FoldCandles(series, []models.IndexRange{{Start: 0, End: 1}}, params, 90, 130)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	partition, _ := models.NewPriceRangePartition(90, 130, 8)
	quote := cva.Scores(models.ScoreQuoteVolume)
	body := cva.Scores(models.ScoreBodyVolume)

	// buckets touched only by the wicks must still carry quote volume
	lowWickBucket := partition.ChunkIndex(96)
	highWickBucket := partition.ChunkIndex(111)
	if quote[lowWickBucket] <= 0 {
		t.Fatalf("low wick bucket %d has no quote volume: %v", lowWickBucket, quote)
	}
	if quote[highWickBucket] <= 0 {
		t.Fatalf("high wick bucket %d has no quote volume: %v", highWickBucket, quote)
	}
	// base volume stays body-bounded
	if body[lowWickBucket] != 0 {
		t.Fatalf("base volume must not leak below the body: %v", body)
	}
}

func TestFoldCandlesClampsToPartition(t *testing.T) {
	series := models.NewOhlcvTimeSeries(models.NewPairInterval("BTCUSDT", 60_000), 0, 4)
	// low wick reaches far below the partition floor
	series.Append(models.Candle{Open: 100, High: 101, Low: 10, Close: 100, BaseVolume: 1})

	params := Params{ZoneCount: 10, TimeDecayFactor: 1.0, MinCandles: 1}
	cva, err := FoldCandles(series, []models.IndexRange{{Start: 0, End: 1}}, params, 90, 110)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sumScores(cva.Scores(models.ScoreLowWick)); math.Abs(got-1) > 1e-9 {
		t.Fatalf("clamped low wick total: got %v, want 1", got)
	}
}

func TestWindowDecayFloorsAtOne(t *testing.T) {
	ranges := []models.IndexRange{{Start: 0, End: 365 * 24}}
	// factors below 1 decay toward zero over a year, so the floor holds
	if got := windowDecay(ranges, 3_600_000, 0.5); got != 1.0 {
		t.Fatalf("decay floor: got %v, want 1.0", got)
	}
	// factors above 1 grow with window length
	if got := windowDecay(ranges, 3_600_000, 2.0); got <= 1.0 {
		t.Fatalf("growth factor should exceed 1, got %v", got)
	}
	if got := windowDecay(nil, 3_600_000, 2.0); got != 1.0 {
		t.Fatalf("no ranges: got %v, want 1.0", got)
	}
}
