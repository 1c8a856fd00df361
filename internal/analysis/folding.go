package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
)

// ErrInsufficientData marks a computation aborted because the selected ranges
// hold fewer candles than the configured minimum. Hard error, no partial CVA.
var ErrInsufficientData = errors.New("insufficient candle data")

const millisPerYear = 31_536_000_000.0

// Params carries the tunables of one CVA computation. Passed explicitly, no
// package-level state.
type Params struct {
	ZoneCount       int
	TimeDecayFactor float64
	MinCandles      int
}

// windowDecay derives the uniform contribution weight for a whole computation
// window from its first and last range boundary. Decay is deliberately per
// window rather than per candle: downstream calibration is tuned against
// window-uniform weighting.
func windowDecay(ranges []models.IndexRange, intervalMs int64, factor float64) float64 {
	if len(ranges) == 0 {
		return 1.0
	}
	startIdx := ranges[0].Start
	endIdx := ranges[len(ranges)-1].End
	if endIdx <= startIdx {
		return 1.0
	}
	years := float64(endIdx-startIdx) * float64(intervalMs) / millisPerYear
	return math.Max(math.Pow(factor, years), 1.0)
}

// FoldCandles walks every candle in the given [start, end) index ranges and
// accumulates body, wick and quote-volume scores into a fresh CVACore over
// the [priceMin, priceMax] partition.
func FoldCandles(series *models.OhlcvTimeSeries, ranges []models.IndexRange, params Params, priceMin, priceMax float64) (*models.CVACore, error) {
	total := models.TotalCandles(ranges)
	if total < params.MinCandles {
		return nil, fmt.Errorf("%w: %s has %d candles, need %d",
			ErrInsufficientData, series.Pair.Name, total, params.MinCandles)
	}

	partition, err := models.NewPriceRangePartition(priceMin, priceMax, params.ZoneCount)
	if err != nil {
		return nil, fmt.Errorf("fold %s: %w", series.Pair.Name, err)
	}

	cva := models.NewCVACore(series.Pair.Name, partition, params.TimeDecayFactor)
	cva.TotalCandles = total

	weight := windowDecay(ranges, series.Pair.IntervalMs, params.TimeDecayFactor)
	clamp := func(p float64) float64 {
		return math.Min(math.Max(p, priceMin), priceMax)
	}

	for _, r := range ranges {
		for i := r.Start; i < r.End && i < series.Len(); i++ {
			c := series.Candle(i)

			bodyLo, bodyHi := c.BodyRange()
			cva.SpreadScore(models.ScoreBodyVolume, clamp(bodyLo), clamp(bodyHi), c.BaseVolume*weight)

			// quote volume spreads over the full traded range, wicks
			// included, not just the body
			cva.SpreadScore(models.ScoreQuoteVolume, clamp(c.Low), clamp(c.High), c.QuoteVolume*weight)

			lwLo, lwHi := c.LowWickRange()
			cva.SpreadScore(models.ScoreLowWick, clamp(lwLo), clamp(lwHi), weight)

			hwLo, hwHi := c.HighWickRange()
			cva.SpreadScore(models.ScoreHighWick, clamp(hwLo), clamp(hwHi), weight)
		}
	}

	if len(ranges) > 0 {
		cva.StartTimestampMs = series.FirstTimestampMs + int64(ranges[0].Start)*series.Pair.IntervalMs
		cva.EndTimestampMs = series.FirstTimestampMs + int64(ranges[len(ranges)-1].End)*series.Pair.IntervalMs
	}
	return cva, nil
}
