package analysis

import "github.com/leemthai/zone-sniper-sub000/internal/domain/models"

// AutoDurationConfig tunes price-relevancy slice selection.
type AutoDurationConfig struct {
	// RelevancyThreshold is the fractional band around the live price,
	// e.g. 0.15 keeps candles within roughly ±15%.
	RelevancyThreshold float64
	// MinLookbackDays guarantees a floor of recent data even when the
	// market barely moved.
	MinLookbackDays int
}

// relevancyBand computes the price window considered relevant to price. The
// lower bound divides rather than subtracts so the band is symmetric in ratio
// terms.
func relevancyBand(price, threshold float64) (float64, float64) {
	mult := 1.0 + threshold
	return price / mult, price * mult
}

// AutoSelectRanges finds every maximal run of candles whose [low, high]
// overlaps the relevancy band around currentPrice, as half-open index ranges.
// When the runs together hold fewer candles than the minimum lookback allows,
// the earliest range is extended backward (never forward, never split) by the
// deficit, saturating at index 0. An empty series yields no ranges and a
// (0, 0) band.
func AutoSelectRanges(series *models.OhlcvTimeSeries, currentPrice float64, cfg AutoDurationConfig) ([]models.IndexRange, float64, float64) {
	if series.Len() == 0 {
		return nil, 0, 0
	}

	priceMin, priceMax := relevancyBand(currentPrice, cfg.RelevancyThreshold)

	var ranges []models.IndexRange
	runStart := -1
	for i := 0; i < series.Len(); i++ {
		if series.Candle(i).Overlaps(priceMin, priceMax) {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			ranges = append(ranges, models.IndexRange{Start: runStart, End: i})
			runStart = -1
		}
	}
	if runStart >= 0 {
		ranges = append(ranges, models.IndexRange{Start: runStart, End: series.Len()})
	}

	ranges = applyMinLookback(ranges, series.Pair.IntervalMs, cfg.MinLookbackDays)
	return ranges, priceMin, priceMax
}

func applyMinLookback(ranges []models.IndexRange, intervalMs int64, minDays int) []models.IndexRange {
	if len(ranges) == 0 {
		return ranges
	}
	intervalMinutes := intervalMs / (1000 * 60)
	if intervalMinutes <= 0 {
		return ranges
	}
	minCandles := int(int64(minDays) * 24 * 60 / intervalMinutes)
	total := models.TotalCandles(ranges)
	if total >= minCandles {
		return ranges
	}
	deficit := minCandles - total
	newStart := ranges[0].Start - deficit
	if newStart < 0 {
		newStart = 0
	}
	ranges[0].Start = newStart
	return ranges
}
