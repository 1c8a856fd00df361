package analysis

import (
	"sort"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
)

// Category tuning. Sticky uses a low threshold on squared data (0.16 squared
// ~= 0.4 raw, so a modest valley still breaks up a super-island); wick
// rejection keeps only the top quartile of activity; slippy wants the quiet
// bottom quartile without score cliffs on either side.
const (
	stickyThreshold   = 0.16
	wickTopPercentile = 0.75
	slippyBottomPct   = 0.25
	slippyGradientPct = 0.50
)

// ZoneGradient returns the absolute score step between adjacent buckets.
func ZoneGradient(scores []float64) []float64 {
	if len(scores) < 2 {
		return nil
	}
	out := make([]float64, len(scores)-1)
	for i := 1; i < len(scores); i++ {
		d := scores[i] - scores[i-1]
		if d < 0 {
			d = -d
		}
		out[i-1] = d
	}
	return out
}

func percentileValue(sorted []float64, q float64) float64 {
	idx := int(float64(len(sorted)) * q)
	if idx > len(sorted)-1 {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// HighActivityZones returns the indices whose score sits at or above the
// given percentile. No gradient check: rejections are often sharp,
// single-candle events.
func HighActivityZones(scores []float64, topPercentile float64) []int {
	if len(scores) == 0 {
		return nil
	}
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)
	threshold := percentileValue(sorted, topPercentile)

	var out []int
	for i, s := range scores {
		if s >= threshold {
			out = append(out, i)
		}
	}
	return out
}

// LowActivityZones returns quiet buckets: score at or below the bottom
// percentile with no steep score step on either side, so spikes next to busy
// zones do not qualify.
func LowActivityZones(scores []float64, bottomPercentile, gradientPercentile float64) []int {
	if len(scores) == 0 {
		return nil
	}
	gradients := ZoneGradient(scores)

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)
	threshold := percentileValue(sorted, bottomPercentile)

	maxGradient := 0.0
	if len(gradients) > 0 {
		sg := make([]float64, len(gradients))
		copy(sg, gradients)
		sort.Float64s(sg)
		maxGradient = percentileValue(sg, gradientPercentile)
	}

	var out []int
	for i, s := range scores {
		if s > threshold {
			continue
		}
		if i > 0 && i-1 < len(gradients) && gradients[i-1] > maxGradient {
			continue
		}
		if i < len(gradients) && gradients[i] > maxGradient {
			continue
		}
		out = append(out, i)
	}
	return out
}

// ClassifyZones derives every zone category from one CVACore. Sticky zones go
// through smoothing, re-normalization and squaring before clustering so that
// ragged volume profiles merge into coherent islands; wick categories are
// plain percentile cuts; slippy is the low-activity complement.
func ClassifyZones(cva *models.CVACore) models.ClassifiedZones {
	partition := cva.PriceRange
	n := cva.ZoneCount

	rawSticky := NormalizeMax(cva.Scores(models.ScoreBodyVolume))
	smoothed := SmoothData(rawSticky, adaptiveWindow(n))
	sharpened := Sharpen(NormalizeMax(smoothed))

	var stickyIdx []int
	for _, t := range FindTargetZones(sharpened, stickyThreshold, adaptiveGap(n)) {
		for i := t.StartIdx; i <= t.EndIdx; i++ {
			stickyIdx = append(stickyIdx, i)
		}
	}

	highWickIdx := HighActivityZones(NormalizeMax(cva.Scores(models.ScoreHighWick)), wickTopPercentile)
	lowWickIdx := HighActivityZones(NormalizeMax(cva.Scores(models.ScoreLowWick)), wickTopPercentile)
	slippyIdx := LowActivityZones(rawSticky, slippyBottomPct, slippyGradientPct)

	zones := models.ClassifiedZones{
		Sticky:    zonesFromIndices(stickyIdx, partition),
		Slippy:    zonesFromIndices(slippyIdx, partition),
		LowWicks:  zonesFromIndices(lowWickIdx, partition),
		HighWicks: zonesFromIndices(highWickIdx, partition),
	}
	zones.StickySuper = models.AggregateZones(zones.Sticky)
	zones.SlippySuper = models.AggregateZones(zones.Slippy)
	zones.LowWicksSuper = models.AggregateZones(zones.LowWicks)
	zones.HighWicksSuper = models.AggregateZones(zones.HighWicks)
	return zones
}

func zonesFromIndices(indices []int, p models.PriceRangePartition) []models.Zone {
	out := make([]models.Zone, 0, len(indices))
	for _, idx := range indices {
		out = append(out, models.ZoneFromIndex(idx, p))
	}
	return out
}
