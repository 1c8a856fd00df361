package analysis

import (
	"fmt"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
)

// Analyzer runs the full per-pair pipeline: price-relevant slice selection,
// CVA folding (memoized) and zone classification. It holds no per-pair state
// and is safe for concurrent use.
type Analyzer struct {
	params Params
	adCfg  AutoDurationConfig
	cache  *ResultCache
}

func NewAnalyzer(params Params, adCfg AutoDurationConfig, cache *ResultCache) *Analyzer {
	return &Analyzer{params: params, adCfg: adCfg, cache: cache}
}

// AnalyzePair builds a fresh TradingModel for one pair at one price. Slice
// ranges are recomputed from scratch every call; only the CVA itself is
// memoized.
func (a *Analyzer) AnalyzePair(series *models.OhlcvTimeSeries, currentPrice float64) (*models.TradingModel, error) {
	ranges, priceMin, priceMax := AutoSelectRanges(series, currentPrice, a.adCfg)

	cva, err := a.cache.GetCVAResults(series, ranges, a.params, priceMin, priceMax)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", series.Pair.Name, err)
	}

	return &models.TradingModel{
		PairName:     series.Pair.Name,
		CVA:          cva,
		Zones:        ClassifyZones(cva),
		CurrentPrice: currentPrice,
	}, nil
}
