package models

// ScoreType selects one of the per-bucket activity score vectors.
type ScoreType int

const (
	ScoreBodyVolume  ScoreType = iota // candle-body range weighted by base volume
	ScoreLowWick                      // low-wick rejection count
	ScoreHighWick                     // high-wick rejection count
	ScoreQuoteVolume                  // full low-high range weighted by quote volume
	numScoreTypes
)

func (t ScoreType) String() string {
	switch t {
	case ScoreBodyVolume:
		return "body_volume"
	case ScoreLowWick:
		return "low_wick"
	case ScoreHighWick:
		return "high_wick"
	case ScoreQuoteVolume:
		return "quote_volume"
	}
	return "unknown"
}

// ScoreTypes lists every score vector a CVACore carries.
func ScoreTypes() []ScoreType {
	return []ScoreType{ScoreBodyVolume, ScoreLowWick, ScoreHighWick, ScoreQuoteVolume}
}

// CVACore accumulates per-price-bucket activity scores for one computation
// window. It is built once per recompute and treated as immutable afterwards;
// readers share it by pointer.
type CVACore struct {
	PairName         string
	PriceRange       PriceRangePartition
	ZoneCount        int
	TimeDecayFactor  float64
	StartTimestampMs int64
	EndTimestampMs   int64
	TotalCandles     int

	scores [numScoreTypes][]float64
}

func NewCVACore(pairName string, priceRange PriceRangePartition, timeDecayFactor float64) *CVACore {
	c := &CVACore{
		PairName:        pairName,
		PriceRange:      priceRange,
		ZoneCount:       priceRange.NChunks,
		TimeDecayFactor: timeDecayFactor,
	}
	for i := range c.scores {
		c.scores[i] = make([]float64, priceRange.NChunks)
	}
	return c
}

// Scores returns the raw score vector for one type. Callers must not mutate.
func (c *CVACore) Scores(t ScoreType) []float64 {
	return c.scores[t]
}

// AddScore assigns the full score to the single bucket containing price.
func (c *CVACore) AddScore(t ScoreType, price, score float64) {
	c.scores[t][c.PriceRange.ChunkIndex(price)] += score
}

// SpreadScore distributes score evenly across every bucket the [low, high]
// span intersects. A zero-width span degenerates to a point assignment; a span
// fully outside the partition is a no-op.
func (c *CVACore) SpreadScore(t ScoreType, low, high, score float64) {
	if low > high {
		low, high = high, low
	}
	if low == high {
		c.AddScore(t, low, score)
		return
	}
	n := c.PriceRange.CountIntersectingChunks(low, high)
	if n == 0 {
		return
	}
	perChunk := score / float64(n)
	start := c.PriceRange.ChunkIndex(low)
	for i := 0; i < n && start+i < c.ZoneCount; i++ {
		c.scores[t][start+i] += perChunk
	}
}
