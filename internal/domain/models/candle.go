package models

// Candle is one OHLCV bar.
type Candle struct {
	Open        float64
	High        float64
	Low         float64
	Close       float64
	BaseVolume  float64
	QuoteVolume float64
}

// BodyRange returns the candle body as an ordered [low, high] interval.
func (c Candle) BodyRange() (float64, float64) {
	if c.Open <= c.Close {
		return c.Open, c.Close
	}
	return c.Close, c.Open
}

// LowWickRange spans from the low to the bottom of the body.
func (c Candle) LowWickRange() (float64, float64) {
	bottom, _ := c.BodyRange()
	return c.Low, bottom
}

// HighWickRange spans from the top of the body to the high.
func (c Candle) HighWickRange() (float64, float64) {
	_, top := c.BodyRange()
	return top, c.High
}

// Overlaps reports whether [c.Low, c.High] intersects [lo, hi].
func (c Candle) Overlaps(lo, hi float64) bool {
	return c.High >= lo && c.Low <= hi
}
