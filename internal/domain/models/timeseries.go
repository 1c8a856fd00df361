package models

// OhlcvTimeSeries holds dense per-interval candle arrays for one pair. One
// slot per interval boundary; gaps are filled upstream by the data layer.
type OhlcvTimeSeries struct {
	Pair             PairInterval
	FirstTimestampMs int64
	Open             []float64
	High             []float64
	Low              []float64
	Close            []float64
	BaseVolume       []float64
	QuoteVolume      []float64
}

func NewOhlcvTimeSeries(pair PairInterval, firstTimestampMs int64, capacity int) *OhlcvTimeSeries {
	return &OhlcvTimeSeries{
		Pair:             pair,
		FirstTimestampMs: firstTimestampMs,
		Open:             make([]float64, 0, capacity),
		High:             make([]float64, 0, capacity),
		Low:              make([]float64, 0, capacity),
		Close:            make([]float64, 0, capacity),
		BaseVolume:       make([]float64, 0, capacity),
		QuoteVolume:      make([]float64, 0, capacity),
	}
}

func (s *OhlcvTimeSeries) Len() int {
	return len(s.Close)
}

func (s *OhlcvTimeSeries) Append(c Candle) {
	s.Open = append(s.Open, c.Open)
	s.High = append(s.High, c.High)
	s.Low = append(s.Low, c.Low)
	s.Close = append(s.Close, c.Close)
	s.BaseVolume = append(s.BaseVolume, c.BaseVolume)
	s.QuoteVolume = append(s.QuoteVolume, c.QuoteVolume)
}

func (s *OhlcvTimeSeries) Candle(i int) Candle {
	return Candle{
		Open:        s.Open[i],
		High:        s.High[i],
		Low:         s.Low[i],
		Close:       s.Close[i],
		BaseVolume:  s.BaseVolume[i],
		QuoteVolume: s.QuoteVolume[i],
	}
}

// TimestampAt returns the open time of candle i in milliseconds.
func (s *OhlcvTimeSeries) TimestampAt(i int) int64 {
	return s.FirstTimestampMs + int64(i)*s.Pair.IntervalMs
}

// PriceExtent returns the min low and max high across the [start, end)
// index ranges. ok is false when the ranges contain no candles.
func (s *OhlcvTimeSeries) PriceExtent(ranges []IndexRange) (float64, float64, bool) {
	var lo, hi float64
	seen := false
	for _, r := range ranges {
		for i := r.Start; i < r.End && i < s.Len(); i++ {
			if !seen {
				lo, hi = s.Low[i], s.High[i]
				seen = true
				continue
			}
			if s.Low[i] < lo {
				lo = s.Low[i]
			}
			if s.High[i] > hi {
				hi = s.High[i]
			}
		}
	}
	return lo, hi, seen
}

// IndexRange is a half-open [Start, End) candle index span.
type IndexRange struct {
	Start int
	End   int
}

func (r IndexRange) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// TotalCandles sums the lengths of a range list.
func TotalCandles(ranges []IndexRange) int {
	n := 0
	for _, r := range ranges {
		n += r.Len()
	}
	return n
}
