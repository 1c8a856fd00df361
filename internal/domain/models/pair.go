package models

import "fmt"

// PairInterval identifies one instrument at one candle timeframe.
type PairInterval struct {
	Name       string
	IntervalMs int64
}

func NewPairInterval(name string, intervalMs int64) PairInterval {
	return PairInterval{Name: name, IntervalMs: intervalMs}
}

func (p PairInterval) String() string {
	return fmt.Sprintf("%s@%dms", p.Name, p.IntervalMs)
}
