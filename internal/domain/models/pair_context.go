package models

import "time"

// PairContext tracks, for one pair, which SuperZones currently contain price.
// Owned and mutated by the multi-pair monitor only.
type PairContext struct {
	PairName     string
	CurrentPrice float64
	CurrentZones []ZoneOccupancy
	Model        *TradingModel
	LastUpdated  time.Time
	Signals      []TradingSignal
}

func NewPairContext(pairName string) *PairContext {
	return &PairContext{PairName: pairName}
}

// NeedsUpdate reports whether the occupancy set differs from the stored one.
// Both sides are in the deterministic order SuperZonesAtPrice produces.
func (c *PairContext) NeedsUpdate(zones []ZoneOccupancy) bool {
	if len(zones) != len(c.CurrentZones) {
		return true
	}
	for i, z := range zones {
		if z != c.CurrentZones[i] {
			return true
		}
	}
	return false
}

// Apply replaces the occupancy set and regenerates state signals. Transition
// signals (entered/exited) are returned for the caller to publish; the stored
// Signals slice reflects only the current occupancy.
func (c *PairContext) Apply(model *TradingModel, price float64, zones []ZoneOccupancy, at time.Time) []TradingSignal {
	prev := c.CurrentZones
	c.Model = model
	c.CurrentPrice = price
	c.CurrentZones = zones
	c.LastUpdated = at

	var transitions []TradingSignal
	for _, z := range zones {
		if !containsOccupancy(prev, z) {
			transitions = append(transitions, NewTradingSignal(c.PairName, SignalZoneEntered, z, price, at))
		}
	}
	for _, z := range prev {
		if !containsOccupancy(zones, z) {
			transitions = append(transitions, NewTradingSignal(c.PairName, SignalZoneExited, z, price, at))
		}
	}

	c.Signals = c.Signals[:0]
	for _, z := range zones {
		c.Signals = append(c.Signals, NewTradingSignal(c.PairName, SignalInZone, z, price, at))
	}
	return transitions
}

func containsOccupancy(set []ZoneOccupancy, z ZoneOccupancy) bool {
	for _, s := range set {
		if s == z {
			return true
		}
	}
	return false
}
