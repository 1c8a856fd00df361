package models

import "sort"

// TradingModel is the externally visible unit of truth for one pair at one
// point in time: the CVA it was computed from, the classified zones, and the
// price that triggered the computation. Immutable once published.
type TradingModel struct {
	PairName     string
	CVA          *CVACore
	Zones        ClassifiedZones
	CurrentPrice float64
}

// ZoneOccupancy marks one SuperZone currently containing price.
type ZoneOccupancy struct {
	SuperZoneID int
	Type        ZoneType
}

// SuperZonesAtPrice returns every stored SuperZone whose price interval
// contains price, ordered by category then id so occupancy sets compare
// deterministically.
func (m *TradingModel) SuperZonesAtPrice(price float64) []ZoneOccupancy {
	var out []ZoneOccupancy
	for _, t := range []ZoneType{ZoneSticky, ZoneSlippy, ZoneLowWicks, ZoneHighWicks} {
		for _, sz := range m.Zones.SuperZonesFor(t) {
			if sz.ContainsPrice(price) {
				out = append(out, ZoneOccupancy{SuperZoneID: sz.ID, Type: t})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].SuperZoneID < out[j].SuperZoneID
	})
	return out
}

// NearestSupport returns the sticky SuperZone whose price center sits closest
// below price. ok is false when no sticky zone lies below.
func (m *TradingModel) NearestSupport(price float64) (SuperZone, bool) {
	return nearestSticky(m.Zones.StickySuper, price, true)
}

// NearestResistance returns the sticky SuperZone whose price center sits
// closest above price.
func (m *TradingModel) NearestResistance(price float64) (SuperZone, bool) {
	return nearestSticky(m.Zones.StickySuper, price, false)
}

func nearestSticky(zones []SuperZone, price float64, below bool) (SuperZone, bool) {
	var best SuperZone
	found := false
	for _, sz := range zones {
		if below && sz.PriceCenter >= price {
			continue
		}
		if !below && sz.PriceCenter <= price {
			continue
		}
		dist := price - sz.PriceCenter
		if !below {
			dist = sz.PriceCenter - price
		}
		if !found || dist < absDiff(price, best.PriceCenter) {
			best = sz
			found = true
		}
	}
	return best, found
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
