package models

import "testing"

func stickyModel(t *testing.T) *TradingModel {
	t.Helper()
	p, err := NewPriceRangePartition(0, 100, 10)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	// sticky bands at 10..20, 40..50 and 70..80
	sticky := zonesAt(p, 1)
	mid := zonesAt(p, 4)
	high := zonesAt(p, 7)
	all := append(append(sticky, mid...), high...)

	zones := ClassifiedZones{Sticky: all}
	zones.StickySuper = AggregateZones(all)
	return &TradingModel{PairName: "BTCUSDT", Zones: zones}
}

func TestNearestSupportAndResistance(t *testing.T) {
	m := stickyModel(t)

	support, ok := m.NearestSupport(60)
	if !ok || support.ID != 4 {
		t.Fatalf("support below 60: got %+v, %v", support, ok)
	}
	resistance, ok := m.NearestResistance(60)
	if !ok || resistance.ID != 7 {
		t.Fatalf("resistance above 60: got %+v, %v", resistance, ok)
	}

	if _, ok := m.NearestSupport(5); ok {
		t.Fatalf("no sticky zone lies below 5")
	}
	if _, ok := m.NearestResistance(95); ok {
		t.Fatalf("no sticky zone lies above 95")
	}
}

func TestSuperZonesAtPriceDeterministicOrder(t *testing.T) {
	p, _ := NewPriceRangePartition(0, 100, 10)
	band := zonesAt(p, 4, 5)
	zones := ClassifiedZones{
		Sticky:    band,
		HighWicks: band,
	}
	zones.StickySuper = AggregateZones(band)
	zones.HighWicksSuper = AggregateZones(band)
	m := &TradingModel{PairName: "BTCUSDT", Zones: zones}

	occ := m.SuperZonesAtPrice(45)
	if len(occ) != 2 {
		t.Fatalf("expected 2 occupancies, got %v", occ)
	}
	if occ[0].Type != ZoneSticky || occ[1].Type != ZoneHighWicks {
		t.Fatalf("occupancy order: got %v", occ)
	}
	if occ[0].SuperZoneID != 4 || occ[1].SuperZoneID != 4 {
		t.Fatalf("occupancy ids: got %v", occ)
	}

	if out := m.SuperZonesAtPrice(95); len(out) != 0 {
		t.Fatalf("price outside every zone: got %v", out)
	}
}
