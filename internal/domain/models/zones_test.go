package models

import "testing"

func zonesAt(p PriceRangePartition, indices ...int) []Zone {
	out := make([]Zone, 0, len(indices))
	for _, idx := range indices {
		out = append(out, ZoneFromIndex(idx, p))
	}
	return out
}

func TestAggregateZonesMergesAdjacentRuns(t *testing.T) {
	p, _ := NewPriceRangePartition(0, 160, 16)
	super := AggregateZones(zonesAt(p, 3, 4, 5, 9, 10))

	if len(super) != 2 {
		t.Fatalf("expected 2 super zones, got %d", len(super))
	}
	first, second := super[0], super[1]
	if first.FirstIndex != 3 || first.LastIndex != 5 {
		t.Fatalf("first run: got [%d, %d], want [3, 5]", first.FirstIndex, first.LastIndex)
	}
	if first.ID != 3 {
		t.Fatalf("first run ID: got %d, want 3", first.ID)
	}
	if len(first.Zones) != 3 {
		t.Fatalf("first run zone count: got %d, want 3", len(first.Zones))
	}
	if second.FirstIndex != 9 || second.LastIndex != 10 {
		t.Fatalf("second run: got [%d, %d], want [9, 10]", second.FirstIndex, second.LastIndex)
	}
}

func TestAggregateZonesPriceBounds(t *testing.T) {
	p, _ := NewPriceRangePartition(0, 100, 10)
	super := AggregateZones(zonesAt(p, 2, 3))
	if len(super) != 1 {
		t.Fatalf("expected 1 super zone, got %d", len(super))
	}
	sz := super[0]
	if sz.PriceBottom != 20 || sz.PriceTop != 40 {
		t.Fatalf("price bounds: got [%v, %v], want [20, 40]", sz.PriceBottom, sz.PriceTop)
	}
	if sz.PriceCenter != 30 {
		t.Fatalf("price center: got %v, want 30", sz.PriceCenter)
	}
	if !sz.ContainsPrice(20) || !sz.ContainsPrice(40) || sz.ContainsPrice(41) {
		t.Fatalf("ContainsPrice boundary behaviour wrong")
	}
}

func TestAggregateZonesEmpty(t *testing.T) {
	if got := AggregateZones(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestSuperZonesFor(t *testing.T) {
	p, _ := NewPriceRangePartition(0, 100, 10)
	cz := ClassifiedZones{
		StickySuper: AggregateZones(zonesAt(p, 1)),
		SlippySuper: AggregateZones(zonesAt(p, 5, 6)),
	}
	if got := cz.SuperZonesFor(ZoneSticky); len(got) != 1 {
		t.Fatalf("sticky: got %d, want 1", len(got))
	}
	if got := cz.SuperZonesFor(ZoneSlippy); len(got) != 1 {
		t.Fatalf("slippy: got %d, want 1", len(got))
	}
	if got := cz.SuperZonesFor(ZoneNeutral); got != nil {
		t.Fatalf("neutral should have no super zones")
	}
}
