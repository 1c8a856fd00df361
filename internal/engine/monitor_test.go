package engine

import (
	"testing"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
)

// zoneModel builds a model with one sticky SuperZone spanning buckets 2..3
// of a [0, 100] partition, i.e. prices 20..40.
func zoneModel(t *testing.T) *models.TradingModel {
	t.Helper()
	partition, err := models.NewPriceRangePartition(0, 100, 10)
	if err != nil {
		t.Fatalf("partition: %v", err)
	}
	sticky := []models.Zone{
		models.ZoneFromIndex(2, partition),
		models.ZoneFromIndex(3, partition),
	}
	zones := models.ClassifiedZones{Sticky: sticky}
	zones.StickySuper = models.AggregateZones(sticky)

	return &models.TradingModel{
		PairName: "BTCUSDT",
		CVA:      models.NewCVACore("BTCUSDT", partition, 1.0),
		Zones:    zones,
	}
}

func TestMonitorEmitsEnterAndExitTransitions(t *testing.T) {
	m := NewMonitor()
	model := zoneModel(t)

	entered := m.ProcessPriceUpdate(model, 30)
	if len(entered) != 1 {
		t.Fatalf("expected 1 transition, got %v", entered)
	}
	if entered[0].Kind != models.SignalZoneEntered || entered[0].SuperZoneID != 2 {
		t.Fatalf("unexpected transition %+v", entered[0])
	}

	exited := m.ProcessPriceUpdate(model, 60)
	if len(exited) != 1 {
		t.Fatalf("expected 1 transition, got %v", exited)
	}
	if exited[0].Kind != models.SignalZoneExited || exited[0].SuperZoneID != 2 {
		t.Fatalf("unexpected transition %+v", exited[0])
	}
}

func TestMonitorSilentWhenOccupancyUnchanged(t *testing.T) {
	m := NewMonitor()
	model := zoneModel(t)

	m.ProcessPriceUpdate(model, 30)
	before := m.Signals()

	// moves within the same super zone
	if got := m.ProcessPriceUpdate(model, 35); got != nil {
		t.Fatalf("unchanged occupancy must be silent, got %v", got)
	}
	after := m.Signals()
	if len(before) != 1 || len(after) != 1 {
		t.Fatalf("state signals: before=%v after=%v", before, after)
	}
	// signals are kept verbatim, not regenerated with new IDs
	if before[0].ID != after[0].ID {
		t.Fatalf("state signal was regenerated without an occupancy change")
	}
}

func TestMonitorStateSignalsTrackOccupancy(t *testing.T) {
	m := NewMonitor()
	model := zoneModel(t)

	m.ProcessPriceUpdate(model, 30)
	signals := m.Signals()
	if len(signals) != 1 || signals[0].Kind != models.SignalInZone {
		t.Fatalf("expected one in_zone signal, got %v", signals)
	}

	m.ProcessPriceUpdate(model, 60)
	if signals := m.Signals(); len(signals) != 0 {
		t.Fatalf("leaving all zones must clear state signals, got %v", signals)
	}
}

func TestMonitorPairsByZoneType(t *testing.T) {
	m := NewMonitor()
	model := zoneModel(t)

	m.ProcessPriceUpdate(model, 30)
	if got := m.PairsByZoneType(models.ZoneSticky); len(got) != 1 || got[0] != "BTCUSDT" {
		t.Fatalf("sticky pairs: got %v", got)
	}
	if got := m.PairsByZoneType(models.ZoneSlippy); len(got) != 0 {
		t.Fatalf("slippy pairs should be empty, got %v", got)
	}

	occ, ok := m.Occupancy("BTCUSDT")
	if !ok || len(occ) != 1 || occ[0].SuperZoneID != 2 {
		t.Fatalf("occupancy: got %v, %v", occ, ok)
	}
}
