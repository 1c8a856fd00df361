package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
)

// Monitor tracks, across all pairs, which SuperZones currently contain price
// and regenerates signals only when a pair's occupancy set changes. Guarded
// by a read-write lock so HTTP readers never block the engine for long.
type Monitor struct {
	mu       sync.RWMutex
	contexts map[string]*models.PairContext
	now      func() time.Time
}

func NewMonitor() *Monitor {
	return &Monitor{
		contexts: make(map[string]*models.PairContext),
		now:      time.Now,
	}
}

// ProcessPriceUpdate compares the pair's zone occupancy at the given price
// with the stored set. When nothing changed it returns nil without touching
// the context; otherwise it applies the new set and returns the transition
// signals.
func (m *Monitor) ProcessPriceUpdate(model *models.TradingModel, price float64) []models.TradingSignal {
	zones := model.SuperZonesAtPrice(price)

	m.mu.Lock()
	defer m.mu.Unlock()

	ctx, ok := m.contexts[model.PairName]
	if !ok {
		ctx = models.NewPairContext(model.PairName)
		m.contexts[model.PairName] = ctx
	}
	if !ok || ctx.NeedsUpdate(zones) {
		return ctx.Apply(model, price, zones, m.now())
	}
	// occupancy unchanged: refresh the snapshot, keep the signals
	ctx.Model = model
	ctx.CurrentPrice = price
	ctx.LastUpdated = m.now()
	return nil
}

// Signals returns the current state signals of every monitored pair.
func (m *Monitor) Signals() []models.TradingSignal {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.TradingSignal
	for _, ctx := range m.contexts {
		out = append(out, ctx.Signals...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PairName != out[j].PairName {
			return out[i].PairName < out[j].PairName
		}
		return out[i].SuperZoneID < out[j].SuperZoneID
	})
	return out
}

// PairsByZoneType lists the pairs currently inside at least one SuperZone of
// the given type, sorted.
func (m *Monitor) PairsByZoneType(t models.ZoneType) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []string
	for name, ctx := range m.contexts {
		for _, occ := range ctx.CurrentZones {
			if occ.Type == t {
				out = append(out, name)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// Occupancy returns the occupied-zone set for one pair. ok is false before
// the pair's first processed update.
func (m *Monitor) Occupancy(pair string) ([]models.ZoneOccupancy, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ctx, ok := m.contexts[pair]
	if !ok {
		return nil, false
	}
	out := make([]models.ZoneOccupancy, len(ctx.CurrentZones))
	copy(out, ctx.CurrentZones)
	return out, true
}
