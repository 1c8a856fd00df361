package models

// ZoneType classifies what a zone says about price behaviour.
type ZoneType int

const (
	ZoneNeutral ZoneType = iota
	ZoneSticky
	ZoneSlippy
	ZoneSupport
	ZoneResistance
	ZoneLowWicks
	ZoneHighWicks
)

func (t ZoneType) String() string {
	switch t {
	case ZoneSticky:
		return "sticky"
	case ZoneSlippy:
		return "slippy"
	case ZoneSupport:
		return "support"
	case ZoneResistance:
		return "resistance"
	case ZoneLowWicks:
		return "low_wicks"
	case ZoneHighWicks:
		return "high_wicks"
	}
	return "neutral"
}

// Zone is one classified price bucket.
type Zone struct {
	Index       int
	PriceBottom float64
	PriceTop    float64
	PriceCenter float64
}

// ZoneFromIndex derives the price bounds of bucket idx from the partition.
func ZoneFromIndex(idx int, p PriceRangePartition) Zone {
	bottom, top := p.ChunkBounds(idx)
	return Zone{
		Index:       idx,
		PriceBottom: bottom,
		PriceTop:    top,
		PriceCenter: (bottom + top) / 2,
	}
}

// SuperZone is a maximal run of index-contiguous zones of one category. ID is
// the first constituent's index and stays stable across recomputes that yield
// the same leading bucket, which is what transition tracking keys on.
type SuperZone struct {
	ID          int
	FirstIndex  int
	LastIndex   int
	PriceBottom float64
	PriceTop    float64
	PriceCenter float64
	Zones       []Zone
}

func superZoneFromRun(run []Zone) SuperZone {
	first, last := run[0], run[len(run)-1]
	return SuperZone{
		ID:          first.Index,
		FirstIndex:  first.Index,
		LastIndex:   last.Index,
		PriceBottom: first.PriceBottom,
		PriceTop:    last.PriceTop,
		PriceCenter: (first.PriceBottom + last.PriceTop) / 2,
		Zones:       run,
	}
}

// AggregateZones merges index-adjacent zones into SuperZones with a single
// linear pass. Input must be sorted by Index, which the classifier guarantees.
func AggregateZones(zones []Zone) []SuperZone {
	if len(zones) == 0 {
		return nil
	}
	var out []SuperZone
	run := []Zone{zones[0]}
	for _, z := range zones[1:] {
		if z.Index == run[len(run)-1].Index+1 {
			run = append(run, z)
			continue
		}
		out = append(out, superZoneFromRun(run))
		run = []Zone{z}
	}
	return append(out, superZoneFromRun(run))
}

// ContainsPrice reports whether price falls inside [PriceBottom, PriceTop].
func (s SuperZone) ContainsPrice(price float64) bool {
	return price >= s.PriceBottom && price <= s.PriceTop
}

// ClassifiedZones carries every zone category derived from one CVACore, in
// raw per-bucket and aggregated SuperZone form. Support and resistance are not
// stored: they are derived from the sticky SuperZones against a live price.
type ClassifiedZones struct {
	Sticky    []Zone
	Slippy    []Zone
	LowWicks  []Zone
	HighWicks []Zone

	StickySuper    []SuperZone
	SlippySuper    []SuperZone
	LowWicksSuper  []SuperZone
	HighWicksSuper []SuperZone
}

// SuperZonesFor returns the aggregated zones of one stored category.
func (c *ClassifiedZones) SuperZonesFor(t ZoneType) []SuperZone {
	switch t {
	case ZoneSticky:
		return c.StickySuper
	case ZoneSlippy:
		return c.SlippySuper
	case ZoneLowWicks:
		return c.LowWicksSuper
	case ZoneHighWicks:
		return c.HighWicksSuper
	}
	return nil
}
