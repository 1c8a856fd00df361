package models

import (
	"time"

	"github.com/google/uuid"
)

// SignalKind says what a zone signal reports.
type SignalKind string

const (
	SignalZoneEntered SignalKind = "zone_entered"
	SignalZoneExited  SignalKind = "zone_exited"
	SignalInZone      SignalKind = "in_zone"
)

// TradingSignal is one zone-occupancy event for one pair. Purely descriptive;
// downstream consumers decide what, if anything, to do with it.
type TradingSignal struct {
	ID          string     `json:"id"`
	PairName    string     `json:"pair"`
	Kind        SignalKind `json:"kind"`
	SuperZoneID int        `json:"superzone_id"`
	ZoneType    string     `json:"zone_type"`
	Price       float64    `json:"price"`
	Timestamp   time.Time  `json:"timestamp"`
}

func NewTradingSignal(pair string, kind SignalKind, occ ZoneOccupancy, price float64, at time.Time) TradingSignal {
	return TradingSignal{
		ID:          uuid.NewString(),
		PairName:    pair,
		Kind:        kind,
		SuperZoneID: occ.SuperZoneID,
		ZoneType:    occ.Type.String(),
		Price:       price,
		Timestamp:   at,
	}
}
