package engine

import (
	"sync/atomic"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
)

// PairState is the engine-owned lifecycle record for one pair. The model is
// the pair's front buffer: readers load the pointer and keep whatever
// snapshot they got, the engine publishes a replacement in one atomic store.
// All other fields are written by the engine goroutine only and read through
// the engine's status lock.
type PairState struct {
	model           atomic.Pointer[models.TradingModel]
	LastUpdatePrice float64
	IsCalculating   bool
	LastError       string
}

// Model returns the currently published snapshot, nil before the first
// successful computation.
func (s *PairState) Model() *models.TradingModel {
	return s.model.Load()
}

func (s *PairState) publish(m *models.TradingModel) {
	s.model.Store(m)
}

// PairStatus is a copyable view of a pair's engine state.
type PairStatus struct {
	PairName        string  `json:"pair"`
	HasModel        bool    `json:"has_model"`
	LastUpdatePrice float64 `json:"last_update_price"`
	IsCalculating   bool    `json:"is_calculating"`
	LastError       string  `json:"last_error,omitempty"`
}
