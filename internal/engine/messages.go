package engine

import (
	"time"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
)

// JobRequest asks the worker to rebuild one pair's zones at a price.
type JobRequest struct {
	PairName string
	Price    float64
}

// JobResult carries one finished computation back to the engine. Err and
// Model are mutually exclusive.
type JobResult struct {
	PairName string
	Price    float64
	Model    *models.TradingModel
	Err      error
	Elapsed  time.Duration
}
