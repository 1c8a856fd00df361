package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/leemthai/zone-sniper-sub000/internal/analysis"
	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
	"github.com/leemthai/zone-sniper-sub000/pkg/logger"
	"github.com/leemthai/zone-sniper-sub000/pkg/metrics"
)

// SeriesProvider hands out the historical candles for one pair. Implemented
// by the data layer; the engine never fetches or parses anything itself.
type SeriesProvider interface {
	Series(pair string) (*models.OhlcvTimeSeries, bool)
}

// Worker consumes job requests, runs the analysis pipeline and reports each
// outcome on the result channel. It never touches engine state directly.
type Worker struct {
	analyzer *analysis.Analyzer
	series   SeriesProvider
	logger   *logger.Logger
	metrics  *metrics.Recorder
}

func NewWorker(analyzer *analysis.Analyzer, series SeriesProvider, log *logger.Logger, rec *metrics.Recorder) *Worker {
	return &Worker{analyzer: analyzer, series: series, logger: log, metrics: rec}
}

// Run processes jobs until the context ends or the job channel closes. Jobs
// run to completion; there is no cancellation of an in-flight computation.
func (w *Worker) Run(ctx context.Context, jobs <-chan JobRequest, results chan<- JobResult) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			res := w.process(job)
			select {
			case results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *Worker) process(job JobRequest) JobResult {
	start := time.Now()
	res := JobResult{PairName: job.PairName, Price: job.Price}

	series, ok := w.series.Series(job.PairName)
	if !ok {
		res.Err = fmt.Errorf("no candle data loaded for %s", job.PairName)
		res.Elapsed = time.Since(start)
		return res
	}

	model, err := w.analyzer.AnalyzePair(series, job.Price)
	res.Model = model
	res.Err = err
	res.Elapsed = time.Since(start)

	w.metrics.RecordLatency("pair_analysis", res.Elapsed.Seconds())
	if err != nil {
		w.logger.Warn("pair analysis failed",
			logger.String("pair", job.PairName),
			logger.Float64("price", job.Price),
			logger.Error(err))
	} else {
		w.logger.Debug("pair analysis done",
			logger.String("pair", job.PairName),
			logger.Duration("elapsed", res.Elapsed),
			logger.Int("zones", len(model.Zones.StickySuper)))
	}
	return res
}
