package engine

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
	"github.com/leemthai/zone-sniper-sub000/pkg/logger"
	"github.com/leemthai/zone-sniper-sub000/pkg/metrics"
)

// ErrUnknownPair marks a request for a pair the engine was not started with.
var ErrUnknownPair = errors.New("unknown pair")

// PriceSource exposes the latest observed price per pair. Implemented by the
// live price store; reads are instantaneous snapshots.
type PriceSource interface {
	Price(pair string) (float64, bool)
}

// SignalSink receives zone transition signals as they happen.
type SignalSink interface {
	Publish(ctx context.Context, signals []models.TradingSignal) error
}

// Config tunes the recompute engine.
type Config struct {
	// RecalcThresholdPct re-queues a pair when price moved this fraction
	// from the price its current model was built at, e.g. 0.01 for 1%.
	RecalcThresholdPct float64
	// FrameInterval is the engine tick period.
	FrameInterval time.Duration
}

type forceCmd struct {
	pair   string
	global bool
}

// Engine owns all per-pair state, the recalc queue and the worker dispatch.
// One goroutine (Run) is the single writer of pair state; HTTP readers go
// through the status lock for scalars and through the atomic front buffer for
// models.
type Engine struct {
	cfg     Config
	worker  *Worker
	prices  PriceSource
	monitor *Monitor
	sink    SignalSink
	logger  *logger.Logger
	metrics *metrics.Recorder

	mu     sync.RWMutex
	pairs  map[string]*PairState
	order  []string
	queue  []string
	queued map[string]bool

	jobCh    chan JobRequest
	resultCh chan JobResult
	forceCh  chan forceCmd
}

func New(cfg Config, pairNames []string, worker *Worker, prices PriceSource, monitor *Monitor, sink SignalSink, log *logger.Logger, rec *metrics.Recorder) *Engine {
	e := &Engine{
		cfg:      cfg,
		worker:   worker,
		prices:   prices,
		monitor:  monitor,
		sink:     sink,
		logger:   log,
		metrics:  rec,
		pairs:    make(map[string]*PairState, len(pairNames)),
		queued:   make(map[string]bool, len(pairNames)),
		jobCh:    make(chan JobRequest, 1),
		resultCh: make(chan JobResult, len(pairNames)+1),
		forceCh:  make(chan forceCmd, 64),
	}
	for _, name := range pairNames {
		e.pairs[name] = &PairState{}
		e.order = append(e.order, name)
	}
	sort.Strings(e.order)
	return e
}

// Run drives the engine until the context ends. Each frame drains worker
// results, applies pending force requests, checks automatic triggers and
// dispatches at most one queued pair to the worker.
func (e *Engine) Run(ctx context.Context) {
	go e.worker.Run(ctx, e.jobCh, e.resultCh)

	ticker := time.NewTicker(e.cfg.FrameInterval)
	defer ticker.Stop()

	e.logger.Info("engine started",
		logger.Int("pairs", len(e.order)),
		logger.Duration("frame_interval", e.cfg.FrameInterval))

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("engine stopped")
			return
		case <-ticker.C:
			e.update(ctx)
		}
	}
}

// ForceRecalc queues a pair at the front of the recalc queue. Unknown pairs
// fail immediately and are never queued.
func (e *Engine) ForceRecalc(pair string) error {
	e.mu.RLock()
	_, ok := e.pairs[pair]
	e.mu.RUnlock()
	if !ok {
		return ErrUnknownPair
	}
	select {
	case e.forceCh <- forceCmd{pair: pair}:
		return nil
	default:
		return errors.New("force-recalc queue full")
	}
}

// TriggerGlobalRecalc rebuilds the queue with every pair, putting
// priorityPair first when given.
func (e *Engine) TriggerGlobalRecalc(priorityPair string) {
	select {
	case e.forceCh <- forceCmd{pair: priorityPair, global: true}:
	default:
	}
}

func (e *Engine) update(ctx context.Context) {
	e.drainResults(ctx)
	e.drainForce()
	e.checkTriggers(ctx)
	e.dispatch()
	e.metrics.SetQueueDepth(len(e.queue))
}

func (e *Engine) drainResults(ctx context.Context) {
	for {
		select {
		case res := <-e.resultCh:
			e.handleResult(ctx, res)
		default:
			return
		}
	}
}

func (e *Engine) drainForce() {
	for {
		select {
		case cmd := <-e.forceCh:
			if cmd.global {
				e.rebuildQueue(cmd.pair)
			} else {
				e.pushFront(cmd.pair)
			}
		default:
			return
		}
	}
}

// checkTriggers queues every pair whose price moved beyond the recalc
// threshold since its model was built, or which has never been computed. It
// also feeds the monitor so occupancy tracks price between recomputes.
func (e *Engine) checkTriggers(ctx context.Context) {
	for _, name := range e.order {
		price, ok := e.prices.Price(name)
		if !ok {
			continue
		}
		e.metrics.RecordLastPrice(name, price)

		st := e.pairs[name]
		if model := st.Model(); model != nil {
			e.emitSignals(ctx, e.monitor.ProcessPriceUpdate(model, price))
		}

		e.mu.RLock()
		calculating := st.IsCalculating
		last := st.LastUpdatePrice
		e.mu.RUnlock()

		if calculating || e.queued[name] {
			continue
		}
		if last == 0 || pctMove(last, price) >= e.cfg.RecalcThresholdPct {
			e.pushBack(name)
		}
	}
}

// dispatch hands the queue head to the worker if the pair is idle and the
// worker can take a job right now. A busy worker just leaves the queue
// untouched until the next frame. LastUpdatePrice is recorded at dispatch,
// not on completion, so a failed recompute is not retried until the price
// moves beyond the threshold again.
func (e *Engine) dispatch() {
	for len(e.queue) > 0 {
		name := e.queue[0]
		st := e.pairs[name]

		e.mu.RLock()
		calculating := st.IsCalculating
		e.mu.RUnlock()
		if calculating {
			return
		}

		price, ok := e.prices.Price(name)
		if !ok {
			// no price yet; drop the entry so it cannot block the
			// pairs behind it. checkTriggers re-queues the pair once
			// a price shows up.
			e.queue = e.queue[1:]
			delete(e.queued, name)
			continue
		}

		select {
		case e.jobCh <- JobRequest{PairName: name, Price: price}:
			e.queue = e.queue[1:]
			delete(e.queued, name)
			e.mu.Lock()
			st.IsCalculating = true
			st.LastUpdatePrice = price
			e.mu.Unlock()
		default:
			return
		}
	}
}

func (e *Engine) handleResult(ctx context.Context, res JobResult) {
	st, ok := e.pairs[res.PairName]
	if !ok {
		// pair removed mid-flight, drop the result
		return
	}

	e.mu.Lock()
	st.IsCalculating = false
	if res.Err != nil {
		st.LastError = res.Err.Error()
	} else {
		st.LastError = ""
	}
	e.mu.Unlock()

	if res.Err != nil {
		e.metrics.RecordRecompute(res.PairName, "error")
		e.metrics.RecordError("analysis")
		return
	}

	st.publish(res.Model)
	e.metrics.RecordRecompute(res.PairName, "success")
	e.emitSignals(ctx, e.monitor.ProcessPriceUpdate(res.Model, res.Price))
}

func (e *Engine) emitSignals(ctx context.Context, transitions []models.TradingSignal) {
	if len(transitions) == 0 {
		return
	}
	for _, s := range transitions {
		e.metrics.RecordSignal(s.PairName, string(s.Kind))
	}
	if e.sink == nil {
		return
	}
	if err := e.sink.Publish(ctx, transitions); err != nil {
		e.logger.Error("signal publish failed", logger.Error(err))
		e.metrics.RecordError("signal_publish")
	}
}

func (e *Engine) pushFront(name string) {
	if e.queued[name] {
		e.removeFromQueue(name)
	}
	e.queue = append([]string{name}, e.queue...)
	e.queued[name] = true
}

func (e *Engine) pushBack(name string) {
	if e.queued[name] {
		return
	}
	e.queue = append(e.queue, name)
	e.queued[name] = true
}

func (e *Engine) rebuildQueue(priorityPair string) {
	e.queue = e.queue[:0]
	for k := range e.queued {
		delete(e.queued, k)
	}
	if _, ok := e.pairs[priorityPair]; ok {
		e.pushBack(priorityPair)
	}
	for _, name := range e.order {
		if name != priorityPair {
			e.pushBack(name)
		}
	}
}

func (e *Engine) removeFromQueue(name string) {
	for i, n := range e.queue {
		if n == name {
			e.queue = append(e.queue[:i], e.queue[i+1:]...)
			break
		}
	}
	delete(e.queued, name)
}

// Pairs lists every pair the engine tracks, sorted.
func (e *Engine) Pairs() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Model returns the published front buffer for a pair, nil before the first
// successful recompute.
func (e *Engine) Model(pair string) (*models.TradingModel, error) {
	e.mu.RLock()
	st, ok := e.pairs[pair]
	e.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownPair
	}
	return st.Model(), nil
}

// Status returns a copyable view of one pair's engine state.
func (e *Engine) Status(pair string) (PairStatus, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	st, ok := e.pairs[pair]
	if !ok {
		return PairStatus{}, ErrUnknownPair
	}
	return PairStatus{
		PairName:        pair,
		HasModel:        st.Model() != nil,
		LastUpdatePrice: st.LastUpdatePrice,
		IsCalculating:   st.IsCalculating,
		LastError:       st.LastError,
	}, nil
}

// Statuses reports every pair's state, sorted by pair name.
func (e *Engine) Statuses() []PairStatus {
	out := make([]PairStatus, 0, len(e.order))
	for _, name := range e.order {
		if s, err := e.Status(name); err == nil {
			out = append(out, s)
		}
	}
	return out
}

func pctMove(from, to float64) float64 {
	if from == 0 {
		return math.Inf(1)
	}
	return math.Abs(to-from) / from
}
