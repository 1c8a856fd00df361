package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
	"github.com/leemthai/zone-sniper-sub000/internal/service/binance"
	"github.com/leemthai/zone-sniper-sub000/pkg/cache"
	"github.com/leemthai/zone-sniper-sub000/pkg/logger"
)

// SeriesStore loads and holds the historical candle series for every
// configured pair. Snapshots are cached (memory + optional Redis) so a
// restart skips the full REST backfill; the in-process map is what the
// worker reads during analysis.
type SeriesStore struct {
	rest         *binance.RestClient
	cache        cache.Service
	snapshotTTL  time.Duration
	intervalMs   int64
	backfillDays int
	logger       *logger.Logger

	mu     sync.RWMutex
	series map[string]*models.OhlcvTimeSeries
}

func NewSeriesStore(rest *binance.RestClient, cacheSvc cache.Service, intervalMs int64, backfillDays int, snapshotTTL time.Duration, log *logger.Logger) *SeriesStore {
	return &SeriesStore{
		rest:         rest,
		cache:        cacheSvc,
		snapshotTTL:  snapshotTTL,
		intervalMs:   intervalMs,
		backfillDays: backfillDays,
		logger:       log,
		series:       make(map[string]*models.OhlcvTimeSeries),
	}
}

// Series returns the loaded candles for a pair.
func (s *SeriesStore) Series(pair string) (*models.OhlcvTimeSeries, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ts, ok := s.series[pair]
	return ts, ok
}

// Pairs lists the loaded pair names.
func (s *SeriesStore) Pairs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.series))
	for name := range s.series {
		out = append(out, name)
	}
	return out
}

// LoadAll fills the store for every symbol, from the snapshot cache when
// possible and the REST API otherwise. One symbol failing aborts the load:
// the engine should not start with a partial universe.
func (s *SeriesStore) LoadAll(ctx context.Context, symbols []string) error {
	for _, sym := range symbols {
		ts, err := s.load(ctx, sym)
		if err != nil {
			return fmt.Errorf("load series %s: %w", sym, err)
		}
		s.mu.Lock()
		s.series[sym] = ts
		s.mu.Unlock()
		s.logger.Info("series loaded",
			logger.String("pair", sym),
			logger.Int("candles", ts.Len()))
	}
	return nil
}

func (s *SeriesStore) snapshotKey(symbol string) string {
	return fmt.Sprintf("series:%s:%d", symbol, s.intervalMs)
}

func (s *SeriesStore) load(ctx context.Context, symbol string) (*models.OhlcvTimeSeries, error) {
	if s.cache != nil {
		if ts, err := s.fromCache(ctx, symbol); err == nil {
			return ts, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("series snapshot read failed", logger.String("pair", symbol), logger.Error(err))
		}
	}

	startMs := time.Now().AddDate(0, 0, -s.backfillDays).UnixMilli()
	ts, err := s.rest.FetchSeries(ctx, symbol, s.intervalMs, startMs)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.toCache(ctx, symbol, ts); err != nil {
			s.logger.Warn("series snapshot write failed", logger.String("pair", symbol), logger.Error(err))
		}
	}
	return ts, nil
}

func (s *SeriesStore) fromCache(ctx context.Context, symbol string) (*models.OhlcvTimeSeries, error) {
	var raw string
	if err := s.cache.Get(ctx, s.snapshotKey(symbol), &raw); err != nil {
		return nil, err
	}
	var ts models.OhlcvTimeSeries
	if err := json.Unmarshal([]byte(raw), &ts); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &ts, nil
}

func (s *SeriesStore) toCache(ctx context.Context, symbol string, ts *models.OhlcvTimeSeries) error {
	b, err := json.Marshal(ts)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return s.cache.Set(ctx, s.snapshotKey(symbol), string(b), s.snapshotTTL)
}
