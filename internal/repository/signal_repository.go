package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/leemthai/zone-sniper-sub000/internal/domain/models"
	pkgkafka "github.com/leemthai/zone-sniper-sub000/pkg/kafka"
	"github.com/leemthai/zone-sniper-sub000/pkg/logger"
)

// SignalStorage persists zone signals in ClickHouse, backing the signal
// history API and the backtesting collaborator.
type SignalStorage struct {
	db    *sql.DB
	table string
}

func NewSignalStorage(db *sql.DB, table string) *SignalStorage {
	return &SignalStorage{db: db, table: table}
}

// Init creates the signal history table if needed.
func (s *SignalStorage) Init(ctx context.Context) error {
	q := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    ts           DateTime64(3),
    event_id     String,
    pair         String,
    kind         String,
    superzone_id Int32,
    zone_type    String,
    price        Float64
) ENGINE = MergeTree()
ORDER BY (pair, ts)
TTL toDateTime(ts) + INTERVAL 90 DAY`, s.table)
	if _, err := s.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init signal table: %w", err)
	}
	return nil
}

// StoreBatch inserts signals with a multi-row VALUES statement, chunked to
// keep round-trips bounded.
func (s *SignalStorage) StoreBatch(ctx context.Context, signals []models.TradingSignal) error {
	if len(signals) == 0 {
		return nil
	}
	const chunkSize = 2000
	for start := 0; start < len(signals); start += chunkSize {
		end := start + chunkSize
		if end > len(signals) {
			end = len(signals)
		}
		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*7)
		for _, sig := range signals[start:end] {
			if sig.PairName == "" {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				sig.Timestamp,
				sig.ID,
				sig.PairName,
				string(sig.Kind),
				int32(sig.SuperZoneID),
				sig.ZoneType,
				sig.Price,
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (ts, event_id, pair, kind, superzone_id, zone_type, price) VALUES %s",
			s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("store signals: %w", err)
		}
	}
	return nil
}

// Query returns the most recent signals for a pair within [from, to].
func (s *SignalStorage) Query(ctx context.Context, pair string, from, to time.Time, limit int) ([]models.TradingSignal, error) {
	q := fmt.Sprintf(`SELECT ts, event_id, pair, kind, superzone_id, zone_type, price
FROM %s WHERE pair = ? AND ts >= ? AND ts <= ? ORDER BY ts DESC LIMIT ?`, s.table)
	rows, err := s.db.QueryContext(ctx, q, pair, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	var out []models.TradingSignal
	for rows.Next() {
		var sig models.TradingSignal
		var kind string
		var zoneID int32
		if err := rows.Scan(&sig.Timestamp, &sig.ID, &sig.PairName, &kind, &zoneID, &sig.ZoneType, &sig.Price); err != nil {
			return nil, err
		}
		sig.Kind = models.SignalKind(kind)
		sig.SuperZoneID = int(zoneID)
		out = append(out, sig)
	}
	return out, rows.Err()
}

// Health pings the backing database.
func (s *SignalStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// KafkaSignalPublisher streams zone signals to a Kafka topic, keyed by pair
// so one pair's transitions stay ordered within a partition.
type KafkaSignalPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaSignalPublisher(producer *pkgkafka.Producer, topic string) *KafkaSignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic}
}

func (p *KafkaSignalPublisher) PublishBatch(ctx context.Context, signals []models.TradingSignal) error {
	if len(signals) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(signals))
	for i, sig := range signals {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(sig.PairName),
			Value: sig,
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaSignalPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// SignalFanout implements the engine's signal sink by writing each batch to
// Kafka and ClickHouse. Either leg failing is logged and reported; the other
// leg still runs.
type SignalFanout struct {
	publisher *KafkaSignalPublisher
	storage   *SignalStorage
	logger    *logger.Logger
}

func NewSignalFanout(publisher *KafkaSignalPublisher, storage *SignalStorage, log *logger.Logger) *SignalFanout {
	return &SignalFanout{publisher: publisher, storage: storage, logger: log}
}

func (f *SignalFanout) Publish(ctx context.Context, signals []models.TradingSignal) error {
	var firstErr error
	if f.publisher != nil {
		if err := f.publisher.PublishBatch(ctx, signals); err != nil {
			f.logger.Error("kafka signal publish failed", logger.Error(err))
			firstErr = err
		}
	}
	if f.storage != nil {
		if err := f.storage.StoreBatch(ctx, signals); err != nil {
			f.logger.Error("clickhouse signal store failed", logger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
