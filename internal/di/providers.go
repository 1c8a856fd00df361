package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/leemthai/zone-sniper-sub000/internal/analysis"
	"github.com/leemthai/zone-sniper-sub000/internal/engine"
	"github.com/leemthai/zone-sniper-sub000/internal/handler/api"
	internalrepo "github.com/leemthai/zone-sniper-sub000/internal/repository"
	"github.com/leemthai/zone-sniper-sub000/internal/service/binance"
	"github.com/leemthai/zone-sniper-sub000/internal/service/prices"
	"github.com/leemthai/zone-sniper-sub000/pkg/cache"
	pkgch "github.com/leemthai/zone-sniper-sub000/pkg/clickhouse"
	"github.com/leemthai/zone-sniper-sub000/pkg/config"
	xhttp "github.com/leemthai/zone-sniper-sub000/pkg/http"
	pkgkafka "github.com/leemthai/zone-sniper-sub000/pkg/kafka"
	"github.com/leemthai/zone-sniper-sub000/pkg/logger"
	"github.com/leemthai/zone-sniper-sub000/pkg/metrics"
	"github.com/leemthai/zone-sniper-sub000/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	level := "info"
	format := "json"
	if cfg.Environment == "development" {
		level = "debug"
		format = "console"
	}
	return logger.New(&logger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() *metrics.Recorder {
	return metrics.New()
}

// ProvideSeriesCache creates the candle snapshot cache: layered over Redis
// when enabled, plain in-memory otherwise.
func ProvideSeriesCache(cfg *config.Config) (cache.Service, error) {
	maxEntries := cfg.SeriesCache.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 64
	}
	if !cfg.SeriesCache.Redis.Enabled {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(maxEntries)), nil
	}

	host, port := splitHostPort(cfg.SeriesCache.Redis.Addr)
	redisCache, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.SeriesCache.Redis.Password),
		cache.WithRedisDB(cfg.SeriesCache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("series cache redis: %w", err)
	}
	return cache.NewLayeredCache(redisCache, cache.WithLayeredMemorySize(maxEntries)), nil
}

func splitHostPort(addr string) (string, int) {
	if addr == "" {
		return "localhost", 6379
	}
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 6379
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 6379
	}
	return host, port
}

// ProvideRestClient creates the Binance REST client.
func ProvideRestClient(cfg *config.Config) *binance.RestClient {
	timeout := cfg.Binance.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpc := xhttp.NewClient(xhttp.WithTimeout(timeout))
	return binance.NewRestClient(cfg.Binance.RestURL, httpc)
}

// ProvideSeriesStore creates the candle series store.
func ProvideSeriesStore(cfg *config.Config, rest *binance.RestClient, cacheSvc cache.Service, log *logger.Logger) *internalrepo.SeriesStore {
	ttl := cfg.SeriesCache.SnapshotTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return internalrepo.NewSeriesStore(rest, cacheSvc, cfg.Binance.IntervalMs, cfg.Binance.BackfillDays, ttl, log)
}

// ProvidePriceStore creates the shared live-price store.
func ProvidePriceStore() *prices.Store {
	return prices.NewStore()
}

// ProvideStream creates the Binance websocket price stream.
func ProvideStream(cfg *config.Config, store *prices.Store, log *logger.Logger) *binance.Stream {
	delay := cfg.Binance.ReconnectDelay
	if delay <= 0 {
		delay = 5 * time.Second
	}
	return binance.NewStream(cfg.Binance.WebSocketURL, cfg.Binance.Symbols, delay, store, log)
}

// ProvideAnalyzer creates the analysis pipeline with its result cache.
func ProvideAnalyzer(cfg *config.Config) *analysis.Analyzer {
	params := analysis.Params{
		ZoneCount:       cfg.Analysis.ZoneCount,
		TimeDecayFactor: cfg.Analysis.TimeDecayFactor,
		MinCandles:      cfg.Analysis.MinCandles,
	}
	adCfg := analysis.AutoDurationConfig{
		RelevancyThreshold: cfg.Analysis.RelevancyThreshold,
		MinLookbackDays:    cfg.Analysis.MinLookbackDays,
	}
	return analysis.NewAnalyzer(params, adCfg, analysis.NewResultCache(cfg.Analysis.CacheMaxEntries))
}

// ProvideClickHouseClient creates a ClickHouse client, nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideSignalStorage creates the ClickHouse signal history store and its
// schema, nil when ClickHouse is disabled.
func ProvideSignalStorage(cfg *config.Config, chClient *pkgch.Client) (*internalrepo.SignalStorage, error) {
	if chClient == nil {
		return nil, nil
	}
	table := cfg.ClickHouse.SignalTable
	if table == "" {
		table = cfg.ClickHouse.Database + ".zone_signals"
	}
	storage := internalrepo.NewSignalStorage(chClient.DB(), table)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := storage.Init(ctx); err != nil {
		return nil, err
	}
	return storage, nil
}

// ProvideKafkaProducer creates a Kafka producer, nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSignalPublisher creates the Kafka signal publisher, nil without a
// producer.
func ProvideSignalPublisher(cfg *config.Config, producer *pkgkafka.Producer) *internalrepo.KafkaSignalPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.Topic)
}

// ProvideSignalFanout combines the Kafka and ClickHouse signal legs.
func ProvideSignalFanout(publisher *internalrepo.KafkaSignalPublisher, storage *internalrepo.SignalStorage, log *logger.Logger) *internalrepo.SignalFanout {
	return internalrepo.NewSignalFanout(publisher, storage, log)
}

// ProvideMonitor creates the multi-pair zone monitor.
func ProvideMonitor() *engine.Monitor {
	return engine.NewMonitor()
}

// ProvideWorker creates the analysis worker.
func ProvideWorker(analyzer *analysis.Analyzer, series *internalrepo.SeriesStore, log *logger.Logger, rec *metrics.Recorder) *engine.Worker {
	return engine.NewWorker(analyzer, series, log, rec)
}

// ProvideEngine creates the recompute engine.
func ProvideEngine(
	cfg *config.Config,
	worker *engine.Worker,
	store *prices.Store,
	monitor *engine.Monitor,
	sink *internalrepo.SignalFanout,
	log *logger.Logger,
	rec *metrics.Recorder,
) *engine.Engine {
	frame := cfg.Analysis.FrameInterval
	if frame <= 0 {
		frame = time.Second
	}
	engineCfg := engine.Config{
		RecalcThresholdPct: cfg.Analysis.RecalcThresholdPct,
		FrameInterval:      frame,
	}
	return engine.New(engineCfg, cfg.Binance.Symbols, worker, store, monitor, sink, log, rec)
}

// ProvideZonesHandler creates the HTTP handler.
func ProvideZonesHandler(log *logger.Logger, eng *engine.Engine, monitor *engine.Monitor, storage *internalrepo.SignalStorage) xhttp.Handler {
	return api.NewZonesEchoHandler(log, eng, monitor, storage)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *logger.Logger,
	series *internalrepo.SeriesStore,
	stream *binance.Stream,
	eng *engine.Engine,
	publisher *internalrepo.KafkaSignalPublisher,
	chClient *pkgch.Client,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, log, series, stream, eng, publisher, chClient, handler)
}
