//go:build wireinject
// +build wireinject

package di

import (
	"github.com/leemthai/zone-sniper-sub000/pkg/config"
	"github.com/leemthai/zone-sniper-sub000/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideSeriesCache,
		ProvideClickHouseClient,
		ProvideKafkaProducer,

		// Market data
		ProvideRestClient,
		ProvideSeriesStore,
		ProvidePriceStore,
		ProvideStream,

		// Analysis pipeline
		ProvideAnalyzer,
		ProvideWorker,
		ProvideMonitor,

		// Signal fanout
		ProvideSignalStorage,
		ProvideSignalPublisher,
		ProvideSignalFanout,

		// Engine + HTTP surface
		ProvideEngine,
		ProvideZonesHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
