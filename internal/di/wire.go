//go:build wireinject
// +build wireinject

package di

import (
	"AvoDash/pkg/config"
	"AvoDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Dataset
		ProvideRecordSource,
		ProvideDataset,

		// Use cases
		ProvideChartsUseCase,

		// Delivery
		ProvideCache,
		ProvideRateLimiter,
		ProvideDashboardHandler,
		ProvideWebHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}
