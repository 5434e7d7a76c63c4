//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"nutrilog/internal"
	"nutrilog/internal/controllers"
	"nutrilog/internal/models"
	"nutrilog/internal/persistence"
	"nutrilog/internal/providers"
	"nutrilog/internal/services"
	"nutrilog/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, func(), error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		models.NewEntryStore,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		persistence.NewCompressor,
		persistence.NewSlot,
		persistence.NewEntryRepository,
		services.NewExtractor,
		services.NewJournalService,
		persistence.NewScheduler,
		controllers.NewJournalController,
		controllers.NewRelayController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil, nil
}
