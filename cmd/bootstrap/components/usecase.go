package components

import (
	"stayhub/internal/pkg/clock"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		queries.NewBookingQueries,
		commands.NewBookingUseCase,
	),
)
