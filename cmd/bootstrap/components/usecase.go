package components

import (
	"context"

	"credshop/internal/pkg/clock"
	"credshop/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewReclaimUseCase,
		usecase.NewCheckoutUseCase,
		usecase.NewPaymentUseCase,
		usecase.NewOrderQueries,
		usecase.NewSweeper,
	),
	fx.Invoke(runSweeper),
)

// runSweeper ties the background hold sweep to the application lifecycle.
func runSweeper(lc fx.Lifecycle, sweeper *usecase.Sweeper) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go sweeper.Run(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
