package components

import (
	"credshop/internal/infra/db"
	"credshop/internal/infra/notification"
	"credshop/internal/infra/readstore"
	"credshop/internal/infra/repository"
	"credshop/internal/infra/uow"
	"credshop/internal/infra/voucher"
	"credshop/internal/usecase/queries"
	"credshop/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		// Unit repository outside the UoW, for the reclaim sweep
		fx.Annotate(
			repository.NewUnitRepository,
			fx.As(new(shared.UnitRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReader)),
		),
		// Collaborators
		notification.NewEmailNotifier,
		voucher.NewPassthroughVouchers,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
