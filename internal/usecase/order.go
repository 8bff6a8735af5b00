package usecase

import (
	"context"

	"credshop/internal/infra"
	"credshop/internal/pkg/errs"
	"credshop/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderQueries interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*queries.OrderView, error)
}

type orderQueriesImpl struct {
	reader queries.OrderReader
}

func NewOrderQueries(reader queries.OrderReader) OrderQueries {
	return &orderQueriesImpl{reader: reader}
}

func (q *orderQueriesImpl) GetOrder(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	view, err := q.reader.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrOrderNotFound
		}
		return nil, errs.Wrap(err, "failed to find order")
	}
	return view, nil
}
