package postgres

import (
	"context"

	"go.uber.org/zap"

	"github.com/avyukd/bobo-notes/internal/notes/ports/repositories"
	"github.com/avyukd/bobo-notes/pkg/logger"
)

// UnitOfWork выполняет группу операций над репозиториями в одной транзакции.
type UnitOfWork struct {
	db Querier
}

var _ repositories.UnitOfWork = (*UnitOfWork)(nil)

// NewUnitOfWork создает unit of work поверх пула.
func NewUnitOfWork(db Querier) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do выполняет fn с репозиториями, привязанными к одной транзакции.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos repositories.Repositories) error) error {
	log := logger.Log(ctx).With(zap.String("method", "UnitOfWork.Do"))

	err := inTx(ctx, u.db, func(q Querier) error {
		return fn(ctx, NewRepositoryFactory(q))
	})
	if err != nil {
		log.Debug(ctx, "unit of work rolled back", zap.Error(err))
		return err
	}
	return nil
}
