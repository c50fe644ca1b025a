// Package postgres реализует репозитории сервиса заметок поверх pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/avyukd/bobo-notes/internal/notes/ports/repositories"
	"github.com/avyukd/bobo-notes/pkg/logger"
)

// Коды ошибок Postgres.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Константы для сообщений об ошибках транзакций.
const (
	ErrBeginTx    = "failed to begin transaction"
	ErrCommitTx   = "failed to commit transaction"
	ErrRollbackTx = "failed to rollback transaction"
)

// Querier общий интерфейс pgxpool.Pool и pgx.Tx.
// Begin на транзакции открывает savepoint.
type Querier interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RepositoryFactory создает репозитории поверх пула или транзакции.
type RepositoryFactory struct {
	db Querier
}

var _ repositories.Repositories = (*RepositoryFactory)(nil)

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(db Querier) *RepositoryFactory {
	return &RepositoryFactory{db: db}
}

// Drafts возвращает репозиторий черновиков.
func (f *RepositoryFactory) Drafts() repositories.DraftRepository {
	return NewDraftRepository(f.db)
}

// Notes возвращает репозиторий заметок.
func (f *RepositoryFactory) Notes() repositories.NoteRepository {
	return NewNoteRepository(f.db)
}

// Tags возвращает репозиторий меток.
func (f *RepositoryFactory) Tags() repositories.TagRepository {
	return NewTagRepository(f.db)
}

// Links возвращает репозиторий связей.
func (f *RepositoryFactory) Links() repositories.LinkRepository {
	return NewLinkRepository(f.db)
}

// UnitOfWork возвращает unit of work поверх того же пула.
func (f *RepositoryFactory) UnitOfWork() repositories.UnitOfWork {
	return NewUnitOfWork(f.db)
}

// inTx выполняет fn в транзакции (или savepoint, если db уже транзакция).
func inTx(ctx context.Context, db Querier, fn func(q Querier) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrBeginTx, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Log(ctx).Error(ctx, ErrRollbackTx, zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrCommitTx, err)
	}
	return nil
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}

type rowScanner interface {
	Scan(dest ...any) error
}
