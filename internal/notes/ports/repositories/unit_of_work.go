package repositories

import "context"

// Repositories набор репозиториев, работающих в одной транзакции.
type Repositories interface {
	Drafts() DraftRepository
	Notes() NoteRepository
	Tags() TagRepository
	Links() LinkRepository
}

// UnitOfWork выполняет fn в одной транзакции: commit при nil, rollback при ошибке.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
