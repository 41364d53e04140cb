//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"fskanban/internal/application/usecase/archive"
	"fskanban/internal/application/usecase/board"
	"fskanban/internal/application/usecase/task"
	"fskanban/internal/domain/repository"
	"fskanban/internal/domain/service"
	"fskanban/internal/infrastructure/config"
	"fskanban/internal/infrastructure/persistence/filesystem"
)

// InitializeContainer sets up all dependencies for a loaded configuration
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(
		// Infrastructure
		ProvideLogger,
		ProvideStorageHandler,
		ProvideBoardLock,

		// Repositories
		filesystem.NewCardRepository,
		ProvideArchiveRepository,
		ProvideBoardRepository,
		wire.Bind(new(repository.CardRepository), new(*filesystem.CardRepositoryImpl)),
		wire.Bind(new(repository.ArchiveRepository), new(*filesystem.ArchiveRepositoryImpl)),
		wire.Bind(new(repository.BoardRepository), new(*filesystem.BoardRepositoryImpl)),
		wire.Bind(new(task.CardSummarizer), new(*filesystem.CardRepositoryImpl)),

		// Domain Services
		service.NewBoardService,

		// Use Cases - Board
		board.NewGetBoardUseCase,
		board.NewCheckBoardUseCase,
		board.NewPlanBoardUseCase,
		board.NewApplyBoardUseCase,

		// Use Cases - Task
		task.NewListTasksUseCase,
		task.NewGetTaskUseCase,
		task.NewSearchTasksUseCase,

		// Use Cases - Archive
		archive.NewListArchiveUseCase,

		// Wire the container
		wire.Struct(new(Container), "*"),
	)
	return nil, nil
}
