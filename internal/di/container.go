package di

import (
	"github.com/sirupsen/logrus"

	"fskanban/internal/application/usecase/archive"
	"fskanban/internal/application/usecase/board"
	"fskanban/internal/application/usecase/task"
	"fskanban/internal/daemon"
	"fskanban/internal/domain/repository"
	"fskanban/internal/domain/service"
	"fskanban/internal/infrastructure/config"
	"fskanban/internal/infrastructure/logging"
	"fskanban/internal/infrastructure/persistence/filesystem"
	"fskanban/internal/infrastructure/storage"
	"fskanban/internal/infrastructure/watcher"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	Config  *config.Config
	Logger  *logrus.Logger
	Storage *storage.Handler

	// Repositories
	BoardRepo   repository.BoardRepository
	CardRepo    repository.CardRepository
	ArchiveRepo repository.ArchiveRepository

	// Domain Services
	BoardService *service.BoardService

	// Use Cases - Board
	GetBoardUseCase   *board.GetBoardUseCase
	CheckBoardUseCase *board.CheckBoardUseCase
	PlanBoardUseCase  *board.PlanBoardUseCase
	ApplyBoardUseCase *board.ApplyBoardUseCase

	// Use Cases - Task
	ListTasksUseCase   *task.ListTasksUseCase
	GetTaskUseCase     *task.GetTaskUseCase
	SearchTasksUseCase *task.SearchTasksUseCase

	// Use Cases - Archive
	ListArchiveUseCase *archive.ListArchiveUseCase
}

// NewDaemon builds a daemon server that watches the configured data directory
func (c *Container) NewDaemon() (*daemon.Server, error) {
	w, err := watcher.New(c.Config.Storage.DataPath, c.Config.Watcher.Debounce, c.Logger)
	if err != nil {
		return nil, err
	}
	return daemon.NewServer(c.BoardRepo, w, c.Logger, daemon.GetSocketPath(c.Config)), nil
}

// Provider functions

func ProvideLogger(cfg *config.Config) (*logrus.Logger, error) {
	return logging.New(cfg)
}

func ProvideStorageHandler(cfg *config.Config) (*storage.Handler, error) {
	return storage.NewOsHandler(cfg.Storage.DataPath)
}

func ProvideBoardLock(cfg *config.Config) *filesystem.BoardLock {
	return filesystem.NewBoardLock(cfg.Storage.DataPath, cfg.Board.LockTimeout)
}

func ProvideArchiveRepository(handler *storage.Handler, logger *logrus.Logger) *filesystem.ArchiveRepositoryImpl {
	return filesystem.NewArchiveRepository(handler, logger)
}

func ProvideBoardRepository(
	cfg *config.Config,
	handler *storage.Handler,
	cards *filesystem.CardRepositoryImpl,
	archive *filesystem.ArchiveRepositoryImpl,
	lock *filesystem.BoardLock,
	logger *logrus.Logger,
) *filesystem.BoardRepositoryImpl {
	return filesystem.NewBoardRepository(handler, cards, archive, lock, logger,
		filesystem.WithCacheTTL(cfg.Board.CacheTTL))
}
