package filesystem

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"fskanban/internal/domain/entity"
	"fskanban/internal/domain/repository"
	"fskanban/internal/infrastructure/persistence/codec"
	"fskanban/internal/infrastructure/persistence/diff"
	"fskanban/internal/infrastructure/storage"
)

// DefaultCacheTTL is how long a loaded board is served without re-reading the tree
const DefaultCacheTTL = 30 * time.Second

// BoardRepositoryImpl implements BoardRepository over the board/ directory tree
type BoardRepositoryImpl struct {
	storage     *storage.Handler
	cards       *CardRepositoryImpl
	archive     *ArchiveRepositoryImpl
	resolver    *IDResolver
	pathBuilder *PathBuilder
	lock        *BoardLock
	logger      *logrus.Logger

	cacheTTL time.Duration
	now      func() time.Time

	cacheMu sync.Mutex
	cache   cachedBoard
}

type cachedBoard struct {
	value *entity.Container
	at    time.Time
}

// BoardOption customizes a BoardRepositoryImpl
type BoardOption func(*BoardRepositoryImpl)

// WithCacheTTL overrides DefaultCacheTTL. Zero disables caching.
func WithCacheTTL(ttl time.Duration) BoardOption {
	return func(r *BoardRepositoryImpl) { r.cacheTTL = ttl }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) BoardOption {
	return func(r *BoardRepositoryImpl) { r.now = now }
}

// NewBoardRepository creates a new filesystem-based board repository
func NewBoardRepository(
	handler *storage.Handler,
	cards *CardRepositoryImpl,
	archive *ArchiveRepositoryImpl,
	lock *BoardLock,
	logger *logrus.Logger,
	opts ...BoardOption,
) *BoardRepositoryImpl {
	r := &BoardRepositoryImpl{
		storage:     handler,
		cards:       cards,
		archive:     archive,
		resolver:    NewIDResolver(handler, cards, logger),
		pathBuilder: NewPathBuilder(),
		lock:        lock,
		logger:      logger,
		cacheTTL:    DefaultCacheTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ repository.BoardRepository = (*BoardRepositoryImpl)(nil)

// GetKanbanState loads the board, repairing duplicate ids on the way.
// It returns nil when board/ holds no rows.
func (r *BoardRepositoryImpl) GetKanbanState(ctx context.Context) (*entity.Container, error) {
	unlock, err := r.lock.Lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if cached := r.cached(); cached != nil {
		return cached, nil
	}

	c, _, err := r.load(ctx)
	return c, err
}

// CheckKanbanState loads the board bypassing the cache and reports repairs
func (r *BoardRepositoryImpl) CheckKanbanState(ctx context.Context) (*entity.Container, []entity.Reassignment, error) {
	unlock, err := r.lock.Lock(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	return r.load(ctx)
}

func (r *BoardRepositoryImpl) load(ctx context.Context) (*entity.Container, []entity.Reassignment, error) {
	tree, err := r.storage.LoadTree(ctx, r.pathBuilder.BoardRoot())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read board: %w", err)
	}

	board, err := parseBoard(tree)
	if err != nil {
		return nil, nil, err
	}
	if len(board.rows) == 0 {
		return nil, nil, nil
	}

	archive, err := r.archive.GetArchive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load archive: %w", err)
	}

	report, err := r.resolver.Resolve(ctx, board, archive)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve id conflicts: %w", err)
	}

	c := board.container()
	c.SortByPosition()
	r.store(c)

	r.logger.WithFields(logrus.Fields{
		"rows":     len(c.Rows),
		"tasks":    len(c.Tasks),
		"repaired": len(report),
	}).Debug("board loaded")

	return c, report, nil
}

// SaveKanbanState converges board/ to c: missing entries are created, then
// stale ones removed. Row positions come from the index in c.Rows and task
// positions from the index within their column.
func (r *BoardRepositoryImpl) SaveKanbanState(ctx context.Context, c *entity.Container) error {
	unlock, err := r.lock.Lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	tracker, saved, err := r.track(ctx, c)
	if err != nil {
		return err
	}
	plan := tracker.Plan()

	if err := tracker.CreateAll(ctx, r.writeFile, r.createDir); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}
	if err := tracker.RemoveUnneeded(ctx, r.removeFile, r.removeDir); err != nil {
		return fmt.Errorf("failed to clean board: %w", err)
	}

	saved.SortByPosition()
	r.store(saved)

	r.logger.WithFields(logrus.Fields{
		"created": len(plan.Creates),
		"removed": len(plan.Removes),
	}).Debug("board saved")

	return nil
}

// PlanKanbanState reports what SaveKanbanState would change, without writing
func (r *BoardRepositoryImpl) PlanKanbanState(ctx context.Context, c *entity.Container) ([]string, []string, error) {
	unlock, err := r.lock.Lock(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	tracker, _, err := r.track(ctx, c)
	if err != nil {
		return nil, nil, err
	}

	plan := tracker.Plan()
	creates := make([]string, 0, len(plan.Creates))
	for _, e := range plan.Creates {
		creates = append(creates, e.Path)
	}
	removes := make([]string, 0, len(plan.Removes))
	for _, e := range plan.Removes {
		removes = append(removes, e.Path)
	}
	return creates, removes, nil
}

// Invalidate drops the cached board
func (r *BoardRepositoryImpl) Invalidate() {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	r.cache = cachedBoard{}
}

// track registers the desired tree for c against a fresh snapshot. The
// returned container carries the positions and sync ids that will be written.
func (r *BoardRepositoryImpl) track(ctx context.Context, c *entity.Container) (*diff.Tracker, *entity.Container, error) {
	root := r.pathBuilder.BoardRoot()
	tree, err := r.storage.LoadTree(ctx, root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read board: %w", err)
	}

	tracker := diff.NewTracker(root)
	tracker.LoadExisting(tree)

	saved := c.Clone()
	if len(saved.Columns) == 0 {
		saved.Columns = entity.DefaultColumns()
	}

	cells := make(map[int]map[int][]int)
	for i, t := range saved.Tasks {
		if saved.FindRow(t.RowID) < 0 {
			return nil, nil, fmt.Errorf("task %d: %w", t.ID, entity.ErrRowNotFound)
		}
		if _, ok := entity.ColumnByID(t.ColumnID); !ok {
			return nil, nil, fmt.Errorf("task %d: %w", t.ID, entity.ErrColumnNotFound)
		}
		if cells[t.RowID] == nil {
			cells[t.RowID] = make(map[int][]int)
		}
		cells[t.RowID][t.ColumnID] = append(cells[t.RowID][t.ColumnID], i)
	}

	for i := range saved.Rows {
		row := &saved.Rows[i]
		meta, err := r.requireMetadata(ctx, row.ID, &row.SyncID, "Row metadata not found")
		if err != nil {
			return nil, nil, err
		}
		row.Position = float64(i)
		rowName := codec.Encode(meta.Title, row.ID, row.SyncID, row.Position)

		for _, col := range entity.DefaultColumns() {
			indexes := cells[row.ID][col.ID]
			if len(indexes) == 0 {
				tracker.AddDesired(diff.Entry{Path: r.pathBuilder.ColumnDir(rowName, col.Title), Kind: diff.KindDir})
				continue
			}

			for j, idx := range indexes {
				task := &saved.Tasks[idx]
				meta, err := r.requireMetadata(ctx, task.ID, &task.SyncID, "Task metadata not found")
				if err != nil {
					return nil, nil, err
				}
				task.Position = float64(j)
				name := codec.EncodeFile(meta.Title, task.ID, task.SyncID, task.Position)
				tracker.AddDesired(diff.Entry{
					Name:    name,
					Path:    r.pathBuilder.TaskFile(rowName, col.Title, name),
					Kind:    diff.KindFile,
					Content: r.pathBuilder.Transclusion(task.ID),
				})
			}
		}
	}

	return tracker, saved, nil
}

// requireMetadata fetches a card's metadata, failing with MissingMetadata
// when it is absent. A card without a sync id adopts the one in its
// metadata, or gets a new one that is written back.
func (r *BoardRepositoryImpl) requireMetadata(ctx context.Context, id int, syncID *string, message string) (*entity.CardMetadata, error) {
	meta, err := r.cards.GetCardMetadata(ctx, id)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, entity.NewStorageError(entity.KindMissingMetadata, r.pathBuilder.CardMetadata(id), message, nil)
	}

	if *syncID == "" {
		*syncID = meta.SyncID
	}
	if *syncID == "" {
		*syncID = entity.NewSyncID()
	}
	if meta.SyncID != *syncID {
		meta.SyncID = *syncID
		if err := r.cards.SaveCardMetadata(ctx, meta); err != nil {
			return nil, err
		}
	}
	return meta, nil
}

func (r *BoardRepositoryImpl) writeFile(ctx context.Context, e diff.Entry) error {
	return r.storage.WriteText(ctx, path.Dir(e.Path), e.Name, e.Content)
}

func (r *BoardRepositoryImpl) createDir(ctx context.Context, e diff.Entry) error {
	return r.storage.CreateDirectory(ctx, e.Path)
}

func (r *BoardRepositoryImpl) removeFile(ctx context.Context, e diff.Entry) error {
	return r.storage.DeleteFile(ctx, path.Dir(e.Path), e.Name)
}

func (r *BoardRepositoryImpl) removeDir(ctx context.Context, e diff.Entry) error {
	return r.storage.RemoveDirectory(ctx, path.Dir(e.Path), e.Name)
}

func (r *BoardRepositoryImpl) cached() *entity.Container {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	if r.cache.value == nil || r.cacheTTL <= 0 || r.now().Sub(r.cache.at) >= r.cacheTTL {
		return nil
	}
	return r.cache.value.Clone()
}

func (r *BoardRepositoryImpl) store(c *entity.Container) {
	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()
	r.cache = cachedBoard{value: c.Clone(), at: r.now()}
}

// parsedTask is a task file found on the board
type parsedTask struct {
	column   entity.Column
	fileName string
	task     entity.Task
}

// parsedRow is a row directory and the task files below it, in board order
type parsedRow struct {
	dirName string
	row     entity.Row
	tasks   []parsedTask
}

type parsedBoard struct {
	rows []parsedRow
}

// parseBoard decodes a snapshot of board/. Any undecodable row or task name
// and any unknown column directory fails the whole parse.
func parseBoard(tree *storage.Tree) (*parsedBoard, error) {
	board := &parsedBoard{}

	for _, f := range tree.Files {
		if !hidden(f) {
			return nil, entity.NewStorageError(entity.KindMalformedName, path.Join(boardDirName, f), "row must be a directory", nil)
		}
	}

	for _, rowDir := range tree.Dirs {
		if hidden(rowDir.Name) {
			continue
		}
		triple, err := codec.Decode(rowDir.Name)
		if err != nil {
			return nil, err
		}
		pr := parsedRow{
			dirName: rowDir.Name,
			row:     entity.Row{ID: triple.ID, Position: triple.Position, SyncID: triple.SyncID},
		}

		for _, f := range rowDir.Files {
			if !hidden(f) {
				return nil, entity.NewStorageError(entity.KindUnknownColumn, path.Join(boardDirName, rowDir.Name, f), "unknown column", nil)
			}
		}

		for _, colDir := range rowDir.Dirs {
			if hidden(colDir.Name) {
				continue
			}
			if _, ok := entity.ColumnByTitle(colDir.Name); !ok {
				return nil, entity.NewStorageError(entity.KindUnknownColumn, path.Join(boardDirName, rowDir.Name, colDir.Name), "unknown column", nil)
			}
		}

		for _, col := range entity.DefaultColumns() {
			colDir, ok := rowDir.Dir(col.Title)
			if !ok {
				continue
			}
			if len(colDir.Dirs) > 0 {
				return nil, entity.NewStorageError(entity.KindMalformedName, path.Join(boardDirName, rowDir.Name, col.Title, colDir.Dirs[0].Name), "task must be a file", nil)
			}

			for _, f := range colDir.Files {
				if hidden(f) {
					continue
				}
				triple, err := codec.Decode(f)
				if err != nil {
					return nil, err
				}
				pr.tasks = append(pr.tasks, parsedTask{
					column:   col,
					fileName: f,
					task: entity.Task{
						ID:       triple.ID,
						ColumnID: col.ID,
						RowID:    pr.row.ID,
						Position: triple.Position,
						SyncID:   triple.SyncID,
					},
				})
			}
		}

		board.rows = append(board.rows, pr)
	}

	return board, nil
}

func (b *parsedBoard) maxID() int {
	max := 0
	for _, pr := range b.rows {
		if pr.row.ID > max {
			max = pr.row.ID
		}
		for _, pt := range pr.tasks {
			if pt.task.ID > max {
				max = pt.task.ID
			}
		}
	}
	return max
}

func (b *parsedBoard) container() *entity.Container {
	c := entity.NewContainer()
	for _, pr := range b.rows {
		c.Rows = append(c.Rows, pr.row)
		for _, pt := range pr.tasks {
			c.Tasks = append(c.Tasks, pt.task)
		}
	}
	return c
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
