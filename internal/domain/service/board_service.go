package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"fskanban/internal/domain/entity"
	"fskanban/internal/domain/repository"
)

// BoardService provides high-level domain operations for the board
type BoardService struct {
	boardRepo   repository.BoardRepository
	cardRepo    repository.CardRepository
	archiveRepo repository.ArchiveRepository
}

// NewBoardService creates a new BoardService
func NewBoardService(
	boardRepo repository.BoardRepository,
	cardRepo repository.CardRepository,
	archiveRepo repository.ArchiveRepository,
) *BoardService {
	return &BoardService{
		boardRepo:   boardRepo,
		cardRepo:    cardRepo,
		archiveRepo: archiveRepo,
	}
}

// Load returns the board, persisting the default container when none exists yet
func (s *BoardService) Load(ctx context.Context) (*entity.Container, error) {
	c, err := s.boardRepo.GetKanbanState(ctx)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	c = entity.NewContainer()
	if err := s.boardRepo.SaveKanbanState(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save board: %w", err)
	}
	return c, nil
}

// CreateRow appends a new row to the bottom of the board
func (s *BoardService) CreateRow(ctx context.Context, title string) (*entity.Container, *entity.Row, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, nil, err
	}

	c, err := s.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	meta, err := s.newCard(ctx, c, title, entity.CardTypeRow)
	if err != nil {
		return nil, nil, err
	}

	row := entity.Row{ID: meta.ID, Position: float64(len(c.Rows)), SyncID: meta.SyncID}
	c.Rows = append(c.Rows, row)

	c, err = s.save(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	return c, &c.Rows[c.FindRow(row.ID)], nil
}

// CreateTask appends a new task to the end of a (row, column) cell
func (s *BoardService) CreateTask(ctx context.Context, rowID, columnID int, title string) (*entity.Container, *entity.Task, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := entity.ColumnByID(columnID); !ok {
		return nil, nil, fmt.Errorf("column %d: %w", columnID, entity.ErrColumnNotFound)
	}

	c, err := s.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if c.FindRow(rowID) < 0 {
		return nil, nil, fmt.Errorf("row %d: %w", rowID, entity.ErrRowNotFound)
	}

	meta, err := s.newCard(ctx, c, title, entity.CardTypeTask)
	if err != nil {
		return nil, nil, err
	}
	if err := s.cardRepo.SaveCardContent(ctx, meta.ID, "", nil); err != nil {
		return nil, nil, fmt.Errorf("failed to create content for task %d: %w", meta.ID, err)
	}

	task := entity.Task{
		ID:       meta.ID,
		ColumnID: columnID,
		RowID:    rowID,
		Position: float64(len(c.TasksIn(rowID, columnID))),
		SyncID:   meta.SyncID,
	}
	c.Tasks = append(c.Tasks, task)

	c, err = s.save(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	return c, &c.Tasks[c.FindTask(task.ID)], nil
}

// MoveTask places a task at index within the target cell. An index past the
// end, or negative, appends.
func (s *BoardService) MoveTask(ctx context.Context, taskID, columnID, rowID, index int) (*entity.Container, error) {
	if _, ok := entity.ColumnByID(columnID); !ok {
		return nil, fmt.Errorf("column %d: %w", columnID, entity.ErrColumnNotFound)
	}

	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if c.FindRow(rowID) < 0 {
		return nil, fmt.Errorf("row %d: %w", rowID, entity.ErrRowNotFound)
	}

	i := c.FindTask(taskID)
	if i < 0 {
		return nil, fmt.Errorf("task %d: %w", taskID, entity.ErrTaskNotFound)
	}
	task := c.Tasks[i]
	c.Tasks = slices.Delete(c.Tasks, i, i+1)

	task.ColumnID = columnID
	task.RowID = rowID

	at := len(c.Tasks)
	seen := 0
	for j, t := range c.Tasks {
		if t.RowID != rowID || t.ColumnID != columnID {
			continue
		}
		if seen == index {
			at = j
			break
		}
		seen++
	}
	if index < 0 {
		at = len(c.Tasks)
	}
	c.Tasks = slices.Insert(c.Tasks, at, task)

	return s.save(ctx, c)
}

// MoveRow places a row at index. An index past the end, or negative, appends.
func (s *BoardService) MoveRow(ctx context.Context, rowID, index int) (*entity.Container, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := c.FindRow(rowID)
	if i < 0 {
		return nil, fmt.Errorf("row %d: %w", rowID, entity.ErrRowNotFound)
	}
	row := c.Rows[i]
	c.Rows = slices.Delete(c.Rows, i, i+1)

	if index < 0 || index > len(c.Rows) {
		index = len(c.Rows)
	}
	c.Rows = slices.Insert(c.Rows, index, row)

	return s.save(ctx, c)
}

// RenameCard changes the title of a row or task. Only metadata holds the
// title; the board entry picks it up on the next save.
func (s *BoardService) RenameCard(ctx context.Context, id int, title string) (*entity.CardMetadata, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	meta, err := s.cardRepo.GetCardMetadata(ctx, id)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, entity.NewStorageError(entity.KindMissingMetadata, "", fmt.Sprintf("card %d has no metadata", id), nil)
	}

	meta.Title = title
	if err := s.cardRepo.SaveCardMetadata(ctx, meta); err != nil {
		return nil, fmt.Errorf("failed to save card %d: %w", id, err)
	}

	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if c.FindRow(id) >= 0 || c.FindTask(id) >= 0 {
		if _, err := s.save(ctx, c); err != nil {
			return nil, err
		}
	}
	return meta, nil
}

// ArchiveRow removes a row and its tasks from the board and appends them to
// the archive. Card directories are kept.
func (s *BoardService) ArchiveRow(ctx context.Context, rowID int) (*entity.Container, *entity.ArchivedRow, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	i := c.FindRow(rowID)
	if i < 0 {
		return nil, nil, fmt.Errorf("row %d: %w", rowID, entity.ErrRowNotFound)
	}

	archived := entity.ArchivedRow{ID: rowID}
	for _, col := range entity.DefaultColumns() {
		ac := entity.ArchivedColumn{ID: col.ID, Tasks: []int{}}
		for _, t := range c.TasksIn(rowID, col.ID) {
			ac.Tasks = append(ac.Tasks, t.ID)
		}
		archived.Columns = append(archived.Columns, ac)
	}

	c.Rows = slices.Delete(c.Rows, i, i+1)
	c.Tasks = slices.DeleteFunc(c.Tasks, func(t entity.Task) bool { return t.RowID == rowID })

	if err := s.persist(ctx, c); err != nil {
		return nil, nil, err
	}
	if err := s.archiveRepo.AddToArchive(ctx, archived); err != nil {
		return nil, nil, fmt.Errorf("failed to archive row %d: %w", rowID, err)
	}

	c, err = s.reload(ctx)
	if err != nil {
		return nil, nil, err
	}
	return c, &archived, nil
}

// RestoreRow puts an archived row and its tasks back at the head of the
// board, then drops it from the archive.
func (s *BoardService) RestoreRow(ctx context.Context, rowID int) (*entity.Container, error) {
	archive, err := s.archiveRepo.GetArchive(ctx)
	if err != nil {
		return nil, err
	}
	archived, ok := archive.Find(rowID)
	if !ok {
		return nil, fmt.Errorf("row %d: %w", rowID, entity.ErrArchivedRowNotFound)
	}

	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	rowSync, err := s.syncID(ctx, rowID)
	if err != nil {
		return nil, err
	}

	var tasks []entity.Task
	for _, col := range archived.Columns {
		if _, ok := entity.ColumnByID(col.ID); !ok {
			return nil, fmt.Errorf("archived row %d column %d: %w", rowID, col.ID, entity.ErrColumnNotFound)
		}
		for pos, id := range col.Tasks {
			taskSync, err := s.syncID(ctx, id)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, entity.Task{
				ID:       id,
				ColumnID: col.ID,
				RowID:    rowID,
				Position: float64(pos),
				SyncID:   taskSync,
			})
		}
	}

	c.Rows = slices.Insert(c.Rows, 0, entity.Row{ID: rowID, SyncID: rowSync})
	c.Tasks = slices.Insert(c.Tasks, 0, tasks...)

	// The ids stay parked in the archive until the board holds them again,
	// and the board must not be reloaded before they leave it.
	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}
	if err := s.archiveRepo.RemoveFromArchive(ctx, rowID); err != nil {
		return nil, fmt.Errorf("failed to remove row %d from archive: %w", rowID, err)
	}
	return s.reload(ctx)
}

// DeleteTask removes a task from the board and deletes its card directory
func (s *BoardService) DeleteTask(ctx context.Context, taskID int) (*entity.Container, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := c.FindTask(taskID)
	if i < 0 {
		return nil, fmt.Errorf("task %d: %w", taskID, entity.ErrTaskNotFound)
	}
	c.Tasks = slices.Delete(c.Tasks, i, i+1)

	c, err = s.save(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := s.cardRepo.DeleteCard(ctx, taskID); err != nil {
		return nil, fmt.Errorf("failed to delete task %d: %w", taskID, err)
	}
	return c, nil
}

// DeleteRow removes a row and all of its tasks permanently
func (s *BoardService) DeleteRow(ctx context.Context, rowID int) (*entity.Container, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := c.FindRow(rowID)
	if i < 0 {
		return nil, fmt.Errorf("row %d: %w", rowID, entity.ErrRowNotFound)
	}

	ids := []int{rowID}
	for _, t := range c.Tasks {
		if t.RowID == rowID {
			ids = append(ids, t.ID)
		}
	}
	c.Rows = slices.Delete(c.Rows, i, i+1)
	c.Tasks = slices.DeleteFunc(c.Tasks, func(t entity.Task) bool { return t.RowID == rowID })

	c, err = s.save(ctx, c)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if err := s.cardRepo.DeleteCard(ctx, id); err != nil {
			return nil, fmt.Errorf("failed to delete card %d: %w", id, err)
		}
	}
	return c, nil
}

// NextID returns the id a new card would receive: one past every id held by
// the board, the archive and the card store.
func (s *BoardService) NextID(ctx context.Context, c *entity.Container) (int, error) {
	archive, err := s.archiveRepo.GetArchive(ctx)
	if err != nil {
		return 0, err
	}
	max := c.MaxID(archive)

	ids, err := s.cardRepo.ListCardIDs(ctx)
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 && ids[len(ids)-1] > max {
		max = ids[len(ids)-1]
	}
	return max + 1, nil
}

// Titles returns the metadata title of each card. Cards without metadata
// are left out.
func (s *BoardService) Titles(ctx context.Context, ids []int) (map[int]string, error) {
	titles := make(map[int]string, len(ids))
	for _, id := range ids {
		meta, err := s.cardRepo.GetCardMetadata(ctx, id)
		if err != nil {
			return nil, err
		}
		if meta != nil {
			titles[id] = meta.Title
		}
	}
	return titles, nil
}

func (s *BoardService) newCard(ctx context.Context, c *entity.Container, title string, cardType entity.CardType) (*entity.CardMetadata, error) {
	id, err := s.NextID(ctx, c)
	if err != nil {
		return nil, err
	}

	meta := &entity.CardMetadata{
		ID:     id,
		Title:  title,
		Type:   cardType,
		SyncID: entity.NewSyncID(),
	}
	if err := s.cardRepo.SaveCardMetadata(ctx, meta); err != nil {
		return nil, fmt.Errorf("failed to create %s %d: %w", cardType, id, err)
	}
	return meta, nil
}

func (s *BoardService) syncID(ctx context.Context, id int) (string, error) {
	meta, err := s.cardRepo.GetCardMetadata(ctx, id)
	if err != nil {
		return "", err
	}
	if meta == nil {
		return "", nil
	}
	return meta.SyncID, nil
}

// save persists c and returns the board as stored, with normalized positions
func (s *BoardService) save(ctx context.Context, c *entity.Container) (*entity.Container, error) {
	if err := s.persist(ctx, c); err != nil {
		return nil, err
	}
	return s.reload(ctx)
}

func (s *BoardService) persist(ctx context.Context, c *entity.Container) error {
	if err := s.boardRepo.SaveKanbanState(ctx, c); err != nil {
		return fmt.Errorf("failed to save board: %w", err)
	}
	return nil
}

func (s *BoardService) reload(ctx context.Context) (*entity.Container, error) {
	saved, err := s.boardRepo.GetKanbanState(ctx)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		saved = entity.NewContainer()
	}
	return saved, nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", entity.ErrEmptyTitle
	}
	return title, nil
}
