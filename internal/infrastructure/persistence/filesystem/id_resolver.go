package filesystem

import (
	"context"
	"fmt"
	"path"
	"strconv"

	"github.com/sirupsen/logrus"

	"fskanban/internal/domain/entity"
	"fskanban/internal/infrastructure/persistence/codec"
	"fskanban/internal/infrastructure/storage"
)

// IDResolver repairs numeric id collisions between rows, tasks and the
// archive. Rows, tasks and archived entries share a single id space.
//
// Entries are visited in board order: row directories sorted by name, and
// inside each row the known columns in display order with task files sorted
// by name. Archived ids and the first live holder of an id keep it; every
// later holder is moved to one past the running maximum, which also counts
// the numeric card directories under tasks/.
type IDResolver struct {
	storage     *storage.Handler
	cards       *CardRepositoryImpl
	pathBuilder *PathBuilder
	logger      *logrus.Logger
}

// NewIDResolver creates a resolver
func NewIDResolver(handler *storage.Handler, cards *CardRepositoryImpl, logger *logrus.Logger) *IDResolver {
	return &IDResolver{
		storage:     handler,
		cards:       cards,
		pathBuilder: NewPathBuilder(),
		logger:      logger,
	}
}

// cardRef locates one live card on the board
type cardRef struct {
	cardType entity.CardType
	id       int
	syncID   string
	position float64
	// segments address the board entry, the last one being its name
	segments []string
	ext      string
}

func (c cardRef) title() string {
	return codec.Title(c.segments[len(c.segments)-1])
}

// Resolve rewrites duplicate ids in board, renaming card directories and
// board entries to match, and reports every reassignment.
func (r *IDResolver) Resolve(ctx context.Context, board *parsedBoard, archive *entity.ArchiveStored) ([]entity.Reassignment, error) {
	names, err := r.storage.ListDirectories(ctx, r.pathBuilder.CardsRoot())
	if err != nil {
		return nil, fmt.Errorf("failed to list card directories: %w", err)
	}

	seen := archive.IDs()
	max := board.maxID()
	if m := archive.MaxID(); m > max {
		max = m
	}

	// card directories without a board entry still hold their id
	cardDirs := make(map[string]bool, len(names))
	for _, n := range names {
		cardDirs[n] = true
		if id, err := strconv.Atoi(n); err == nil && id > max {
			max = id
		}
	}

	// sync id of the live entry holding each id
	holders := make(map[int]string)
	var report []entity.Reassignment

	// claim returns the id, board name and sync id the entry ends up with
	claim := func(ref cardRef) (int, string, string, error) {
		if _, taken := seen[ref.id]; !taken {
			seen[ref.id] = struct{}{}
			holders[ref.id] = ref.syncID
			return ref.id, ref.segments[len(ref.segments)-1], ref.syncID, r.normalize(ctx, cardDirs, ref)
		}

		winner, live := holders[ref.id]
		max++
		newName, syncID, err := r.reassign(ctx, cardDirs, ref, max, live && winner == ref.syncID)
		if err != nil {
			return 0, "", "", err
		}
		seen[max] = struct{}{}
		holders[max] = syncID
		report = append(report, entity.Reassignment{
			Type:   ref.cardType,
			OldID:  ref.id,
			NewID:  max,
			SyncID: syncID,
		})
		return max, newName, syncID, nil
	}

	root := r.pathBuilder.BoardRoot()
	for i := range board.rows {
		pr := &board.rows[i]

		id, name, syncID, err := claim(cardRef{
			cardType: entity.CardTypeRow,
			id:       pr.row.ID,
			syncID:   pr.row.SyncID,
			position: pr.row.Position,
			segments: []string{root, pr.dirName},
		})
		if err != nil {
			return nil, err
		}
		pr.row.ID = id
		pr.row.SyncID = syncID
		pr.dirName = name

		for j := range pr.tasks {
			pt := &pr.tasks[j]
			pt.task.RowID = pr.row.ID

			id, name, syncID, err := claim(cardRef{
				cardType: entity.CardTypeTask,
				id:       pt.task.ID,
				syncID:   pt.task.SyncID,
				position: pt.task.Position,
				segments: []string{root, pr.dirName, pt.column.Title, pt.fileName},
				ext:      codec.FileExtension,
			})
			if err != nil {
				return nil, err
			}
			pt.task.ID = id
			pt.task.SyncID = syncID
			pt.fileName = name
		}
	}

	return report, nil
}

// reassign moves a losing duplicate to newID and returns its new board name
// and sync id. When the winner shares the loser's sync id the entry is a
// copy: the winner's directory is duplicated and the loser gets a fresh
// sync id, so the directory the winner points at is never moved.
func (r *IDResolver) reassign(ctx context.Context, cardDirs map[string]bool, ref cardRef, newID int, copied bool) (string, string, error) {
	cardsRoot := r.pathBuilder.CardsRoot()
	variant := r.pathBuilder.CardVariantDirName(ref.id, ref.syncID)
	oldDir := r.pathBuilder.CardDirName(ref.id)
	newDir := r.pathBuilder.CardDirName(newID)

	syncID := ref.syncID
	if copied {
		syncID = entity.NewSyncID()
	}

	switch {
	case copied:
		if !cardDirs[oldDir] {
			break
		}
		if err := r.storage.CopyDirectory(ctx, cardsRoot, oldDir, newDir); err != nil {
			return "", "", fmt.Errorf("failed to copy card %d to %d: %w", ref.id, newID, err)
		}
		cardDirs[newDir] = true

	case cardDirs[variant]:
		if err := r.storage.RenameDirectory(ctx, []string{cardsRoot, variant}, newDir); err != nil {
			return "", "", fmt.Errorf("failed to move card %d to %d: %w", ref.id, newID, err)
		}
		delete(cardDirs, variant)
		cardDirs[newDir] = true

	case cardDirs[oldDir]:
		owner, err := r.cards.readMetadata(ctx, path.Join(cardsRoot, oldDir))
		if err != nil {
			return "", "", err
		}
		if owner == nil || owner.SyncID != ref.syncID {
			break
		}
		if err := r.storage.RenameDirectory(ctx, []string{cardsRoot, oldDir}, newDir); err != nil {
			return "", "", fmt.Errorf("failed to move card %d to %d: %w", ref.id, newID, err)
		}
		delete(cardDirs, oldDir)
		cardDirs[newDir] = true
	}

	var meta *entity.CardMetadata
	if cardDirs[newDir] {
		var err error
		if meta, err = r.cards.GetCardMetadata(ctx, newID); err != nil {
			return "", "", err
		}
	}
	if meta == nil {
		// nothing on disk belongs to the loser, rebuild from its board name
		meta = &entity.CardMetadata{Title: ref.title(), Type: ref.cardType}
	} else if copied {
		meta.Title = ref.title()
	}
	meta.ID = newID
	meta.SyncID = syncID
	if err := r.cards.SaveCardMetadata(ctx, meta); err != nil {
		return "", "", err
	}
	cardDirs[newDir] = true

	newName := codec.Encode(ref.title(), newID, syncID, ref.position) + ref.ext
	if err := r.storage.RenameDirectory(ctx, ref.segments, newName); err != nil {
		return "", "", fmt.Errorf("failed to rename board entry for card %d: %w", newID, err)
	}

	r.logger.WithFields(logrus.Fields{
		"type":    ref.cardType,
		"old_id":  ref.id,
		"new_id":  newID,
		"sync_id": syncID,
	}).Info("reassigned duplicate card id")

	return newName, syncID, nil
}

// normalize moves a card stored only under its sync-disambiguated directory
// back to the plain id directory
func (r *IDResolver) normalize(ctx context.Context, cardDirs map[string]bool, ref cardRef) error {
	plain := r.pathBuilder.CardDirName(ref.id)
	variant := r.pathBuilder.CardVariantDirName(ref.id, ref.syncID)
	if cardDirs[plain] || !cardDirs[variant] {
		return nil
	}

	if err := r.storage.RenameDirectory(ctx, []string{r.pathBuilder.CardsRoot(), variant}, plain); err != nil {
		return fmt.Errorf("failed to restore card directory %s: %w", variant, err)
	}
	delete(cardDirs, variant)
	cardDirs[plain] = true
	return nil
}
