package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fskanban/internal/application/dto"
)

// rowCmd represents the row command
var rowCmd = &cobra.Command{
	Use:   "row",
	Short: "Manage rows",
	Long: `Manage the rows (swimlanes) of the board.

Each row holds one cell per column. Archiving a row parks it and its tasks
in archive.jsonl; restoring puts them back at the top of the board.

Examples:
  fskanban row create "Backend"
  fskanban row move 4 0
  fskanban row rename 4 "Platform"
  fskanban row archive 4
  fskanban row restore 4`,
}

var rowCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Add a row at the bottom of the board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()

		_, row, err := container.BoardService.CreateRow(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to create row: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(dto.CardDTO{ID: row.ID, Title: args[0], Type: "row", SyncID: row.SyncID})
		}
		printer.Success("Created row #%d %s", row.ID, args[0])
		return nil
	},
}

var rowMoveCmd = &cobra.Command{
	Use:   "move <row-id> <index>",
	Short: "Move a row to a 0-based index",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rowID, err := parseID("row", args[0])
		if err != nil {
			return err
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[1])
		}

		if _, err := container.BoardService.MoveRow(getContext(), rowID, index); err != nil {
			return fmt.Errorf("failed to move row: %w", err)
		}
		printer.Success("Moved row #%d to %d", rowID, index)
		return nil
	},
}

var rowRenameCmd = &cobra.Command{
	Use:   "rename <row-id> <title>",
	Short: "Change a row title",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rowID, err := parseID("row", args[0])
		if err != nil {
			return err
		}
		return renameCard(rowID, args[1])
	},
}

var rowArchiveCmd = &cobra.Command{
	Use:   "archive <row-id>",
	Short: "Move a row and its tasks to the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		rowID, err := parseID("row", args[0])
		if err != nil {
			return err
		}

		_, archived, err := container.BoardService.ArchiveRow(ctx, rowID)
		if err != nil {
			return fmt.Errorf("failed to archive row: %w", err)
		}

		if formatter.Structured() {
			titles, err := container.BoardService.Titles(ctx, append([]int{rowID}, archived.TaskIDs()...))
			if err != nil {
				return err
			}
			return formatter.Print(dto.ArchivedRowToDTO(*archived, titles))
		}
		printer.Success("Archived row #%d with %d task(s)", rowID, len(archived.TaskIDs()))
		return nil
	},
}

var rowRestoreCmd = &cobra.Command{
	Use:   "restore <row-id>",
	Short: "Bring an archived row back to the top of the board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rowID, err := parseID("row", args[0])
		if err != nil {
			return err
		}

		if _, err := container.BoardService.RestoreRow(getContext(), rowID); err != nil {
			return fmt.Errorf("failed to restore row: %w", err)
		}
		printer.Success("Restored row #%d", rowID)
		return nil
	},
}

var rowDeleteCmd = &cobra.Command{
	Use:   "delete <row-id>",
	Short: "Delete a row, its tasks and their cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rowID, err := parseID("row", args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm(fmt.Sprintf("Delete row #%d and every task in it", rowID)) {
			printer.Info("Delete cancelled")
			return nil
		}

		if _, err := container.BoardService.DeleteRow(getContext(), rowID); err != nil {
			return fmt.Errorf("failed to delete row: %w", err)
		}
		printer.Success("Deleted row #%d", rowID)
		return nil
	},
}

// renameCard retitles a row or task
func renameCard(id int, title string) error {
	meta, err := container.BoardService.RenameCard(getContext(), id, title)
	if err != nil {
		return fmt.Errorf("failed to rename card: %w", err)
	}

	if formatter.Structured() {
		return formatter.Print(dto.CardToDTO(meta))
	}
	printer.Success("Renamed %s #%d to %s", meta.Type, meta.ID, meta.Title)
	return nil
}

// confirm asks for an explicit yes on stdin
func confirm(action string) bool {
	printer.Warning("%s?", action)
	fmt.Print("Type 'yes' to confirm: ")

	var confirmation string
	fmt.Scanln(&confirmation)
	return confirmation == "yes"
}

func init() {
	rootCmd.AddCommand(rowCmd)

	rowCmd.AddCommand(rowCreateCmd)
	rowCmd.AddCommand(rowMoveCmd)
	rowCmd.AddCommand(rowRenameCmd)
	rowCmd.AddCommand(rowArchiveCmd)
	rowCmd.AddCommand(rowRestoreCmd)
	rowCmd.AddCommand(rowDeleteCmd)

	rowDeleteCmd.Flags().BoolP("force", "f", false, "Delete without confirmation")
}
