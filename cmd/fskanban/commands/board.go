package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fskanban/cmd/fskanban/output"
	"fskanban/internal/application/dto"
	"fskanban/internal/infrastructure/persistence/filesystem"
)

// boardCmd represents the board command
var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Inspect and repair the board",
	Long: `Inspect and repair the board directory tree.

Examples:
  # Show the board
  fskanban board show

  # Reassign ids that a sync conflict duplicated
  fskanban board check

  # Show what normalizing the tree would change, then do it
  fskanban board diff
  fskanban board apply`,
}

// boardShowCmd renders the board
var boardShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the board",
	RunE: func(cmd *cobra.Command, args []string) error {
		board, err := container.GetBoardUseCase.Execute(getContext())
		if err != nil {
			return fmt.Errorf("failed to load board: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(board)
		}
		fmt.Print(output.RenderBoard(board))
		return nil
	},
}

// boardCheckCmd reloads the board from disk and reports id repairs
var boardCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Repair duplicate ids",
	Long: `Reload the board from disk, bypassing the cache, and reassign any
duplicate row or task ids. The first holder of an id in directory order
keeps it; archived ids are never reassigned.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repairs, err := container.CheckBoardUseCase.Execute(getContext())
		if err != nil {
			return fmt.Errorf("failed to check board: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(repairs)
		}
		printRepairs(repairs)
		return nil
	},
}

// boardDiffCmd shows what a save would change
var boardDiffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show what normalizing the tree would change",
	Long: `Show the entries that saving the board back would create and remove.

Entries appear when positions are not contiguous, a row is missing a column
directory, or stray files sit in the board tree.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := container.PlanBoardUseCase.Execute(getContext())
		if err != nil {
			return fmt.Errorf("failed to plan board: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(plan)
		}
		if plan.Empty() {
			printer.Success("Board tree is normalized")
			return nil
		}
		printPlan(plan)
		return nil
	},
}

// boardApplyCmd normalizes the tree
var boardApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Normalize the board tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := container.ApplyBoardUseCase.Execute(getContext())
		if err != nil {
			return fmt.Errorf("failed to apply board: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(plan)
		}
		printPlan(plan)
		printer.Success("Created %d and removed %d entries", len(plan.Creates), len(plan.Removes))
		return nil
	},
}

// boardInitCmd creates the data directory layout
var boardInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty board in the data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		paths := filesystem.NewPathBuilder()

		for _, dir := range []string{paths.BoardRoot(), paths.CardsRoot()} {
			if err := container.Storage.CreateDirectory(ctx, dir); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
		}
		if _, err := container.BoardService.Load(ctx); err != nil {
			return fmt.Errorf("failed to load board: %w", err)
		}

		printer.Success("Board ready in %s", cfg.Storage.DataPath)
		return nil
	},
}

func printRepairs(repairs []dto.ReassignmentDTO) {
	if len(repairs) == 0 {
		printer.Success("All ids are unique")
		return
	}

	printer.Warning("Reassigned %d duplicate id(s)", len(repairs))
	rows := make([][]string, 0, len(repairs))
	for _, r := range repairs {
		rows = append(rows, []string{r.Type, strconv.Itoa(r.OldID), strconv.Itoa(r.NewID), r.SyncID})
	}
	printer.Table([]string{"Type", "Old", "New", "Sync"}, rows)
}

func printPlan(plan *dto.PlanDTO) {
	for _, p := range plan.Creates {
		printer.Println("+ %s", p)
	}
	for _, p := range plan.Removes {
		printer.Println("- %s", p)
	}
}

func init() {
	rootCmd.AddCommand(boardCmd)

	boardCmd.AddCommand(boardShowCmd)
	boardCmd.AddCommand(boardCheckCmd)
	boardCmd.AddCommand(boardDiffCmd)
	boardCmd.AddCommand(boardApplyCmd)
	boardCmd.AddCommand(boardInitCmd)
}
