package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fskanban/cmd/fskanban/output"
	"fskanban/internal/application/dto"
	"fskanban/internal/domain/entity"
)

// taskCmd represents the task command
var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
	Long: `Manage tasks - create, move, rename, delete, and query them.

A task lives in one cell of the board: a (row, column) pair. Its title and
markdown body are stored in tasks/<id>/.

Examples:
  # Add a task to row 1 (To Do by default)
  fskanban task create 1 "Fix login bug"

  # Move task 2 to In Progress, at the top of the cell
  fskanban task move 2 "In Progress" --index 0

  # List tasks in a column
  fskanban task list --column Done

  # Fuzzy search titles, pick one with fzf and show it
  fskanban task search login --output fzf | fzf | fskanban task show`,
}

var taskCreateCmd = &cobra.Command{
	Use:   "create <row-id> <title>",
	Short: "Add a task to the end of a cell",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rowID, err := parseID("row", args[0])
		if err != nil {
			return err
		}
		columnName, _ := cmd.Flags().GetString("column")
		column, err := parseColumn(columnName)
		if err != nil {
			return err
		}

		_, task, err := container.BoardService.CreateTask(getContext(), rowID, column.ID, args[1])
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(dto.CardDTO{ID: task.ID, Title: args[1], Type: "task", SyncID: task.SyncID})
		}
		printer.Success("Created task #%d %s in %s", task.ID, args[1], column.Title)
		return nil
	},
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <task-id> <column>",
	Short: "Move a task to another cell",
	Long: `Move a task to a column, optionally in another row.

The task is placed before the task currently at --index in the target cell.
The default index of -1 appends it.`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: moveArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := getContext()
		taskID, err := parseID("task", args[0])
		if err != nil {
			return err
		}
		column, err := parseColumn(args[1])
		if err != nil {
			return err
		}
		index, _ := cmd.Flags().GetInt("index")

		rowID, _ := cmd.Flags().GetInt("row")
		if rowID == 0 {
			c, err := container.BoardService.Load(ctx)
			if err != nil {
				return err
			}
			i := c.FindTask(taskID)
			if i < 0 {
				return fmt.Errorf("task %d: %w", taskID, entity.ErrTaskNotFound)
			}
			rowID = c.Tasks[i].RowID
		}

		if _, err := container.BoardService.MoveTask(ctx, taskID, column.ID, rowID, index); err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}
		printer.Success("Moved task #%d to %s", taskID, column.Title)
		return nil
	},
}

var taskRenameCmd = &cobra.Command{
	Use:   "rename <task-id> <title>",
	Short: "Change a task title",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseID("task", args[0])
		if err != nil {
			return err
		}
		return renameCard(taskID, args[1])
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task and its card",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		args, err := resolveArgs(args, 1)
		if err != nil {
			return err
		}
		taskID, err := parseID("task", args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm(fmt.Sprintf("Delete task #%d", taskID)) {
			printer.Info("Delete cancelled")
			return nil
		}

		if _, err := container.BoardService.DeleteTask(getContext(), taskID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		printer.Success("Deleted task #%d", taskID)
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <task-id>",
	Short: "Show a task and its card body",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		args, err := resolveArgs(args, 1)
		if err != nil {
			return err
		}
		taskID, err := parseID("task", args[0])
		if err != nil {
			return err
		}

		task, err := container.GetTaskUseCase.Execute(getContext(), taskID)
		if err != nil {
			return err
		}

		switch formatter.Format() {
		case output.FormatJSON, output.FormatYAML:
			return formatter.Print(task)
		case output.FormatPath:
			return formatter.Lines([]string{task.FilePath})
		}

		printer.Header("#%d %s", task.ID, task.Title)
		printer.Subtle("%s / %s", task.RowTitle, task.ColumnName)
		printer.Subtle("%s", task.FilePath)
		if task.Content != "" {
			printer.Println("")
			printer.Println("%s", task.Content)
		}
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks row by row, column by column.

Output formats:
  text - Human-readable table (default)
  json - JSON output for scripting
  yaml - YAML output
  fzf  - Task ID, title and cell (tab-separated)
  path - Content file paths with titles (format: path :: title)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := taskFilter(cmd)
		if err != nil {
			return err
		}

		tasks, err := container.ListTasksUseCase.Execute(getContext(), filter)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		return printTasks(tasks, filter.WithPreview)
	},
}

var taskSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search task titles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := taskFilter(cmd)
		if err != nil {
			return err
		}

		results, err := container.SearchTasksUseCase.Execute(getContext(), args[0], filter)
		if err != nil {
			return fmt.Errorf("failed to search tasks: %w", err)
		}

		if formatter.Structured() {
			return formatter.Print(results)
		}
		tasks := make([]dto.TaskDTO, 0, len(results))
		for _, r := range results {
			tasks = append(tasks, r.TaskDTO)
		}
		return printTasks(tasks, filter.WithPreview)
	},
}

func taskFilter(cmd *cobra.Command) (dto.TaskFilter, error) {
	var filter dto.TaskFilter
	filter.RowID, _ = cmd.Flags().GetInt("row")
	filter.WithPreview, _ = cmd.Flags().GetBool("preview")

	if name, _ := cmd.Flags().GetString("column"); name != "" {
		column, err := parseColumn(name)
		if err != nil {
			return filter, err
		}
		filter.ColumnName = column.Title
	}
	return filter, nil
}

func printTasks(tasks []dto.TaskDTO, preview bool) error {
	switch formatter.Format() {
	case output.FormatJSON, output.FormatYAML:
		return formatter.Print(tasks)
	case output.FormatFZF:
		lines := make([]string, 0, len(tasks))
		for _, t := range tasks {
			lines = append(lines, fmt.Sprintf("%d\t%s\t%s/%s", t.ID, t.Title, t.RowTitle, t.ColumnName))
		}
		return formatter.Lines(lines)
	case output.FormatPath:
		lines := make([]string, 0, len(tasks))
		for _, t := range tasks {
			lines = append(lines, fmt.Sprintf("%s :: %s", t.FilePath, t.Title))
		}
		return formatter.Lines(lines)
	}

	if len(tasks) == 0 {
		printer.Info("No tasks found")
		return nil
	}

	headers := []string{"ID", "Title", "Row", "Column"}
	if preview {
		headers = append(headers, "Preview")
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		row := []string{strconv.Itoa(t.ID), t.Title, t.RowTitle, t.ColumnName}
		if preview {
			row = append(row, t.Preview)
		}
		rows = append(rows, row)
	}
	printer.Table(headers, rows)
	return nil
}

func init() {
	rootCmd.AddCommand(taskCmd)

	taskCmd.AddCommand(taskCreateCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskRenameCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskSearchCmd)

	taskCreateCmd.Flags().String("column", "To Do", "Column to add the task to")
	taskCreateCmd.RegisterFlagCompletionFunc("column", columnNames)

	taskMoveCmd.Flags().Int("row", 0, "Target row (default: the task's current row)")
	taskMoveCmd.Flags().Int("index", -1, "0-based position in the target cell (-1 appends)")

	taskDeleteCmd.Flags().BoolP("force", "f", false, "Delete without confirmation")

	for _, cmd := range []*cobra.Command{taskListCmd, taskSearchCmd} {
		cmd.Flags().Int("row", 0, "Only tasks in this row")
		cmd.Flags().String("column", "", "Only tasks in this column")
		cmd.Flags().Bool("preview", false, "Include the first heading and paragraph of each card")
		cmd.RegisterFlagCompletionFunc("column", columnNames)
	}
}
