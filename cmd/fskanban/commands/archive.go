package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"fskanban/cmd/fskanban/output"
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect archived rows",
	Long: `Inspect rows parked in archive.jsonl.

Use 'fskanban row archive <row-id>' to archive a row and
'fskanban row restore <row-id>' to bring it back.`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived rows, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := container.ListArchiveUseCase.Execute(getContext())
		if err != nil {
			return fmt.Errorf("failed to list archive: %w", err)
		}

		switch formatter.Format() {
		case output.FormatJSON, output.FormatYAML:
			return formatter.Print(rows)
		case output.FormatFZF:
			lines := make([]string, 0, len(rows))
			for _, r := range rows {
				lines = append(lines, fmt.Sprintf("%d\t%s", r.ID, r.Title))
			}
			return formatter.Lines(lines)
		}

		if len(rows) == 0 {
			printer.Info("Archive is empty")
			return nil
		}

		table := make([][]string, 0, len(rows))
		for _, r := range rows {
			count := 0
			for _, c := range r.Columns {
				count += len(c.Tasks)
			}
			table = append(table, []string{strconv.Itoa(r.ID), r.Title, strconv.Itoa(count)})
		}
		printer.Table([]string{"ID", "Title", "Tasks"}, table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveListCmd)
}
