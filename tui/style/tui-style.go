package style

import (
	"github.com/charmbracelet/lipgloss"

	"fskanban/internal/infrastructure/config"
)

const mutedColor = "240"

var (
	RowTitleStyle     lipgloss.Style
	CellStyle         lipgloss.Style
	FocusedCellStyle  lipgloss.Style
	CellTitleStyle    lipgloss.Style
	TaskStyle         lipgloss.Style
	SelectedTaskStyle lipgloss.Style
	EmptyStyle        lipgloss.Style
	StatusStyle       lipgloss.Style
	HelpStyle         lipgloss.Style
)

func init() {
	apply("rounded", "14")
}

// InitStyles initializes the styles from config
func InitStyles(cfg *config.Config) {
	apply(cfg.TUI.BorderStyle, cfg.TUI.AccentColor)
}

func apply(borderName, accent string) {
	border := getBorder(borderName)
	accentColor := lipgloss.Color(accent)

	RowTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor)

	CellStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Border(border).
		BorderForeground(lipgloss.Color(mutedColor))

	FocusedCellStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Border(border).
		BorderForeground(accentColor)

	CellTitleStyle = lipgloss.NewStyle().Bold(true)

	TaskStyle = lipgloss.NewStyle()

	SelectedTaskStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(accentColor)

	EmptyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(mutedColor)).
		Italic(true)

	StatusStyle = lipgloss.NewStyle().
		Foreground(accentColor).
		Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
		Padding(0, 1)
}

// getBorder returns the border style based on the name
func getBorder(name string) lipgloss.Border {
	switch name {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}
