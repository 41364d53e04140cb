package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

// tone is how one kind of status message looks
type tone struct {
	mark   string
	style  lipgloss.Style
	chatty bool // dropped by --quiet
}

var (
	toneSuccess = tone{mark: "✓ ", style: bold("10")}
	toneError   = tone{mark: "✗ ", style: bold("9")}
	toneWarning = tone{mark: "⚠ ", style: bold("11")}
	toneInfo    = tone{mark: "ℹ ", style: bold("12"), chatty: true}
	toneHeader  = tone{style: bold("14").Underline(true)}
	toneSubtle  = tone{style: lipgloss.NewStyle().Foreground(lipgloss.Color("8")), chatty: true}

	headerCell = lipgloss.NewStyle().Bold(true)
)

func bold(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// Printer writes human-facing status lines and tables
type Printer struct {
	w     io.Writer
	quiet bool
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// DefaultPrinter writes to stdout
func DefaultPrinter() *Printer {
	return NewPrinter(os.Stdout)
}

// SetQuiet drops Info and Subtle lines
func (p *Printer) SetQuiet(quiet bool) {
	p.quiet = quiet
}

func (p *Printer) Success(format string, args ...any) { p.emit(toneSuccess, format, args) }
func (p *Printer) Error(format string, args ...any) { p.emit(toneError, format, args) }
func (p *Printer) Warning(format string, args ...any) { p.emit(toneWarning, format, args) }
func (p *Printer) Info(format string, args ...any) { p.emit(toneInfo, format, args) }
func (p *Printer) Header(format string, args ...any) { p.emit(toneHeader, format, args) }
func (p *Printer) Subtle(format string, args ...any) { p.emit(toneSubtle, format, args) }

// Println writes an unstyled line
func (p *Printer) Println(format string, args ...any) {
	fmt.Fprintln(p.w, fmt.Sprintf(format, args...))
}

func (p *Printer) emit(t tone, format string, args []any) {
	if t.chatty && p.quiet {
		return
	}
	fmt.Fprintln(p.w, t.style.Render(t.mark+fmt.Sprintf(format, args...)))
}

// Table writes rows under a bold header, each column padded to its widest
// cell. Nothing is written without rows.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	widths := columnWidths(headers, rows)
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("-", w)
	}

	fmt.Fprintln(p.w, tableLine(headers, widths, headerCell.Render))
	fmt.Fprintln(p.w, toneSubtle.style.Render(strings.Join(rules, columnGap)))
	for _, row := range rows {
		fmt.Fprintln(p.w, tableLine(row, widths, nil))
	}
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for _, cells := range append([][]string{headers}, rows...) {
		for i := range widths {
			if i < len(cells) {
				widths[i] = max(widths[i], lipgloss.Width(cells[i]))
			}
		}
	}
	return widths
}

// tableLine pads each cell to its column width. Missing cells are blank.
func tableLine(cells []string, widths []int, render func(...string) string) string {
	var b strings.Builder
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i > 0 {
			b.WriteString(columnGap)
		}
		if render != nil {
			b.WriteString(render(cell))
		} else {
			b.WriteString(cell)
		}
		if pad := w - lipgloss.Width(cell); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return strings.TrimRight(b.String(), " ")
}
