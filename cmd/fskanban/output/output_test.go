package output

import (
	"bytes"
	"strings"
	"testing"

	"fskanban/internal/application/dto"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"fzf", FormatFZF, false},
		{"path", FormatPath, false},
		{"xml", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestFormatterPrint(t *testing.T) {
	data := dto.ReassignmentDTO{Type: "task", OldID: 3, NewID: 4, SyncID: "d"}

	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "{\n  \"type\": \"task\",\n  \"old_id\": 3,\n  \"new_id\": 4,\n  \"sync_id\": \"d\"\n}\n"},
		{FormatYAML, "type: task\nold_id: 3\nnew_id: 4\nsync_id: d\n"},
		{FormatText, "hello\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			f := NewFormatter(tt.format, &buf)

			var err error
			if tt.format == FormatText {
				err = f.Print("hello")
			} else {
				err = f.Print(data)
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatterLines(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatFZF, &buf)

	if f.Structured() {
		t.Error("fzf output is not structured")
	}
	if err := f.Lines([]string{"1\ta", "2\tb"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "1\ta\n2\tb\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestPrinterTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Table([]string{"ID", "Title"}, [][]string{{"1", "Backend"}, {"12", "UI"}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %q", buf.String())
	}
	if !strings.Contains(lines[2], "1   Backend") || !strings.Contains(lines[3], "12  UI") {
		t.Errorf("columns are not aligned: %q", buf.String())
	}
}

func TestPrinterQuiet(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.SetQuiet(true)

	p.Info("hidden")
	p.Subtle("hidden")
	p.Success("shown")

	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRenderBoard(t *testing.T) {
	board := &dto.BoardDTO{
		Rows: []dto.RowDTO{{
			ID:    1,
			Title: "Backend",
			Cells: []dto.CellDTO{
				{ColumnID: 1, ColumnName: "To Do", Tasks: []dto.TaskDTO{{ID: 2, Title: "Write docs"}}},
				{ColumnID: 2, ColumnName: "In Progress", Tasks: []dto.TaskDTO{}},
				{ColumnID: 3, ColumnName: "Done", Tasks: []dto.TaskDTO{}},
			},
		}},
	}

	out := RenderBoard(board)
	for _, want := range []string{"Backend #1", "To Do (1)", "In Progress (0)", "#2 Write docs"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in\n%s", want, out)
		}
	}

	if out := RenderBoard(&dto.BoardDTO{}); !strings.Contains(out, "empty") {
		t.Errorf("unexpected empty board output %q", out)
	}
}
