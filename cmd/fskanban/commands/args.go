package commands

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"fskanban/internal/domain/entity"
)

const contentFileName = "content.md"

var (
	multiSpaceRE = regexp.MustCompile(`\s{2,}`)
	cardIDLikeRE = regexp.MustCompile(`^#?\d+$`)
)

// parseID reads a card id, with or without a leading #. A card content
// path as printed by --output path is accepted too.
func parseID(kind, s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, contentFileName) {
		s = filepath.Base(filepath.Dir(s))
	}
	id, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, s)
	}
	return id, nil
}

// parseColumn accepts a column id or a case-insensitive column title
func parseColumn(s string) (entity.Column, error) {
	if id, err := strconv.Atoi(s); err == nil {
		if col, ok := entity.ColumnByID(id); ok {
			return col, nil
		}
	}
	for _, col := range entity.DefaultColumns() {
		if strings.EqualFold(col.Title, s) || strings.EqualFold(strings.ReplaceAll(col.Title, " ", ""), s) {
			return col, nil
		}
	}

	titles := make([]string, 0, 3)
	for _, col := range entity.DefaultColumns() {
		titles = append(titles, fmt.Sprintf("%q", col.Title))
	}
	return entity.Column{}, fmt.Errorf("unknown column %q: must be one of %s", s, strings.Join(titles, ", "))
}

// resolveArgs fills missing leading arguments from piped stdin, so that
// `fskanban task list -o fzf | fzf | fskanban task show` works
func resolveArgs(args []string, expected int) ([]string, error) {
	if len(args) >= expected {
		return args, nil
	}

	pipedArgs, err := readPipedArgs(os.Stdin, expected)
	if err != nil {
		return nil, err
	}

	needed := expected - len(args)
	available := len(args) + len(pipedArgs)
	if len(pipedArgs) < needed {
		return nil, fmt.Errorf("accepts %d arg(s), received %d", expected, available)
	}

	resolved := append([]string{}, pipedArgs[:needed]...)
	resolved = append(resolved, args...)
	return resolved, nil
}

func readPipedArgs(in *os.File, expected int) ([]string, error) {
	stat, err := in.Stat()
	if err != nil {
		return nil, err
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, nil
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}

	return extractArgsFromInput(data, expected), nil
}

// extractArgsFromInput picks the line of piped input that looks most like
// command arguments
func extractArgsFromInput(data []byte, expected int) []string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	bestScore := -1
	var best []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens, score := parsePipedLine(line, expected)
		if len(tokens) < expected {
			continue
		}

		if score > bestScore {
			bestScore = score
			best = tokens
		}
	}

	return best
}

func parsePipedLine(line string, expected int) ([]string, int) {
	if strings.Contains(line, "\t") {
		return splitFields(line, func(r rune) bool { return r == '\t' }), 3
	}
	if strings.Contains(line, " :: ") {
		return strings.Split(line, " :: "), 3
	}
	if multiSpaceRE.MatchString(line) {
		return multiSpaceRE.Split(line, -1), 2
	}

	fields := strings.Fields(line)
	if expected == 1 && len(fields) > 1 {
		if cardIDLikeRE.MatchString(fields[0]) {
			return []string{fields[0]}, 2
		}
		return []string{line}, 1
	}

	return fields, 1
}

func splitFields(input string, split func(rune) bool) []string {
	fields := strings.FieldsFunc(input, split)
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if field == "" {
			continue
		}
		out = append(out, field)
	}
	return out
}
