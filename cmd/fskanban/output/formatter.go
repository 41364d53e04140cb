package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how command results are written
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatFZF  Format = "fzf"
	FormatPath Format = "path"
)

// formatNames maps --format values, aliases included, to formats
var formatNames = map[string]Format{
	"":     FormatText,
	"text": FormatText,
	"json": FormatJSON,
	"yaml": FormatYAML,
	"yml":  FormatYAML,
	"fzf":  FormatFZF,
	"path": FormatPath,
}

type encodeFunc func(w io.Writer, data any) error

// encoders for formats with a document form. fzf and path print lines
// through Lines and fall back to text for anything else.
var encoders = map[Format]encodeFunc{
	FormatJSON: encodeJSON,
	FormatYAML: encodeYAML,
	FormatText: encodeText,
	FormatFZF:  encodeText,
	FormatPath: encodeText,
}

// Formatter writes command results in the format chosen with --format
type Formatter struct {
	format Format
	w      io.Writer
}

// NewFormatter creates a formatter writing to w
func NewFormatter(format Format, w io.Writer) *Formatter {
	return &Formatter{format: format, w: w}
}

func (f *Formatter) Format() Format {
	return f.format
}

// Structured reports whether output is meant for other programs
func (f *Formatter) Structured() bool {
	switch f.format {
	case FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Print encodes data as one document
func (f *Formatter) Print(data any) error {
	encode, ok := encoders[f.format]
	if !ok {
		return fmt.Errorf("unsupported output format: %s", f.format)
	}
	return encode(f.w, data)
}

// Lines writes each entry on its own line
func (f *Formatter) Lines(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	_, err := io.WriteString(f.w, strings.Join(lines, "\n")+"\n")
	return err
}

func encodeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func encodeYAML(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

func encodeText(w io.Writer, data any) error {
	if s, ok := data.(fmt.Stringer); ok {
		data = s.String()
	}
	_, err := fmt.Fprintln(w, data)
	return err
}

// ParseFormat resolves a --format value
func ParseFormat(s string) (Format, error) {
	if format, ok := formatNames[strings.ToLower(s)]; ok {
		return format, nil
	}

	names := make([]string, 0, len(formatNames))
	for name, format := range formatNames {
		if name == string(format) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return FormatText, fmt.Errorf("invalid format %q: must be one of %s", s, strings.Join(names, ", "))
}
