package serialization

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const yamlDelimiter = "---"

// FrontmatterDocument is a card document split into YAML header and body
type FrontmatterDocument struct {
	Frontmatter map[string]any
	Content     string
}

// ParseFrontmatter splits a card document into its YAML header and markdown
// body. A document that does not open with --- is all body.
func ParseFrontmatter(data []byte) (*FrontmatterDocument, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	doc := &FrontmatterDocument{Frontmatter: make(map[string]any)}

	head, body, found, err := splitFrontmatter(text)
	if err != nil {
		return nil, err
	}
	if !found {
		doc.Content = strings.TrimSpace(text)
		return doc, nil
	}

	if strings.TrimSpace(head) != "" {
		if err := yaml.Unmarshal([]byte(head), &doc.Frontmatter); err != nil {
			return nil, fmt.Errorf("failed to parse YAML frontmatter: %w", err)
		}
		if doc.Frontmatter == nil {
			doc.Frontmatter = make(map[string]any)
		}
	}
	doc.Content = strings.TrimSpace(body)

	return doc, nil
}

// splitFrontmatter returns the text between the opening and closing
// delimiter lines and everything after the closing one
func splitFrontmatter(text string) (head, body string, found bool, err error) {
	first, rest, _ := strings.Cut(text, "\n")
	if strings.TrimSpace(first) != yamlDelimiter {
		return "", "", false, nil
	}

	offset := 0
	for _, line := range strings.SplitAfter(rest, "\n") {
		if strings.TrimSpace(line) == yamlDelimiter {
			return rest[:offset], rest[offset+len(line):], true, nil
		}
		offset += len(line)
	}
	return "", "", false, fmt.Errorf("unterminated YAML frontmatter")
}

// SerializeFrontmatter renders a header and body back into a card document.
// The delimiters are always written so the header survives editors that
// add one later.
func SerializeFrontmatter(frontmatter map[string]any, content string) ([]byte, error) {
	var b strings.Builder
	b.WriteString(yamlDelimiter + "\n")

	if len(frontmatter) > 0 {
		head, err := yaml.Marshal(frontmatter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
		}
		b.Write(head)
	}
	b.WriteString(yamlDelimiter + "\n")

	if content != "" {
		b.WriteString(content)
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}
