package serialization

import (
	"strings"
	"testing"
)

func TestParseFrontmatter(t *testing.T) {
	data := []byte("---\ntitle: Write docs\npriority: 2\n---\n\n# Heading\n\nBody text\n")

	doc, err := ParseFrontmatter(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := doc.Frontmatter["title"]; got != "Write docs" {
		t.Errorf("expected title %q, got %v", "Write docs", got)
	}
	if got := doc.Frontmatter["priority"]; got != 2 {
		t.Errorf("expected priority 2, got %v", got)
	}
	if doc.Content != "# Heading\n\nBody text" {
		t.Errorf("unexpected content %q", doc.Content)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	doc, err := ParseFrontmatter([]byte("just a body\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Content != "just a body" {
		t.Errorf("unexpected content %q", doc.Content)
	}
	if len(doc.Frontmatter) != 0 {
		t.Errorf("expected no frontmatter, got %v", doc.Frontmatter)
	}
}

func TestParseCRLF(t *testing.T) {
	doc, err := ParseFrontmatter([]byte("---\r\ntitle: Card\r\n---\r\nBody\r\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Frontmatter["title"] != "Card" || doc.Content != "Body" {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestParseEmptyHeader(t *testing.T) {
	doc, err := ParseFrontmatter([]byte("---\n---\nBody\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Frontmatter) != 0 || doc.Content != "Body" {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestParseUnterminated(t *testing.T) {
	if _, err := ParseFrontmatter([]byte("---\ntitle: x\n")); err == nil {
		t.Fatal("expected error for unterminated frontmatter")
	}
}

func TestSerializeThenParse(t *testing.T) {
	data, err := SerializeFrontmatter(map[string]any{"title": "Card"}, "Some *markdown*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(data), "---\ntitle: Card\n---\n") {
		t.Errorf("unexpected output %q", string(data))
	}

	doc, err := ParseFrontmatter(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Frontmatter["title"] != "Card" || doc.Content != "Some *markdown*" {
		t.Errorf("unexpected document %+v", doc)
	}
}

func TestSummarize(t *testing.T) {
	body := "# Plan sprint\n\nCollect the\nopen tickets.\n\nSecond paragraph."

	s := Summarize(body)
	if s.Heading != "Plan sprint" {
		t.Errorf("expected heading %q, got %q", "Plan sprint", s.Heading)
	}
	if s.Preview != "Collect the open tickets." {
		t.Errorf("unexpected preview %q", s.Preview)
	}
}

func TestSummarizeTruncates(t *testing.T) {
	s := Summarize(strings.Repeat("word ", 60))
	if len([]rune(s.Preview)) != previewLength {
		t.Errorf("expected preview of %d runes, got %d", previewLength, len([]rune(s.Preview)))
	}
	if !strings.HasSuffix(s.Preview, "...") {
		t.Errorf("expected ellipsis, got %q", s.Preview)
	}
}
