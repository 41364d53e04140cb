package slug

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Write docs", "Write docs"},
		{"keeps dash dot underscore", "v1.2-beta_rc", "v1.2-beta_rc"},
		{"replaces slash", "a/b", "a_b"},
		{"collapses runs", "a//\\\\::b", "a_b"},
		{"collapses existing underscores", "a__?b", "a_b"},
		{"trims dots", "..hidden..", "hidden"},
		{"parentheses replaced", "fix (urgent)", "fix _urgent_"},
		{"unicode replaced", "café ☕", "caf_ _"},
		{"empty falls back", "", DefaultName},
		{"only dots falls back", "...", DefaultName},
		{"only symbols falls back", "???", DefaultName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeCapsLength(t *testing.T) {
	got := Sanitize(strings.Repeat("a", 250))
	if len(got) != MaxLength {
		t.Errorf("expected length %d, got %d", MaxLength, len(got))
	}
}
