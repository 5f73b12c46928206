package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and trims",
			input:    "  Infinity Edge  ",
			expected: "infinity edge",
		},
		{
			name:     "drops periods",
			input:    "B.F. Sword",
			expected: "bf sword",
		},
		{
			name:     "drops apostrophes",
			input:    "Guinsoo's Rageblade",
			expected: "guinsoos rageblade",
		},
		{
			name:     "folds curly apostrophes",
			input:    "Guinsoo’s Rageblade",
			expected: "guinsoos rageblade",
		},
		{
			name:     "folds ampersand to and",
			input:    "Zeke & Herald",
			expected: "zeke and herald",
		},
		{
			name:     "collapses whitespace",
			input:    "Giant   Slayer",
			expected: "giant slayer",
		},
		{
			name:     "empty input",
			input:    "   ",
			expected: "",
		},
		{
			name:     "punctuation only",
			input:    "????",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_VariantsConverge(t *testing.T) {
	variants := []string{"B.F. Sword", "BF Sword", "bf sword", "B.F. SWORD"}
	for _, v := range variants {
		assert.Equal(t, "bf sword", Normalize(v), "variant %q", v)
	}
}
