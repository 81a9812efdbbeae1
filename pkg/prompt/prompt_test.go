package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"yes word", "yes\n", false, true},
		{"no", "n\n", true, false},
		{"no word", "no\n", true, false},
		{"empty takes default no", "\n", false, false},
		{"empty takes default yes", "\n", true, true},
		{"garbage takes default", "maybe\n", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			p := NewWith(strings.NewReader(tt.input), &out)
			assert.Equal(t, tt.want, p.Confirm("continue?", tt.defaultYes))
			assert.Contains(t, out.String(), "continue?")
		})
	}
}

func TestChoice(t *testing.T) {
	options := []string{"Overwrite", "Backup", "Cancel"}

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"first option", "1\n", 0},
		{"last option", "3\n", 2},
		{"empty takes default", "\n", 2},
		{"out of range reprompts", "7\n2\n", 1},
		{"non numeric reprompts", "abc\n1\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			p := NewWith(strings.NewReader(tt.input), &out)
			got := p.Choice("What now?", options, 2)
			assert.Equal(t, tt.want, got)
		})
	}
}
