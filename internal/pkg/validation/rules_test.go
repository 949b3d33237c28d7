package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidComment(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"plain", "useful notes", true},
		{"empty", "", false},
		{"whitespace only", "   \n\t ", false},
		{"exactly max", strings.Repeat("a", 2000), true},
		{"over max", strings.Repeat("a", 2001), false},
		{"max after trim", "  " + strings.Repeat("a", 2000) + "  ", true},
		{"multibyte counted as characters", strings.Repeat("ü", 2000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidComment(tt.content))
		})
	}
}

func TestValidReason(t *testing.T) {
	assert.True(t, ValidReason("spam"))
	assert.False(t, ValidReason(" "))
	assert.True(t, ValidReason(strings.Repeat("r", 255)))
	assert.False(t, ValidReason(strings.Repeat("r", 256)))
}

func TestValidRating(t *testing.T) {
	for v := 1; v <= 5; v++ {
		assert.True(t, ValidRating(v), v)
	}
	assert.False(t, ValidRating(0))
	assert.False(t, ValidRating(6))
	assert.False(t, ValidRating(-3))
}

func TestValidResourceID(t *testing.T) {
	assert.True(t, ValidResourceID("3f1c2a9e-4b7d-4c1e-9a2b-0d5e6f7a8b9c"))
	assert.False(t, ValidResourceID("not-a-uuid"))
	assert.False(t, ValidResourceID(""))
	assert.False(t, ValidResourceID("3f1c2a9e4b7d4c1e9a2b0d5e6f7a8b9c00"))
}
