package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		key       string
		wantError bool
		contains  string
	}{
		{
			name:     "Caption draft prompt",
			filename: "caption.json",
			key:      "draft",
			contains: "{{.Topic}}",
		},
		{
			name:     "Screening match prompt",
			filename: "screening.json",
			key:      "match",
			contains: "match_percentage",
		},
		{
			name:     "Insight system prompt",
			filename: "insight.json",
			key:      "system",
			contains: "Career Intelligence",
		},
		{
			name:      "Unknown key",
			filename:  "caption.json",
			key:       "nonexistent",
			wantError: true,
		},
		{
			name:      "Unknown file",
			filename:  "missing.json",
			key:       "draft",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := Get(tt.filename, tt.key)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestFormat(t *testing.T) {
	template := "Topic: {{.Topic}}\nStyle: {{.Style}}"
	result := Format(template, map[string]string{
		"Topic": "shipping a side project",
		"Style": "Storytelling",
	})

	assert.Equal(t, "Topic: shipping a side project\nStyle: Storytelling", result)
	assert.False(t, strings.Contains(result, "{{."))
}

func TestFormat_MissingKeyLeftIntact(t *testing.T) {
	result := Format("Hello {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Name}}", result)
}

func TestList(t *testing.T) {
	keys, err := List("screening.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"cover-note", "improvements", "match", "missing-skills"}, keys)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("caption.json", "does-not-exist")
	})
}
