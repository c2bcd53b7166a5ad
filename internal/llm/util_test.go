package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Plain JSON untouched",
			input:    `{"match_percentage": 72}`,
			expected: `{"match_percentage": 72}`,
		},
		{
			name:     "JSON wrapped in json block",
			input:    "```json\n{\"match_percentage\": 72}\n```",
			expected: `{"match_percentage": 72}`,
		},
		{
			name:     "JSON wrapped in bare block",
			input:    "```\n{\"missing_skills\": []}\n```",
			expected: `{"missing_skills": []}`,
		},
		{
			name:     "Block with language identifier",
			input:    "```javascript\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "Surrounding whitespace trimmed",
			input:    "  \n {\"a\": 1} \n ",
			expected: `{"a": 1}`,
		},
		{
			name:     "Empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
