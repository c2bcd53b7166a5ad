package caption

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/careersync/careersync/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	calls               int
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.calls++
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "generated text", nil
}

func (m *MockLLMClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "{}", nil
}

func (m *MockLLMClient) GenerateJSONWithSystem(_ context.Context, _, _ string, _ llm.ModelTier) (string, error) {
	return "{}", nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Style
		wantError bool
	}{
		{name: "Exact match", input: "Official", expected: StyleOfficial},
		{name: "Case insensitive", input: "storytelling", expected: StyleStorytelling},
		{name: "Surrounding whitespace", input: "  Exciting ", expected: StyleExciting},
		{name: "Hyphenated style", input: "no-fluff", expected: StyleNoFluff},
		{name: "Unknown style", input: "Casual", wantError: true},
		{name: "Empty style", input: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style, err := ParseStyle(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, style)
		})
	}
}

func TestGenerate_TwoSequentialCalls(t *testing.T) {
	var promptsSeen []string
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			promptsSeen = append(promptsSeen, prompt)
			if len(promptsSeen) == 1 {
				return "draft caption about Go", nil
			}
			return "refined caption about Go", nil
		},
	}

	result, err := Generate(context.Background(), mockClient, "Learning Go in public", StyleExciting)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, mockClient.calls)
	assert.Equal(t, "draft caption about Go", result.Draft)
	assert.Equal(t, "refined caption about Go", result.Caption)
	assert.Equal(t, StyleExciting, result.Style)

	// First call carries the topic, second carries the draft
	assert.Contains(t, promptsSeen[0], "Learning Go in public")
	assert.Contains(t, promptsSeen[1], "draft caption about Go")
	assert.Contains(t, promptsSeen[1], "Exciting")
}

func TestGenerate_BlankTopicRefusedBeforeAnyCall(t *testing.T) {
	tests := []struct {
		name  string
		topic string
	}{
		{name: "Empty topic", topic: ""},
		{name: "Whitespace topic", topic: "   \n\t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &MockLLMClient{}
			result, err := Generate(context.Background(), mockClient, tt.topic, StyleOfficial)

			assert.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, 0, mockClient.calls, "no request may be issued for blank input")

			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "topic", validationErr.Field)
		})
	}
}

func TestGenerate_DraftFailure(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}

	result, err := Generate(context.Background(), mockClient, "topic", StyleOfficial)

	assert.Nil(t, result)
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Error(), "quota exceeded")
	assert.Equal(t, 1, mockClient.calls, "refinement must not run after a draft failure")
}

func TestGenerate_RefineFailure(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			if strings.Contains(prompt, "Refine") {
				return "", errors.New("service unavailable")
			}
			return "a draft", nil
		},
	}

	result, err := Generate(context.Background(), mockClient, "topic", StyleNoFluff)

	assert.Nil(t, result)
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 2, mockClient.calls)
}

func TestGenerate_EmptyDraftTreatedAsError(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "   ", nil
		},
	}

	result, err := Generate(context.Background(), mockClient, "topic", StyleOfficial)

	assert.Nil(t, result)
	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)
}
