// Package caption generates LinkedIn captions through a two-step LLM chain:
// an initial draft from the topic, then a style-matching refinement pass.
package caption

import (
	"context"
	"strings"

	"github.com/careersync/careersync/internal/llm"
	"github.com/careersync/careersync/internal/prompts"
)

// Style selects the voice used for drafting and refinement.
type Style string

// Supported caption styles.
const (
	StyleOfficial     Style = "Official"
	StyleExciting     Style = "Exciting"
	StyleNoFluff      Style = "No-fluff"
	StyleStorytelling Style = "Storytelling"
)

// Styles lists the supported styles in display order.
func Styles() []Style {
	return []Style{StyleOfficial, StyleExciting, StyleNoFluff, StyleStorytelling}
}

// ParseStyle resolves a user-supplied style name, case-insensitively.
func ParseStyle(s string) (Style, error) {
	for _, style := range Styles() {
		if strings.EqualFold(string(style), strings.TrimSpace(s)) {
			return style, nil
		}
	}
	return "", &ValidationError{
		Field:   "style",
		Message: "unknown style " + s + " (expected one of Official, Exciting, No-fluff, Storytelling)",
	}
}

// Result holds the intermediate draft and the final refined caption.
type Result struct {
	Draft   string `json:"draft"`
	Caption string `json:"caption"`
	Style   Style  `json:"style"`
}

// Generate produces a caption for the topic in the requested style.
// It makes exactly two sequential LLM calls: draft, then refine. A blank
// topic is refused before any request is issued.
func Generate(ctx context.Context, client llm.Client, topic string, style Style) (*Result, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, &ValidationError{Field: "topic", Message: "topic is required"}
	}
	if _, err := ParseStyle(string(style)); err != nil {
		return nil, err
	}

	draftPrompt := prompts.Format(prompts.MustGet("caption.json", "draft"), map[string]string{
		"Topic": topic,
		"Style": string(style),
	})

	draft, err := client.GenerateContent(ctx, draftPrompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{Message: "caption draft failed", Cause: err}
	}
	if strings.TrimSpace(draft) == "" {
		return nil, &APICallError{Message: "caption draft returned empty text"}
	}

	refinePrompt := prompts.Format(prompts.MustGet("caption.json", "refine"), map[string]string{
		"Text":  draft,
		"Style": string(style),
	})

	refined, err := client.GenerateContent(ctx, refinePrompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{Message: "caption refinement failed", Cause: err}
	}
	if strings.TrimSpace(refined) == "" {
		return nil, &APICallError{Message: "caption refinement returned empty text"}
	}

	return &Result{
		Draft:   strings.TrimSpace(draft),
		Caption: strings.TrimSpace(refined),
		Style:   style,
	}, nil
}
