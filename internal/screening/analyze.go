// Package screening runs the parallel resume-vs-job-description screening.
// Four independent JSON prompts (match percentage, missing skills,
// improvement suggestions, cover note) are dispatched concurrently and
// joined before a report is returned.
package screening

import (
	"context"
	"encoding/json"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/careersync/careersync/internal/llm"
	"github.com/careersync/careersync/internal/prompts"
)

// Analyze screens a resume against a job description. It issues exactly four
// independent LLM requests concurrently; if any branch fails the whole
// screening fails and no partial report is returned. Blank inputs are
// refused before any request is issued.
func Analyze(ctx context.Context, client llm.Client, resume, jobDescription string) (*Report, error) {
	if strings.TrimSpace(resume) == "" {
		return nil, &ValidationError{Field: "resume", Message: "resume text is required"}
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &ValidationError{Field: "job_description", Message: "job description text is required"}
	}

	data := map[string]string{
		"Resume":         resume,
		"JobDescription": jobDescription,
	}

	// Each branch writes only its own result variable, so no locking is
	// needed beyond the errgroup join.
	var (
		match        matchResponse
		missing      missingSkillsResponse
		improvements improvementsResponse
		cover        coverNoteResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runBranch(gCtx, client, BranchMatch, data, &match)
	})
	g.Go(func() error {
		return runBranch(gCtx, client, BranchMissingSkills, data, &missing)
	})
	g.Go(func() error {
		return runBranch(gCtx, client, BranchImprovements, data, &improvements)
	})
	g.Go(func() error {
		return runBranch(gCtx, client, BranchCoverNote, data, &cover)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{
		MatchPercentage:        clampPercentage(match.MatchPercentage),
		MissingSkills:          dedupe(missing.MissingSkills),
		ImprovementSuggestions: improvements.ImprovementSuggestions,
		CoverNote:              strings.TrimSpace(cover.CoverNote),
	}, nil
}

// runBranch executes a single screening branch: format the prompt, call the
// model, and decode the branch-specific JSON shape into out.
func runBranch(ctx context.Context, client llm.Client, branch string, data map[string]string, out any) error {
	prompt := prompts.Format(prompts.MustGet("screening.json", branch), data)

	jsonResp, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return &APICallError{Branch: branch, Message: "LLM generation failed", Cause: err}
	}

	jsonResp = llm.CleanJSONBlock(jsonResp)
	if err := json.Unmarshal([]byte(jsonResp), out); err != nil {
		return &ParseError{Branch: branch, Message: "failed to parse JSON response", Cause: err}
	}

	return nil
}

// clampPercentage bounds a model-reported percentage to [0,100].
func clampPercentage(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// dedupe removes duplicate and blank entries, preserving order.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		key := strings.ToLower(trimmed)
		if trimmed == "" || seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, trimmed)
	}
	return result
}
