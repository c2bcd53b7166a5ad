// Package insight produces the full career intelligence report from a single
// structured LLM call: resume, job description, and student context in, a
// schema-validated JSON report out.
package insight

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/careersync/careersync/internal/llm"
	"github.com/careersync/careersync/internal/prompts"
	"github.com/careersync/careersync/internal/schemas"
)

// Analyze generates a career intelligence report. The response must parse as
// JSON and validate against the embedded report schema before it is accepted;
// on any failure no partial report is returned.
func Analyze(ctx context.Context, client llm.Client, resume, jobDescription string, studentCtx StudentContext) (*Report, error) {
	if strings.TrimSpace(resume) == "" {
		return nil, &ValidationError{Field: "resume", Message: "resume text is required"}
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &ValidationError{Field: "job_description", Message: "job description text is required"}
	}

	systemPrompt := prompts.MustGet("insight.json", "system")
	userPrompt := buildAnalyzePrompt(resume, jobDescription, studentCtx.withDefaults())

	jsonResp, err := client.GenerateJSONWithSystem(ctx, systemPrompt, userPrompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "career intelligence generation failed", Cause: err}
	}

	jsonResp = llm.CleanJSONBlock(jsonResp)

	var report Report
	if err := json.Unmarshal([]byte(jsonResp), &report); err != nil {
		return nil, &ParseError{Message: "failed to parse JSON response", Cause: err}
	}

	if err := schemas.ValidateInsightReport(jsonResp); err != nil {
		return nil, &SchemaError{Message: "report does not match schema", Cause: err}
	}

	normalizeReport(&report)
	return &report, nil
}

// buildAnalyzePrompt fills the analysis template and appends the output schema.
func buildAnalyzePrompt(resume, jobDescription string, studentCtx StudentContext) string {
	body := prompts.Format(prompts.MustGet("insight.json", "analyze"), map[string]string{
		"Resume":         resume,
		"JobDescription": jobDescription,
		"AcademicLevel":  studentCtx.AcademicLevel,
		"FieldOfStudy":   studentCtx.FieldOfStudy,
		"Graduation":     studentCtx.Graduation,
		"CareerGoals":    studentCtx.CareerGoals,
		"Internships":    studentCtx.Internships,
	})

	var sb strings.Builder
	sb.WriteString(body)
	sb.WriteString("\n\nJSON SCHEMA:\n")
	sb.WriteString(schemas.InsightReportSchema())
	return sb.String()
}

// normalizeReport clamps model-reported numbers into their documented ranges.
// Schema validation rejects wildly out-of-range values; this guards the
// boundaries after float decoding.
func normalizeReport(report *Report) {
	ci := &report.CareerInsight
	ci.MatchScore = clampScore(ci.MatchScore)
	ci.ExperienceAnalysis.RoleSimilarity = clampScore(ci.ExperienceAnalysis.RoleSimilarity)
	ci.ExperienceAnalysis.IndustryAlignment = clampScore(ci.ExperienceAnalysis.IndustryAlignment)
	ci.ExperienceAnalysis.SeniorityMatch = clampScore(ci.ExperienceAnalysis.SeniorityMatch)
	ci.ExperienceAnalysis.AchievementRelevance = clampScore(ci.ExperienceAnalysis.AchievementRelevance)

	for i := range ci.SkillGaps {
		if ci.SkillGaps[i].Importance < 1 {
			ci.SkillGaps[i].Importance = 1
		}
		if ci.SkillGaps[i].Importance > 5 {
			ci.SkillGaps[i].Importance = 5
		}
		if ci.SkillGaps[i].EstimatedHours < 0 {
			ci.SkillGaps[i].EstimatedHours = 0
		}
	}

	ra := &report.ResumeAnalysis
	ra.ATSCompatibilityScore = clampScore(ra.ATSCompatibilityScore)
	ra.KeywordOptimization = clampScore(ra.KeywordOptimization)
	ra.FormattingScore = clampScore(ra.FormattingScore)
	ra.ContentQuality = clampScore(ra.ContentQuality)
}

// clampScore bounds a score to [0,100].
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
