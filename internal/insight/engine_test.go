package insight

import (
	"context"
	"errors"
	"testing"

	"github.com/careersync/careersync/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateJSONWithSystemFunc func(ctx context.Context, systemPrompt, userPrompt string, tier llm.ModelTier) (string, error)
	calls                      int
}

func (m *MockLLMClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "", nil
}

func (m *MockLLMClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return "{}", nil
}

func (m *MockLLMClient) GenerateJSONWithSystem(ctx context.Context, systemPrompt, userPrompt string, tier llm.ModelTier) (string, error) {
	m.calls++
	if m.GenerateJSONWithSystemFunc != nil {
		return m.GenerateJSONWithSystemFunc(ctx, systemPrompt, userPrompt, tier)
	}
	return validReportJSON, nil
}

func (m *MockLLMClient) GetModel(_ llm.ModelTier) string { return "mock-model" }

func (m *MockLLMClient) Close() error { return nil }

const validReportJSON = `{
	"career_insight": {
		"match_score": 74,
		"experience_analysis": {"role_similarity": 70, "industry_alignment": 60, "seniority_match": 55, "achievement_relevance": 65},
		"skill_gaps": [{"skill": "SQL", "importance": 4, "category": "technical", "learning_resources": ["course"], "estimated_hours": 40}],
		"competitive_advantages": ["ML project experience"],
		"market_position": "Entry",
		"salary_range_estimate": "$85k-$105k",
		"career_trajectory": ["Software Engineer", "Senior Software Engineer", "Staff Engineer"]
	},
	"resume_analysis": {
		"ats_compatibility_score": 80,
		"keyword_optimization": 65,
		"formatting_score": 90,
		"content_quality": 75,
		"improvement_suggestions": [{"keywords": "Add cloud platform keywords"}],
		"optimized_bullet_points": ["Built X improving Y by Z%"]
	},
	"cover_letter": {
		"hook": "An opener",
		"body_paragraphs": ["para one", "para two"],
		"closing": "A closing",
		"keywords_included": ["Go"],
		"tone_analysis": "confident"
	},
	"interview_prep": {
		"likely_questions": [{"Tell me about a project": "Answer via STAR"}],
		"technical_challenges": ["Design a URL shortener"],
		"behavioral_scenarios": ["Conflict on a team"],
		"questions_to_ask": ["What does success look like?"]
	},
	"skill_development_roadmap": [{"phase": "30 days", "focus": "SQL"}],
	"networking_strategy": ["Reach out to alumni", "Attend meetups"]
}`

func TestAnalyze_Success(t *testing.T) {
	var seenSystem, seenUser string
	mockClient := &MockLLMClient{
		GenerateJSONWithSystemFunc: func(_ context.Context, systemPrompt, userPrompt string, _ llm.ModelTier) (string, error) {
			seenSystem = systemPrompt
			seenUser = userPrompt
			return validReportJSON, nil
		},
	}

	studentCtx := StudentContext{
		AcademicLevel: "Senior",
		FieldOfStudy:  "Computer Science",
		Graduation:    "June 2025",
		CareerGoals:   "Software Engineering at top tech companies",
		Internships:   "Summer internship at startup",
	}

	report, err := Analyze(context.Background(), mockClient, "resume text", "jd text", studentCtx)

	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 1, mockClient.calls, "exactly one request")
	assert.InDelta(t, 74.0, report.CareerInsight.MatchScore, 0.001)
	assert.Equal(t, "Entry", report.CareerInsight.MarketPosition)
	assert.Len(t, report.CareerInsight.SkillGaps, 1)
	assert.Equal(t, CategoryTechnical, report.CareerInsight.SkillGaps[0].Category)
	assert.Len(t, report.NetworkingStrategy, 2, "networking strategy is a top-level field")

	assert.Contains(t, seenSystem, "Career Intelligence")
	assert.Contains(t, seenUser, "resume text")
	assert.Contains(t, seenUser, "jd text")
	assert.Contains(t, seenUser, "Senior")
	assert.Contains(t, seenUser, "JSON SCHEMA")
}

func TestAnalyze_StudentContextDefaults(t *testing.T) {
	var seenUser string
	mockClient := &MockLLMClient{
		GenerateJSONWithSystemFunc: func(_ context.Context, _, userPrompt string, _ llm.ModelTier) (string, error) {
			seenUser = userPrompt
			return validReportJSON, nil
		},
	}

	_, err := Analyze(context.Background(), mockClient, "resume", "jd", StudentContext{})
	require.NoError(t, err)

	assert.Contains(t, seenUser, "Academic Level: Undergraduate")
	assert.Contains(t, seenUser, "Field of Study: Not specified")
	assert.Contains(t, seenUser, "Graduation Date: Unknown")
	assert.Contains(t, seenUser, "Previous Internships: None")
}

func TestAnalyze_BlankInputRefused(t *testing.T) {
	tests := []struct {
		name   string
		resume string
		jd     string
		field  string
	}{
		{name: "Blank resume", resume: " ", jd: "jd", field: "resume"},
		{name: "Blank job description", resume: "resume", jd: "", field: "job_description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &MockLLMClient{}
			report, err := Analyze(context.Background(), mockClient, tt.resume, tt.jd, StudentContext{})

			assert.Nil(t, report)
			assert.Equal(t, 0, mockClient.calls)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestAnalyze_APIFailure(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONWithSystemFunc: func(_ context.Context, _, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("backend overloaded")
		},
	}

	report, err := Analyze(context.Background(), mockClient, "resume", "jd", StudentContext{})

	assert.Nil(t, report)
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Error(), "backend overloaded")
}

func TestAnalyze_MalformedJSON(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateJSONWithSystemFunc: func(_ context.Context, _, _ string, _ llm.ModelTier) (string, error) {
			return "this is not json", nil
		},
	}

	report, err := Analyze(context.Background(), mockClient, "resume", "jd", StudentContext{})

	assert.Nil(t, report)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestAnalyze_SchemaViolationRejected(t *testing.T) {
	// Well-formed JSON that is missing most required report sections.
	mockClient := &MockLLMClient{
		GenerateJSONWithSystemFunc: func(_ context.Context, _, _ string, _ llm.ModelTier) (string, error) {
			return `{"career_insight": {"match_score": 50}}`, nil
		},
	}

	report, err := Analyze(context.Background(), mockClient, "resume", "jd", StudentContext{})

	assert.Nil(t, report, "no partial report on schema failure")
	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestNormalizeReport_Clamping(t *testing.T) {
	report := &Report{
		CareerInsight: CareerInsight{
			MatchScore: 105,
			ExperienceAnalysis: ExperienceMatch{
				RoleSimilarity: -3,
			},
			SkillGaps: []SkillGap{
				{Skill: "SQL", Importance: 9, EstimatedHours: -10},
				{Skill: "Docker", Importance: 0},
			},
		},
		ResumeAnalysis: ResumeAnalysis{ATSCompatibilityScore: 120},
	}

	normalizeReport(report)

	assert.InDelta(t, 100.0, report.CareerInsight.MatchScore, 0.001)
	assert.InDelta(t, 0.0, report.CareerInsight.ExperienceAnalysis.RoleSimilarity, 0.001)
	assert.Equal(t, 5, report.CareerInsight.SkillGaps[0].Importance)
	assert.Equal(t, 0, report.CareerInsight.SkillGaps[0].EstimatedHours)
	assert.Equal(t, 1, report.CareerInsight.SkillGaps[1].Importance)
	assert.InDelta(t, 100.0, report.ResumeAnalysis.ATSCompatibilityScore, 0.001)
}
