package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalValidReport is the smallest report that satisfies the schema.
const minimalValidReport = `{
	"career_insight": {
		"match_score": 74,
		"experience_analysis": {
			"role_similarity": 70,
			"industry_alignment": 60,
			"seniority_match": 55,
			"achievement_relevance": 65
		},
		"skill_gaps": [
			{"skill": "SQL", "importance": 4, "category": "technical", "learning_resources": ["course"], "estimated_hours": 40}
		],
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
		"body_paragraphs": ["para one"],
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
	"networking_strategy": ["Reach out to alumni"]
}`

func TestValidateInsightReport_Valid(t *testing.T) {
	err := ValidateInsightReport(minimalValidReport)
	assert.NoError(t, err)
}

func TestValidateInsightReport_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  string
		wantErr string
	}{
		{
			name:    "Missing networking_strategy",
			mutate:  `{"career_insight": {}, "resume_analysis": {}, "cover_letter": {}, "interview_prep": {}, "skill_development_roadmap": []}`,
			wantErr: "networking_strategy",
		},
		{
			name:    "Empty object",
			mutate:  `{}`,
			wantErr: "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInsightReport(tt.mutate)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
			assert.Contains(t, validationErr.Error(), tt.wantErr)
		})
	}
}

func TestValidateInsightReport_OutOfRangeScore(t *testing.T) {
	bad := `{
		"career_insight": {
			"match_score": 140,
			"experience_analysis": {"role_similarity": 0, "industry_alignment": 0, "seniority_match": 0, "achievement_relevance": 0},
			"skill_gaps": [],
			"competitive_advantages": [],
			"market_position": "Entry",
			"salary_range_estimate": "n/a",
			"career_trajectory": []
		},
		"resume_analysis": {"ats_compatibility_score": 0, "keyword_optimization": 0, "formatting_score": 0, "content_quality": 0},
		"cover_letter": {"hook": "", "body_paragraphs": [], "closing": ""},
		"interview_prep": {"likely_questions": [], "technical_challenges": [], "behavioral_scenarios": [], "questions_to_ask": []},
		"skill_development_roadmap": [],
		"networking_strategy": []
	}`

	err := ValidateInsightReport(bad)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Error(), "match_score")
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": "unknown-type"}`, `{}`)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestInsightReportSchema_Embedded(t *testing.T) {
	schema := InsightReportSchema()
	assert.Contains(t, schema, "CareerIntelligenceReport")
	assert.Contains(t, schema, "networking_strategy")
}
