package insight

// SkillCategory classifies a skill gap.
type SkillCategory string

// Skill gap categories.
const (
	CategoryTechnical SkillCategory = "technical"
	CategorySoft      SkillCategory = "soft"
	CategoryDomain    SkillCategory = "domain"
	CategoryTools     SkillCategory = "tools"
)

// SkillGap describes a missing skill with learning guidance.
type SkillGap struct {
	Skill             string        `json:"skill"`
	Importance        int           `json:"importance"`
	Category          SkillCategory `json:"category"`
	LearningResources []string      `json:"learning_resources,omitempty"`
	EstimatedHours    int           `json:"estimated_hours,omitempty"`
}

// ExperienceMatch breaks the candidate/role fit into four 0-100 axes.
type ExperienceMatch struct {
	RoleSimilarity       float64 `json:"role_similarity"`
	IndustryAlignment    float64 `json:"industry_alignment"`
	SeniorityMatch       float64 `json:"seniority_match"`
	AchievementRelevance float64 `json:"achievement_relevance"`
}

// CareerInsight is the candidate-vs-role strategic assessment.
type CareerInsight struct {
	MatchScore            float64         `json:"match_score"`
	ExperienceAnalysis    ExperienceMatch `json:"experience_analysis"`
	SkillGaps             []SkillGap      `json:"skill_gaps"`
	CompetitiveAdvantages []string        `json:"competitive_advantages"`
	MarketPosition        string          `json:"market_position"`
	SalaryRangeEstimate   string          `json:"salary_range_estimate"`
	CareerTrajectory      []string        `json:"career_trajectory"`
}

// ResumeAnalysis scores the resume document itself.
type ResumeAnalysis struct {
	ATSCompatibilityScore  float64             `json:"ats_compatibility_score"`
	KeywordOptimization    float64             `json:"keyword_optimization"`
	FormattingScore        float64             `json:"formatting_score"`
	ContentQuality         float64             `json:"content_quality"`
	ImprovementSuggestions []map[string]string `json:"improvement_suggestions,omitempty"`
	OptimizedBulletPoints  []string            `json:"optimized_bullet_points,omitempty"`
}

// CoverLetter is the suggested cover letter strategy.
type CoverLetter struct {
	Hook             string   `json:"hook"`
	BodyParagraphs   []string `json:"body_paragraphs"`
	Closing          string   `json:"closing"`
	KeywordsIncluded []string `json:"keywords_included,omitempty"`
	ToneAnalysis     string   `json:"tone_analysis,omitempty"`
}

// InterviewPrep holds interview preparation material.
type InterviewPrep struct {
	LikelyQuestions     []map[string]string `json:"likely_questions"`
	TechnicalChallenges []string            `json:"technical_challenges"`
	BehavioralScenarios []string            `json:"behavioral_scenarios"`
	QuestionsToAsk      []string            `json:"questions_to_ask"`
}

// Report is the full career intelligence output. NetworkingStrategy is a
// top-level field, not part of CareerInsight.
type Report struct {
	CareerInsight           CareerInsight    `json:"career_insight"`
	ResumeAnalysis          ResumeAnalysis   `json:"resume_analysis"`
	CoverLetter             CoverLetter      `json:"cover_letter"`
	InterviewPrep           InterviewPrep    `json:"interview_prep"`
	SkillDevelopmentRoadmap []map[string]any `json:"skill_development_roadmap"`
	NetworkingStrategy      []string         `json:"networking_strategy"`
}

// StudentContext carries optional background about the candidate. Blank
// fields are replaced with neutral defaults before prompting.
type StudentContext struct {
	AcademicLevel string `json:"academic_level,omitempty"`
	FieldOfStudy  string `json:"field_of_study,omitempty"`
	Graduation    string `json:"graduation,omitempty"`
	CareerGoals   string `json:"career_goals,omitempty"`
	Internships   string `json:"internships,omitempty"`
}

// withDefaults fills blank context fields with neutral placeholders.
func (c StudentContext) withDefaults() StudentContext {
	out := c
	if out.AcademicLevel == "" {
		out.AcademicLevel = "Undergraduate"
	}
	if out.FieldOfStudy == "" {
		out.FieldOfStudy = "Not specified"
	}
	if out.Graduation == "" {
		out.Graduation = "Unknown"
	}
	if out.CareerGoals == "" {
		out.CareerGoals = "Not specified"
	}
	if out.Internships == "" {
		out.Internships = "None"
	}
	return out
}
