package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/careersync/careersync/internal/caption"
	"github.com/careersync/careersync/internal/insight"
	"github.com/careersync/careersync/internal/screening"
)

func TestPrintCaption(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &caption.Result{
		Draft:   "First pass at the caption",
		Caption: "Polished caption text",
		Style:   caption.StyleExciting,
	}

	p.PrintCaption(result)
	output := buf.String()

	assert.Contains(t, output, "LINKEDIN CAPTION")
	assert.Contains(t, output, "Exciting")
	assert.Contains(t, output, "First pass at the caption")
	assert.Contains(t, output, "Polished caption text")
}

func TestPrintCaption_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCaption(nil)

	assert.Empty(t, buf.String())
}

func TestPrintScreeningReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &screening.Report{
		MatchPercentage:        72,
		MissingSkills:          []string{"Kubernetes", "Terraform"},
		ImprovementSuggestions: []string{"Quantify achievements"},
		CoverNote:              "I am excited to apply.",
	}

	p.PrintScreeningReport(report)
	output := buf.String()

	assert.Contains(t, output, "SCREENING REPORT")
	assert.Contains(t, output, "72%")
	assert.Contains(t, output, "Kubernetes")
	assert.Contains(t, output, "Quantify achievements")
	assert.Contains(t, output, "I am excited to apply.")
}

func TestPrintScreeningReport_ManySkills(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &screening.Report{
		MatchPercentage: 40,
		MissingSkills:   []string{"a", "b", "c", "d", "e", "f", "g"},
	}

	p.PrintScreeningReport(report)

	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintInsightReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &insight.Report{
		CareerInsight: insight.CareerInsight{
			MatchScore: 85,
			ExperienceAnalysis: insight.ExperienceMatch{
				RoleSimilarity:    80,
				IndustryAlignment: 70,
				SeniorityMatch:    60,
			},
			SkillGaps: []insight.SkillGap{
				{Skill: "Kubernetes", Importance: 4, Category: insight.CategoryTools},
			},
			MarketPosition:      "Strong mid-level candidate",
			SalaryRangeEstimate: "$90k-$110k",
		},
		ResumeAnalysis: insight.ResumeAnalysis{
			ATSCompatibilityScore: 75,
			KeywordOptimization:   65,
			FormattingScore:       90,
			ContentQuality:        80,
		},
		InterviewPrep: insight.InterviewPrep{
			LikelyQuestions: []map[string]string{
				{"question": "Tell me about yourself", "answer_framework": "STAR"},
			},
			QuestionsToAsk: []string{"What does success look like?"},
		},
		NetworkingStrategy: []string{"Reach out to alumni", "Attend meetups"},
	}

	p.PrintInsightReport(report)
	output := buf.String()

	assert.Contains(t, output, "CAREER INSIGHT")
	assert.Contains(t, output, "85%")
	assert.Contains(t, output, "Kubernetes")
	assert.Contains(t, output, "importance 4/5")
	assert.Contains(t, output, "RESUME ANALYSIS")
	assert.Contains(t, output, "INTERVIEW PREP")
	assert.Contains(t, output, "Tell me about yourself")
	assert.Contains(t, output, "NETWORKING STRATEGY")
	assert.Contains(t, output, "1. Reach out to alumni")
}

func TestPrintInsightReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintInsightReport(nil)

	assert.Empty(t, buf.String())
}

func TestGauge(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{name: "Zero", score: 0, want: "  0%"},
		{name: "Full", score: 100, want: "100%"},
		{name: "Clamped above", score: 150, want: "100%"},
		{name: "Clamped below", score: -5, want: "  0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, gauge(tt.score), tt.want)
		})
	}

	// Full gauge has no empty cells
	assert.NotContains(t, gauge(100), "░")
	assert.NotContains(t, gauge(0), "█")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &screening.Report{
		MatchPercentage: 50,
		CoverNote:       strings.Repeat("long cover note text ", 10),
	}

	p.PrintScreeningReport(report)
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
