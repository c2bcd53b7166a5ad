// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/careersync/careersync/internal/caption"
	"github.com/careersync/careersync/internal/insight"
	"github.com/careersync/careersync/internal/screening"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// gaugeWidth is the number of cells in a score gauge
	gaugeWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// gauge renders a 0-100 score as a fixed-width bar like [████░░...] 72%.
func gauge(score float64) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := int(score / 100 * gaugeWidth)
	return fmt.Sprintf("[%s%s] %3.0f%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", gaugeWidth-filled),
		score)
}

// PrintCaption outputs the generated caption alongside its first draft.
func (p *Printer) PrintCaption(result *caption.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Style: %s\n\n", result.Style))

	draft := result.Draft
	if len(draft) > 50 {
		draft = draft[:47] + "..."
	}
	sb.WriteString(fmt.Sprintf("Draft:   %s\n", draft))

	final := result.Caption
	if len(final) > 50 {
		final = final[:47] + "..."
	}
	sb.WriteString(fmt.Sprintf("Refined: %s", final))

	p.printBox("LINKEDIN CAPTION", sb.String())
}

// PrintScreeningReport outputs a human-readable summary of the screening report.
func (p *Printer) PrintScreeningReport(report *screening.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match:  %s\n", gauge(report.MatchPercentage)))
	sb.WriteString("\n")

	if len(report.MissingSkills) > 0 {
		sb.WriteString("Missing Skills:\n")
		count := min(len(report.MissingSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", report.MissingSkills[i]))
		}
		if len(report.MissingSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.MissingSkills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(report.ImprovementSuggestions) > 0 {
		sb.WriteString("Suggestions:\n")
		count := min(len(report.ImprovementSuggestions), 3)
		for i := 0; i < count; i++ {
			suggestion := report.ImprovementSuggestions[i]
			if len(suggestion) > 50 {
				suggestion = suggestion[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", suggestion))
		}
		if len(report.ImprovementSuggestions) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(report.ImprovementSuggestions)-3))
		}
		sb.WriteString("\n")
	}

	note := report.CoverNote
	if len(note) > 50 {
		note = note[:47] + "..."
	}
	sb.WriteString(fmt.Sprintf("Cover note: %s", note))

	p.printBox("SCREENING REPORT", sb.String())
}

// PrintInsightReport outputs the career intelligence report as a series of
// boxes, one per section.
func (p *Printer) PrintInsightReport(report *insight.Report) {
	if report == nil {
		return
	}

	p.printCareerInsight(&report.CareerInsight)
	p.printResumeAnalysis(&report.ResumeAnalysis)
	p.printInterviewPrep(&report.InterviewPrep)
	p.printNetworkingStrategy(report.NetworkingStrategy)
}

func (p *Printer) printCareerInsight(ci *insight.CareerInsight) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:    %s\n", gauge(ci.MatchScore)))
	sb.WriteString(fmt.Sprintf("Role:       %s\n", gauge(ci.ExperienceAnalysis.RoleSimilarity)))
	sb.WriteString(fmt.Sprintf("Industry:   %s\n", gauge(ci.ExperienceAnalysis.IndustryAlignment)))
	sb.WriteString(fmt.Sprintf("Seniority:  %s\n", gauge(ci.ExperienceAnalysis.SeniorityMatch)))
	sb.WriteString("\n")

	if len(ci.SkillGaps) > 0 {
		sb.WriteString("Skill Gaps:\n")
		count := min(len(ci.SkillGaps), maxItemsToShow)
		for i := 0; i < count; i++ {
			gap := ci.SkillGaps[i]
			sb.WriteString(fmt.Sprintf("  • %s (%s, importance %d/5)\n", gap.Skill, gap.Category, gap.Importance))
		}
		if len(ci.SkillGaps) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(ci.SkillGaps)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Market:  %s\n", truncate(ci.MarketPosition, 45)))
	sb.WriteString(fmt.Sprintf("Salary:  %s", truncate(ci.SalaryRangeEstimate, 45)))

	p.printBox("CAREER INSIGHT", sb.String())
}

func (p *Printer) printResumeAnalysis(ra *insight.ResumeAnalysis) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS:        %s\n", gauge(ra.ATSCompatibilityScore)))
	sb.WriteString(fmt.Sprintf("Keywords:   %s\n", gauge(ra.KeywordOptimization)))
	sb.WriteString(fmt.Sprintf("Formatting: %s\n", gauge(ra.FormattingScore)))
	sb.WriteString(fmt.Sprintf("Content:    %s", gauge(ra.ContentQuality)))

	if len(ra.OptimizedBulletPoints) > 0 {
		sb.WriteString("\n\nOptimized Bullets:\n")
		count := min(len(ra.OptimizedBulletPoints), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s", truncate(ra.OptimizedBulletPoints[i], 48)))
			if i < count-1 {
				sb.WriteString("\n")
			}
		}
	}

	p.printBox("RESUME ANALYSIS", sb.String())
}

func (p *Printer) printInterviewPrep(ip *insight.InterviewPrep) {
	if len(ip.LikelyQuestions) == 0 && len(ip.QuestionsToAsk) == 0 {
		return
	}

	var sb strings.Builder
	if len(ip.LikelyQuestions) > 0 {
		sb.WriteString("Likely Questions:\n")
		count := min(len(ip.LikelyQuestions), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", truncate(ip.LikelyQuestions[i]["question"], 48)))
		}
		if len(ip.LikelyQuestions) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(ip.LikelyQuestions)-3))
		}
	}

	if len(ip.QuestionsToAsk) > 0 {
		sb.WriteString("\nQuestions to Ask:\n")
		count := min(len(ip.QuestionsToAsk), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s", truncate(ip.QuestionsToAsk[i], 48)))
			if i < count-1 {
				sb.WriteString("\n")
			}
		}
	}

	p.printBox("INTERVIEW PREP", strings.TrimSuffix(sb.String(), "\n"))
}

func (p *Printer) printNetworkingStrategy(steps []string) {
	if len(steps) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(steps), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, truncate(steps[i], 48)))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(steps) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(steps)-maxItemsToShow))
	}

	p.printBox("NETWORKING STRATEGY", sb.String())
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}
