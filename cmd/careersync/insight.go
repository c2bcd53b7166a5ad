package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/careersync/careersync/internal/db"
	"github.com/careersync/careersync/internal/insight"
	"github.com/careersync/careersync/internal/observability"
)

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Generate a full career intelligence report",
	Long: `Produce a schema-validated career intelligence report for a resume and
a target job: match scoring, skill gaps, resume analysis, cover letter
strategy, interview preparation, and a networking plan.

Optional student context flags (--academic-level, --field-of-study,
--graduation, --career-goals, --internships) sharpen the analysis.`,
	RunE: runInsight,
}

var (
	insightResume     string
	insightJob        string
	insightJobURL     string
	insightAPIKey     string
	insightDBURL      string
	insightOut        string
	insightUseBrowser bool
	insightVerbose    bool

	insightAcademicLevel string
	insightFieldOfStudy  string
	insightGraduation    string
	insightCareerGoals   string
	insightInternships   string
)

func init() {
	insightCmd.Flags().StringVarP(&insightResume, "resume", "r", "", "Path to resume text file (required)")
	insightCmd.Flags().StringVarP(&insightJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	insightCmd.Flags().StringVar(&insightJobURL, "job-url", "", "URL to fetch job description from (mutually exclusive with --job)")
	insightCmd.Flags().StringVar(&insightAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	insightCmd.Flags().StringVar(&insightDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	insightCmd.Flags().StringVarP(&insightOut, "out", "o", "", "Write the JSON report to a file instead of stdout")
	insightCmd.Flags().BoolVar(&insightUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	insightCmd.Flags().BoolVarP(&insightVerbose, "verbose", "v", false, "Print detailed debug information")

	insightCmd.Flags().StringVar(&insightAcademicLevel, "academic-level", "", "Academic level, e.g. 'Junior undergraduate'")
	insightCmd.Flags().StringVar(&insightFieldOfStudy, "field-of-study", "", "Field of study, e.g. 'Computer Science'")
	insightCmd.Flags().StringVar(&insightGraduation, "graduation", "", "Expected graduation, e.g. 'May 2027'")
	insightCmd.Flags().StringVar(&insightCareerGoals, "career-goals", "", "Career goals in one sentence")
	insightCmd.Flags().StringVar(&insightInternships, "internships", "", "Prior internship experience in one sentence")

	if err := insightCmd.MarkFlagRequired("resume"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(insightCmd)
}

func runInsight(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if insightJob == "" && insightJobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided")
	}
	if insightJob != "" && insightJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	apiKey, err := resolveAPIKey(insightAPIKey)
	if err != nil {
		return err
	}

	resume, err := loadResumeText(insightResume)
	if err != nil {
		return err
	}
	jobDescription, err := loadJobText(ctx, insightJob, insightJobURL, insightUseBrowser, insightVerbose)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, apiKey)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	studentCtx := insight.StudentContext{
		AcademicLevel: insightAcademicLevel,
		FieldOfStudy:  insightFieldOfStudy,
		Graduation:    insightGraduation,
		CareerGoals:   insightCareerGoals,
		Internships:   insightInternships,
	}

	report, err := insight.Analyze(ctx, client, resume, jobDescription, studentCtx)
	if err != nil {
		return fmt.Errorf("insight analysis failed: %w", err)
	}

	if insightOut != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		if err := os.WriteFile(insightOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", insightOut, err)
		}
		fmt.Fprintf(os.Stdout, "Report written to: %s\n", insightOut)
	}

	if insightOut == "" || insightVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintInsightReport(report)
	}

	saveAnalysis(ctx, insightDBURL, db.KindInsight, makeLabel(jobDescription), report, insightVerbose)
	return nil
}
