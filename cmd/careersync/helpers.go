package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/careersync/careersync/internal/db"
	"github.com/careersync/careersync/internal/ingestion"
	"github.com/careersync/careersync/internal/llm"
)

// resolveAPIKey returns the API key from the flag or the environment.
func resolveAPIKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
}

// newLLMClient creates a Gemini client with the default tier configuration.
func newLLMClient(ctx context.Context, apiKey string) (llm.Client, error) {
	client, err := llm.NewGeminiClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// loadJobText reads the job description from a file or fetches it from a URL.
// Exactly one of jobPath and jobURL must be set; callers validate that.
func loadJobText(ctx context.Context, jobPath, jobURL string, useBrowser, verbose bool) (string, error) {
	if jobURL != "" {
		text, err := ingestion.FromURL(ctx, jobURL, useBrowser, verbose)
		if err != nil {
			return "", fmt.Errorf("failed to fetch job posting: %w", err)
		}
		return text, nil
	}
	text, err := ingestion.FromFile(jobPath)
	if err != nil {
		return "", fmt.Errorf("failed to read job file: %w", err)
	}
	return text, nil
}

// loadResumeText reads the resume from a file.
func loadResumeText(path string) (string, error) {
	text, err := ingestion.FromFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume file: %w", err)
	}
	return text, nil
}

// saveAnalysis persists a completed result when a database URL is configured.
// Persistence is best-effort from the CLI; without a database URL it is a no-op.
func saveAnalysis(ctx context.Context, databaseURL, kind, label string, result any, verbose bool) {
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to connect to database: %v\n", err)
		return
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}

	analysisID, err := database.CreateAnalysis(ctx, nil, kind, label)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to record analysis: %v\n", err)
		return
	}
	if err := database.SaveArtifact(ctx, analysisID, db.ArtifactResult, result); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save result: %v\n", err)
		return
	}
	if err := database.CompleteAnalysis(ctx, analysisID, db.StatusCompleted); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to complete analysis: %v\n", err)
		return
	}

	if verbose {
		fmt.Fprintf(os.Stdout, "Saved analysis: %s\n", analysisID)
	}
}

// makeLabel derives a short label from free text for stored analyses.
func makeLabel(text string) string {
	line := strings.TrimSpace(text)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if len(line) > 80 {
		line = line[:77] + "..."
	}
	return line
}
