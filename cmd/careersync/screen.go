package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/careersync/careersync/internal/config"
	"github.com/careersync/careersync/internal/db"
	"github.com/careersync/careersync/internal/observability"
	"github.com/careersync/careersync/internal/screening"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen a resume against a job description",
	Long: `Run four screening prompts in parallel against the model: skill match
percentage, missing skills, improvement suggestions, and a short cover note.
All four must succeed before a report is produced.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runScreen,
}

var (
	screenConfigPath string
	screenResume     string
	screenJob        string
	screenJobURL     string
	screenAPIKey     string
	screenDBURL      string
	screenUseBrowser bool
	screenVerbose    bool
	screenJSONOut    bool
)

func init() {
	screenCmd.Flags().StringVar(&screenConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	screenCmd.Flags().StringVarP(&screenResume, "resume", "r", "", "Path to resume text file")
	screenCmd.Flags().StringVarP(&screenJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	screenCmd.Flags().StringVar(&screenJobURL, "job-url", "", "URL to fetch job description from (mutually exclusive with --job)")
	screenCmd.Flags().StringVar(&screenAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	screenCmd.Flags().StringVar(&screenDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	screenCmd.Flags().BoolVar(&screenUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	screenCmd.Flags().BoolVarP(&screenVerbose, "verbose", "v", false, "Print detailed debug information")
	screenCmd.Flags().BoolVar(&screenJSONOut, "json", false, "Print the raw JSON report instead of the formatted summary")

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := mergeScreenConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Resume == "" {
		return fmt.Errorf("--resume must be provided (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	apiKey, err := resolveAPIKey(cfg.APIKey)
	if err != nil {
		return err
	}

	resume, err := loadResumeText(cfg.Resume)
	if err != nil {
		return err
	}
	jobDescription, err := loadJobText(ctx, cfg.Job, cfg.JobURL, cfg.UseBrowser, cfg.Verbose)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, apiKey)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	report, err := screening.Analyze(ctx, client, resume, jobDescription)
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}

	if screenJSONOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintScreeningReport(report)
	}

	saveAnalysis(ctx, cfg.DatabaseURL, db.KindScreening, makeLabel(jobDescription), report, cfg.Verbose)
	return nil
}

// mergeScreenConfig loads the optional config file and applies CLI overrides.
func mergeScreenConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if screenConfigPath != "" {
		loaded, err := config.LoadConfig(screenConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if screenVerbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", screenConfigPath)
		}
	}

	if cmd.Flags().Changed("resume") {
		cfg.Resume = screenResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = screenJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = screenJobURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = screenAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = screenDBURL
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = screenUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = screenVerbose
	}

	return cfg, nil
}
