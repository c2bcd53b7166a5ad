package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/careersync/careersync/internal/ingestion"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch and clean a job description",
	Long: `Fetch a job posting from a URL (or read a local text file), strip
navigation, scripts, and boilerplate, and print the cleaned text. Use
--use-browser for SPA job boards that render content with JavaScript.`,
	RunE: runIngest,
}

var (
	ingestURL        string
	ingestTextFile   string
	ingestOut        string
	ingestUseBrowser bool
	ingestVerbose    bool
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the job description from (mutually exclusive with --text-file)")
	ingestCmd.Flags().StringVar(&ingestTextFile, "text-file", "", "Local text file to clean (mutually exclusive with --url)")
	ingestCmd.Flags().StringVarP(&ingestOut, "out", "o", "", "Write the cleaned text to a file instead of stdout")
	ingestCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Use headless browser for SPA job boards (requires Chrome)")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if ingestURL == "" && ingestTextFile == "" {
		return fmt.Errorf("either --url or --text-file must be provided")
	}
	if ingestURL != "" && ingestTextFile != "" {
		return fmt.Errorf("--url and --text-file are mutually exclusive; provide only one")
	}

	var (
		text string
		err  error
	)
	if ingestURL != "" {
		text, err = ingestion.FromURL(ctx, ingestURL, ingestUseBrowser, ingestVerbose)
		if err != nil {
			return fmt.Errorf("failed to ingest job description: %w", err)
		}
	} else {
		text, err = ingestion.FromFile(ingestTextFile)
		if err != nil {
			return fmt.Errorf("failed to read text file: %w", err)
		}
	}

	if ingestVerbose {
		fmt.Fprintf(os.Stderr, "Cleaned text: %d characters\n", len(text))
	}

	if ingestOut != "" {
		if err := os.WriteFile(ingestOut, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write output to %s: %w", ingestOut, err)
		}
		fmt.Fprintf(os.Stdout, "Cleaned text written to: %s\n", ingestOut)
		return nil
	}

	fmt.Fprintln(os.Stdout, text)
	return nil
}
