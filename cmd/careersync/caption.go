package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/careersync/careersync/internal/caption"
	"github.com/careersync/careersync/internal/db"
	"github.com/careersync/careersync/internal/observability"
)

var captionCmd = &cobra.Command{
	Use:   "caption",
	Short: "Generate a LinkedIn caption via a two-step draft-then-refine chain",
	Long: fmt.Sprintf(`Generate a LinkedIn caption for a topic. A first model call drafts the
caption, a second call refines it toward the chosen style.

Available styles: %s`, strings.Join(styleNames(), ", ")),
	RunE: runCaption,
}

var (
	captionTopic   string
	captionStyle   string
	captionAPIKey  string
	captionDBURL   string
	captionVerbose bool
)

func init() {
	captionCmd.Flags().StringVarP(&captionTopic, "topic", "t", "", "Topic or idea to write about (required)")
	captionCmd.Flags().StringVarP(&captionStyle, "style", "s", string(caption.StyleOfficial), "Caption style")
	captionCmd.Flags().StringVar(&captionAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	captionCmd.Flags().StringVar(&captionDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	captionCmd.Flags().BoolVarP(&captionVerbose, "verbose", "v", false, "Print detailed output including the first draft")

	captionCmd.MarkFlagRequired("topic") //nolint:errcheck

	rootCmd.AddCommand(captionCmd)
}

func styleNames() []string {
	styles := caption.Styles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = string(s)
	}
	return names
}

func runCaption(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	style, err := caption.ParseStyle(captionStyle)
	if err != nil {
		return err
	}

	apiKey, err := resolveAPIKey(captionAPIKey)
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx, apiKey)
	if err != nil {
		return err
	}
	defer client.Close() //nolint:errcheck

	result, err := caption.Generate(ctx, client, captionTopic, style)
	if err != nil {
		return fmt.Errorf("caption generation failed: %w", err)
	}

	if captionVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintCaption(result)
	} else {
		fmt.Fprintln(os.Stdout, result.Caption)
	}

	saveAnalysis(ctx, captionDBURL, db.KindCaption, makeLabel(captionTopic), result, captionVerbose)
	return nil
}
