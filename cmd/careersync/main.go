// Package main provides the entry point for the CareerSync CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "careersync",
	Short: "AI-powered career tools",
	Long:  "CareerSync generates LinkedIn captions, screens resumes against job descriptions, and produces full career intelligence reports, as a CLI or via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
