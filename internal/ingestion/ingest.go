// Package ingestion turns job posting sources (URLs, files, pasted text)
// into cleaned plain text ready for the analysis flows.
package ingestion

import (
	"context"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/careersync/careersync/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
	// ErrEmptyContent is returned when a source yields no usable text
	ErrEmptyContent = fmt.Errorf("no usable text content")
)

var multiSpace = regexp.MustCompile(`[ \t]+`)

// FromURL fetches a job posting URL, extracts the main text, and cleans it.
// If useBrowser is true and the plain HTTP fetch yields too little content,
// it falls back to headless browser rendering for script-heavy pages.
func FromURL(ctx context.Context, urlStr string, useBrowser, verbose bool) (string, error) {
	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Fetched %s: %d bytes", urlStr, len(result.HTML))
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.JobPostingSelectors())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if useBrowser && fetch.ShouldUseBrowser(text) {
		if verbose {
			log.Printf("[VERBOSE] Content too short (%d chars), falling back to browser rendering", len(text))
		}
		browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr, verbose)
		if browserErr != nil {
			if verbose {
				log.Printf("[VERBOSE] Browser rendering failed: %v, keeping HTTP content", browserErr)
			}
		} else {
			rendered, extractErr := fetch.ExtractMainText(browserHTML, fetch.JobPostingSelectors())
			if extractErr == nil && len(rendered) > len(text) {
				text = rendered
			}
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyContent, urlStr)
	}
	return cleaned, nil
}

// FromFile reads a job posting or resume from a plain text file.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	cleaned := CleanText(string(data))
	if cleaned == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyContent, path)
	}
	return cleaned, nil
}

// CleanText normalizes text content while preserving line structure:
// line endings become LF, runs of spaces collapse, and blank-line runs
// shrink to a single separator.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	blankRun := 0
	for _, line := range lines {
		line = strings.TrimSpace(multiSpace.ReplaceAllString(line, " "))
		if line == "" {
			blankRun++
			if blankRun > 1 {
				continue
			}
		} else {
			blankRun = 0
		}
		cleaned = append(cleaned, line)
	}

	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
