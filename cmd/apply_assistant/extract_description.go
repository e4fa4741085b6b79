package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/apply-assistant/internal/extract"
	"github.com/jonathan/apply-assistant/internal/fetch"
	"github.com/jonathan/apply-assistant/internal/logging"
	"github.com/jonathan/apply-assistant/internal/observability"
	"github.com/jonathan/apply-assistant/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var extractDescriptionCmd = &cobra.Command{
	Use:   "extract-description [url...]",
	Short: "Extract the job description from posting pages",
	Long: "Fetch one or more job-posting URLs (or read a saved HTML page with --html) and print the " +
		"extracted job description as JSON. Multiple URLs are fetched concurrently.",
	RunE: runExtractDescription,
}

var (
	extractHTMLFile    string
	extractURLsFile    string
	extractOutputFile  string
	extractConcurrency int
	extractUseBrowser  bool
	extractReadability bool
	extractRecord      bool
)

func init() {
	extractDescriptionCmd.Flags().StringVar(&extractHTMLFile, "html", "", "Path to a saved HTML page (\"-\" for stdin) instead of fetching URLs")
	extractDescriptionCmd.Flags().StringVar(&extractURLsFile, "urls", "", "Path to a file with one URL per line")
	extractDescriptionCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	extractDescriptionCmd.Flags().IntVar(&extractConcurrency, "concurrency", 4, "Maximum pages fetched at once")
	extractDescriptionCmd.Flags().BoolVar(&extractUseBrowser, "use-browser", false, "Render pages in a headless browser when plain HTTP yields nothing")
	extractDescriptionCmd.Flags().BoolVar(&extractReadability, "readability", false, "Fall back to readability when no block qualifies")
	extractDescriptionCmd.Flags().BoolVar(&extractRecord, "record", false, "Record each extracted posting in the application history")

	rootCmd.AddCommand(extractDescriptionCmd)
}

func runExtractDescription(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	if extractHTMLFile != "" {
		if len(args) > 0 || extractURLsFile != "" {
			return fmt.Errorf("cannot use --html with URLs")
		}
		return extractFromFile(cmd, a)
	}

	urls := args
	if extractURLsFile != "" {
		listed, err := readURLList(extractURLsFile)
		if err != nil {
			return err
		}
		urls = append(urls, listed...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("at least one URL is required (pass URLs as arguments, --urls, or --html)")
	}

	if extractUseBrowser {
		a.cfg.UseBrowser = true
	}
	if extractReadability {
		a.cfg.Readability = true
	}
	loader, err := a.newLoader()
	if err != nil {
		return err
	}
	defer loader.Close()

	ctx := cmd.Context()
	postings, err := loadPostings(ctx, loader, urls, extractConcurrency)
	if err != nil {
		return err
	}

	if a.cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		for _, p := range postings {
			printer.PrintPosting(p)
		}
	}

	if extractRecord {
		if err := recordPostings(ctx, a, postings); err != nil {
			return err
		}
	}

	var out []byte
	if len(postings) == 1 {
		out, err = json.MarshalIndent(postings[0], "", "  ")
	} else {
		out, err = json.MarshalIndent(postings, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(extractOutputFile, out, cmd.OutOrStdout())
}

// loadPostings fetches urls with at most limit requests in flight.
// Results keep the order of urls; the first failure cancels the rest.
func loadPostings(ctx context.Context, loader *fetch.Loader, urls []string, limit int) ([]*fetch.Posting, error) {
	postings := make([]*fetch.Posting, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, u := range urls {
		g.Go(func() error {
			p, err := loader.Load(ctx, u)
			if err != nil {
				return err
			}
			postings[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return postings, nil
}

// recordPostings appends one history entry per posting that yielded a description.
func recordPostings(ctx context.Context, a *app, postings []*fetch.Posting) error {
	profiles, release, err := a.profiles(ctx)
	if err != nil {
		return err
	}
	defer release()

	for _, p := range postings {
		if p.Description.Empty() {
			a.log.Warn("not recording posting without description", logging.String("url", p.URL))
			continue
		}
		if _, err := profiles.AddApplication(ctx, types.ApplicationRecord{
			URL:            p.URL,
			JobTitle:       p.JobTitle,
			JobDescription: p.Description.Text,
			Source:         types.SourceManualExtraction,
		}); err != nil {
			return err
		}
	}
	return nil
}

func extractFromFile(cmd *cobra.Command, a *app) error {
	html, err := readInput(extractHTMLFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	result, err := extract.New(nil).FromHTML(string(html))
	if err != nil {
		return err
	}
	if result.Empty() && a.cfg.Readability {
		if _, text := fetch.ReadabilityText(string(html), ""); text != "" {
			result = types.ExtractionResult{Text: extract.CleanText(text), Family: fetch.FamilyReadability}
		}
	}

	if a.cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintExtraction(result)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(extractOutputFile, out, cmd.OutOrStdout())
}

// readURLList reads one URL per line, skipping blanks and # comments.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL list: %w", err)
	}
	defer func() { _ = f.Close() }()
	return parseURLList(f)
}

func parseURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}
	return urls, nil
}
