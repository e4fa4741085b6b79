package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/apply-assistant/internal/classify"
	"github.com/jonathan/apply-assistant/internal/fetch"
	"github.com/jonathan/apply-assistant/internal/fields"
	"github.com/jonathan/apply-assistant/internal/logging"
	"github.com/jonathan/apply-assistant/internal/observability"
	"github.com/jonathan/apply-assistant/internal/store"
	"github.com/jonathan/apply-assistant/internal/types"
	"github.com/spf13/cobra"
)

var classifyFieldsCmd = &cobra.Command{
	Use:   "classify-fields",
	Short: "Assign semantic roles to the form controls of an HTML page",
	Long: "Parse an application form page and assign each control at most one role " +
		"(first name, email, cover letter, ...). Reads HTML from --in or stdin and prints the assignments as JSON.\n\n" +
		"With --fill or --profile the output also lists the profile value for each assigned control. " +
		"--record adds an auto_filled entry to the application history when any control was filled.",
	RunE: runClassifyFields,
}

var (
	classifyInputFile    string
	classifyOutputFile   string
	classifyHiddenPolicy string
	classifyFill         bool
	classifyProfileFile  string
	classifyRecord       bool
	classifyPageURL      string
)

func init() {
	classifyFieldsCmd.Flags().StringVarP(&classifyInputFile, "in", "i", "", "Path to HTML file (default: stdin)")
	classifyFieldsCmd.Flags().StringVarP(&classifyOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	classifyFieldsCmd.Flags().StringVar(&classifyHiddenPolicy, "hidden-policy", "", "Hidden control policy: compatible or excluded (overrides config)")
	classifyFieldsCmd.Flags().BoolVar(&classifyFill, "fill", false, "Include fill values from the stored profile")
	classifyFieldsCmd.Flags().StringVar(&classifyProfileFile, "profile", "", "Path to a profile JSON file to fill from instead of the stored profile")
	classifyFieldsCmd.Flags().BoolVar(&classifyRecord, "record", false, "Record an auto_filled application when any control was filled")
	classifyFieldsCmd.Flags().StringVar(&classifyPageURL, "url", "", "Page URL saved with --record")

	rootCmd.AddCommand(classifyFieldsCmd)
}

func runClassifyFields(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	record := types.AddApplicationRequest{URL: classifyPageURL, Source: types.SourceAutoFilled}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid --url %q", classifyPageURL)
	}

	policyName := a.cfg.HiddenPolicy
	if classifyHiddenPolicy != "" {
		policyName = classifyHiddenPolicy
	}
	policy, err := classify.ParseHiddenPolicy(policyName)
	if err != nil {
		return err
	}

	html, err := readInput(classifyInputFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	descriptors, err := fields.FromHTML(string(html))
	if err != nil {
		return err
	}
	assignments := classify.New(classify.WithHiddenPolicy(policy)).Classify(descriptors)
	a.log.Debug("classified form",
		logging.Int("fields", len(descriptors)),
		logging.Int("assigned", assignments.Len()),
		logging.String("hidden_policy", string(policy)))

	resp := types.ClassifyResponse{Assignments: assignments, Fields: len(descriptors)}
	wantsFill := classifyFill || classifyProfileFile != "" || classifyRecord
	if wantsFill {
		if err := fillFromProfile(cmd.Context(), a, string(html), &resp); err != nil {
			return err
		}
	}

	if a.cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintAssignments(assignments, len(descriptors))
		if wantsFill {
			printer.PrintFills(resp.Fills)
		}
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(classifyOutputFile, out, cmd.OutOrStdout())
}

// fillFromProfile adds fill values to resp and, with --record, saves the
// application. The stored profile is opened only when it is needed.
func fillFromProfile(ctx context.Context, a *app, html string, resp *types.ClassifyResponse) error {
	var profiles *store.Profiles
	if classifyProfileFile == "" || classifyRecord {
		opened, release, err := a.profiles(ctx)
		if err != nil {
			return err
		}
		defer release()
		profiles = opened
	}

	var profile *types.Profile
	var err error
	if classifyProfileFile != "" {
		profile, err = loadProfileFile(classifyProfileFile)
	} else {
		profile, err = profiles.Get(ctx)
	}
	if err != nil {
		return err
	}

	resp.Fills = classify.FillValues(resp.Assignments, profile)
	resp.Filled = len(resp.Fills)
	a.log.Debug("filled form", logging.Int("filled", resp.Filled))

	if !classifyRecord || resp.Filled == 0 {
		return nil
	}
	title, err := fetch.PageTitle(html)
	if err != nil {
		return err
	}
	rec, err := profiles.AddApplication(ctx, types.ApplicationRecord{
		URL:      classifyPageURL,
		JobTitle: fetch.JobTitleFromPageTitle(title),
		Source:   types.SourceAutoFilled,
		Status:   types.StatusFilled,
	})
	if err != nil {
		return err
	}
	resp.Application = &rec
	return nil
}
