package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/apply-assistant/internal/observability"
	"github.com/jonathan/apply-assistant/internal/suggest"
	"github.com/jonathan/apply-assistant/internal/types"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Generate text suggestions for an application field from the stored profile",
	Long: "Generate labeled suggestions for one target field (" + targetFieldList() + ") " +
		"from the stored profile, optionally tailored to a job description.",
	RunE: runSuggest,
}

var (
	suggestField       string
	suggestJobFile     string
	suggestProfileFile string
	suggestOutputFile  string
)

func init() {
	suggestCmd.Flags().StringVarP(&suggestField, "field", "f", "", "Target field: "+targetFieldList()+" (required)")
	suggestCmd.Flags().StringVarP(&suggestJobFile, "job", "j", "", "Path to a job description text file (\"-\" for stdin)")
	suggestCmd.Flags().StringVar(&suggestProfileFile, "profile", "", "Path to a profile JSON file to use instead of the stored profile")
	suggestCmd.Flags().StringVarP(&suggestOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	_ = suggestCmd.MarkFlagRequired("field")
	rootCmd.AddCommand(suggestCmd)
}

func targetFieldList() string {
	names := make([]string, len(types.TargetFields))
	for i, f := range types.TargetFields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	req := types.SuggestRequest{FieldType: types.TargetField(suggestField)}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid --field %q (want one of %s)", suggestField, targetFieldList())
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	if suggestJobFile != "" {
		job, err := readInput(suggestJobFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		req.JobDescription = string(job)
	}

	var profile *types.Profile
	if suggestProfileFile != "" {
		if profile, err = loadProfileFile(suggestProfileFile); err != nil {
			return err
		}
	} else {
		profiles, release, err := a.profiles(cmd.Context())
		if err != nil {
			return err
		}
		defer release()
		if profile, err = profiles.Get(cmd.Context()); err != nil {
			return err
		}
	}

	suggestions := suggest.New().Generate(profile, req.FieldType, req.JobDescription)
	if a.cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintSuggestions(req.FieldType, suggestions)
	}

	out, err := json.MarshalIndent(types.SuggestResponse{FieldType: req.FieldType, Suggestions: suggestions}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(suggestOutputFile, out, cmd.OutOrStdout())
}
