package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/apply-assistant/internal/completeness"
	"github.com/jonathan/apply-assistant/internal/observability"
	"github.com/jonathan/apply-assistant/internal/store"
	"github.com/jonathan/apply-assistant/internal/types"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the stored profile",
	Long:  "Show, edit, import and export the profile used to fill forms and generate suggestions.",
}

// withProfiles runs fn against the configured profile service.
func withProfiles(cmd *cobra.Command, fn func(a *app, profiles *store.Profiles) error) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	profiles, release, err := a.profiles(cmd.Context())
	if err != nil {
		return err
	}
	defer release()

	return fn(a, profiles)
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput("", out, cmd.OutOrStdout())
}

var profileJSON bool

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the profile summary, or the full profile with --json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
			p, err := profiles.Get(cmd.Context())
			if err != nil {
				return err
			}
			if profileJSON {
				return printJSON(cmd, p)
			}
			observability.NewPrinter(cmd.OutOrStdout()).PrintProfileSummary(p,
				completeness.Percentage(p), completeness.ResumeScore(p))
			return nil
		})
	},
}

var profileCompletenessCmd = &cobra.Command{
	Use:   "completeness",
	Short: "Print the completeness percentage and resume score as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
			p, err := profiles.Get(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, types.CompletenessResponse{
				Completeness: completeness.Percentage(p),
				ResumeScore:  completeness.ResumeScore(p),
				Ready:        completeness.Ready(p),
			})
		})
	},
}

var profileExportFile string

var profileExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the profile as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
			data, err := profiles.Export(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(profileExportFile, data, cmd.OutOrStdout())
		})
	},
}

var profileImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the profile with a previously exported JSON document",
	Long:  "Validate a JSON document against the profile schema and store it as the whole profile. Use \"-\" for stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
			p, err := profiles.Import(cmd.Context(), data)
			if err != nil {
				return fmt.Errorf("failed to import profile: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported profile for %s (%d experience, %d education, %d skills)\n",
				displayName(p), len(p.WorkExperience), len(p.Education), len(p.Skills))
			return nil
		})
	},
}

var profileClearYes bool

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the profile to defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !profileClearYes {
			return fmt.Errorf("refusing to clear the profile without --yes")
		}
		return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
			if err := profiles.Clear(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Profile cleared")
			return nil
		})
	},
}

var personalFlags types.PersonalInfo

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update personal information; empty flags keep the stored value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
			info, err := profiles.UpdatePersonalInfo(cmd.Context(), personalFlags)
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		})
	},
}

var profileSkillsCmd = &cobra.Command{
	Use:   "skills <skill>[,<skill>...]",
	Short: "Replace the skill list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skills := splitList(strings.Join(args, ","))
		return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
			if err := profiles.UpdateSkills(cmd.Context(), skills); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d skills\n", len(skills))
			return nil
		})
	},
}

var profileResumeCmd = &cobra.Command{
	Use:   "resume <file>",
	Short: "Store resume plain text from a file (\"-\" for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
			return profiles.SaveResumeText(cmd.Context(), string(text))
		})
	},
}

var (
	settingsAutoExtract     bool
	settingsShowSuggestions bool
	settingsSaveJobs        bool
)

var profileSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings; only flags that are passed are changed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var patch store.SettingsPatch
		if cmd.Flags().Changed("auto-extract") {
			patch.AutoExtract = &settingsAutoExtract
		}
		if cmd.Flags().Changed("show-suggestions") {
			patch.ShowSuggestions = &settingsShowSuggestions
		}
		if cmd.Flags().Changed("save-job-descriptions") {
			patch.SaveJobDescriptions = &settingsSaveJobs
		}
		return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
			settings, err := profiles.UpdateSettings(cmd.Context(), patch)
			if err != nil {
				return err
			}
			return printJSON(cmd, settings)
		})
	},
}

var profileHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the application history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
			p, err := profiles.Get(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, p.ApplicationHistory)
		})
	},
}

var historyRecord types.ApplicationRecord

var profileHistoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an application",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		req := types.AddApplicationRequest{
			URL:      historyRecord.URL,
			JobTitle: historyRecord.JobTitle,
			Source:   historyRecord.Source,
			Status:   historyRecord.Status,
		}
		if err := req.Validate(); err != nil {
			return err
		}
		return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
			rec, err := profiles.AddApplication(cmd.Context(), historyRecord)
			if err != nil {
				return err
			}
			return printJSON(cmd, rec)
		})
	},
}

var profileHistoryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the application history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
			return profiles.ClearHistory(cmd.Context())
		})
	},
}

func init() {
	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Print the full profile as JSON")
	profileExportCmd.Flags().StringVarP(&profileExportFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	profileClearCmd.Flags().BoolVar(&profileClearYes, "yes", false, "Confirm clearing the profile")

	f := profileSetCmd.Flags()
	f.StringVar(&personalFlags.FirstName, "first-name", "", "First name")
	f.StringVar(&personalFlags.LastName, "last-name", "", "Last name")
	f.StringVar(&personalFlags.Email, "email", "", "Email address")
	f.StringVar(&personalFlags.Phone, "phone", "", "Phone number")
	f.StringVar(&personalFlags.Location, "location", "", "Location")
	f.StringVar(&personalFlags.Portfolio, "portfolio", "", "Portfolio URL")
	f.StringVar(&personalFlags.LinkedIn, "linkedin", "", "LinkedIn URL")
	f.StringVar(&personalFlags.Summary, "summary", "", "Professional summary")

	s := profileSettingsCmd.Flags()
	s.BoolVar(&settingsAutoExtract, "auto-extract", true, "Extract job descriptions automatically")
	s.BoolVar(&settingsShowSuggestions, "show-suggestions", true, "Offer suggestions for long-form fields")
	s.BoolVar(&settingsSaveJobs, "save-job-descriptions", true, "Keep job descriptions in the application history")

	h := profileHistoryAddCmd.Flags()
	h.StringVar(&historyRecord.URL, "url", "", "Posting URL")
	h.StringVar(&historyRecord.JobTitle, "title", "", "Job title")
	h.StringVar(&historyRecord.Source, "source", types.SourceAutoFilled, "Source: manual_extraction or auto_filled")
	h.StringVar(&historyRecord.Status, "status", "", "Application status")

	profileHistoryCmd.AddCommand(profileHistoryAddCmd, profileHistoryClearCmd)
	profileCmd.AddCommand(
		profileShowCmd,
		profileCompletenessCmd,
		profileExportCmd,
		profileImportCmd,
		profileClearCmd,
		profileSetCmd,
		profileSkillsCmd,
		profileResumeCmd,
		profileSettingsCmd,
		profileHistoryCmd,
	)
	rootCmd.AddCommand(profileCmd)
}

func displayName(p *types.Profile) string {
	if name := p.PersonalInfo.FullName(); name != "" {
		return name
	}
	return "unnamed user"
}

// splitList splits a comma-separated list, trimming entries and dropping empty ones.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
