package main

import (
	"fmt"

	"github.com/jonathan/apply-assistant/internal/store"
	"github.com/jonathan/apply-assistant/internal/types"
	"github.com/spf13/cobra"
)

var (
	experienceFlags types.WorkExperience
	educationFlags  types.Education
	projectFlags    types.Project
)

// entryCommands builds the add, update and delete subcommands for one profile list.
func entryCommands(
	noun string,
	bind func(cmd *cobra.Command),
	validate func() error,
	add func(cmd *cobra.Command, profiles *store.Profiles) (string, error),
	update func(cmd *cobra.Command, profiles *store.Profiles, id string) error,
	del func(cmd *cobra.Command, profiles *store.Profiles, id string) error,
) []*cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add-" + noun,
		Short: fmt.Sprintf("Add a %s entry and print its id", noun),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validate(); err != nil {
				return err
			}
			return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
				id, err := add(cmd, profiles)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
				return nil
			})
		},
	}
	bind(addCmd)

	updateCmd := &cobra.Command{
		Use:   "update-" + noun + " <id>",
		Short: fmt.Sprintf("Replace a %s entry", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate(); err != nil {
				return err
			}
			return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
				return update(cmd, profiles, args[0])
			})
		},
	}
	bind(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete-" + noun + " <id>",
		Short: fmt.Sprintf("Delete a %s entry", noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProfiles(cmd, func(_ *app, profiles *store.Profiles) error {
				return del(cmd, profiles, args[0])
			})
		},
	}

	return []*cobra.Command{addCmd, updateCmd, deleteCmd}
}

func init() {
	profileCmd.AddCommand(entryCommands("experience",
		func(cmd *cobra.Command) {
			f := cmd.Flags()
			f.StringVar(&experienceFlags.JobTitle, "title", "", "Job title (required)")
			f.StringVar(&experienceFlags.Company, "company", "", "Company (required)")
			f.StringVar(&experienceFlags.Location, "location", "", "Location")
			f.StringVar(&experienceFlags.StartDate, "start", "", "Start month, YYYY-MM")
			f.StringVar(&experienceFlags.EndDate, "end", "", "End month, YYYY-MM")
			f.BoolVar(&experienceFlags.CurrentJob, "current", false, "Current job")
			f.StringVar(&experienceFlags.Description, "description", "", "Description")
		},
		func() error {
			if experienceFlags.JobTitle == "" || experienceFlags.Company == "" {
				return fmt.Errorf("--title and --company are required")
			}
			return validateEntry(&types.Profile{WorkExperience: []types.WorkExperience{experienceFlags}})
		},
		func(cmd *cobra.Command, profiles *store.Profiles) (string, error) {
			return profiles.AddWorkExperience(cmd.Context(), experienceFlags)
		},
		func(cmd *cobra.Command, profiles *store.Profiles, id string) error {
			return profiles.UpdateWorkExperience(cmd.Context(), id, experienceFlags)
		},
		func(cmd *cobra.Command, profiles *store.Profiles, id string) error {
			return profiles.DeleteWorkExperience(cmd.Context(), id)
		},
	)...)

	profileCmd.AddCommand(entryCommands("education",
		func(cmd *cobra.Command) {
			f := cmd.Flags()
			f.StringVar(&educationFlags.Degree, "degree", "", "Degree (required)")
			f.StringVar(&educationFlags.Field, "field", "", "Field of study")
			f.StringVar(&educationFlags.Institution, "institution", "", "Institution (required)")
			f.StringVar(&educationFlags.Location, "location", "", "Location")
			f.StringVar(&educationFlags.StartDate, "start", "", "Start month, YYYY-MM")
			f.StringVar(&educationFlags.EndDate, "end", "", "End month, YYYY-MM")
			f.StringVar(&educationFlags.GPA, "gpa", "", "GPA")
			f.StringVar(&educationFlags.Description, "description", "", "Description")
		},
		func() error {
			if educationFlags.Degree == "" || educationFlags.Institution == "" {
				return fmt.Errorf("--degree and --institution are required")
			}
			return validateEntry(&types.Profile{Education: []types.Education{educationFlags}})
		},
		func(cmd *cobra.Command, profiles *store.Profiles) (string, error) {
			return profiles.AddEducation(cmd.Context(), educationFlags)
		},
		func(cmd *cobra.Command, profiles *store.Profiles, id string) error {
			return profiles.UpdateEducation(cmd.Context(), id, educationFlags)
		},
		func(cmd *cobra.Command, profiles *store.Profiles, id string) error {
			return profiles.DeleteEducation(cmd.Context(), id)
		},
	)...)

	profileCmd.AddCommand(entryCommands("project",
		func(cmd *cobra.Command) {
			f := cmd.Flags()
			f.StringVar(&projectFlags.Name, "name", "", "Project name (required)")
			f.StringVar(&projectFlags.Description, "description", "", "Description")
			f.StringVar(&projectFlags.Technologies, "technologies", "", "Technologies used")
			f.StringVar(&projectFlags.Link, "link", "", "Project URL")
			f.StringVar(&projectFlags.StartDate, "start", "", "Start month, YYYY-MM")
			f.StringVar(&projectFlags.EndDate, "end", "", "End month, YYYY-MM")
		},
		func() error {
			if projectFlags.Name == "" {
				return fmt.Errorf("--name is required")
			}
			return validateEntry(&types.Profile{Projects: []types.Project{projectFlags}})
		},
		func(cmd *cobra.Command, profiles *store.Profiles) (string, error) {
			return profiles.AddProject(cmd.Context(), projectFlags)
		},
		func(cmd *cobra.Command, profiles *store.Profiles, id string) error {
			return profiles.UpdateProject(cmd.Context(), id, projectFlags)
		},
		func(cmd *cobra.Command, profiles *store.Profiles, id string) error {
			return profiles.DeleteProject(cmd.Context(), id)
		},
	)...)
}

// validateEntry checks one entry's date and URL formats through the profile validator.
func validateEntry(p *types.Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}
	return nil
}
