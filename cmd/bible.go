package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/superhappyfuntimellc/Olivetti/internal/state"
)

func newBibleCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bible",
		Short: "Edit the active project's story bible",
	}

	cmd.AddCommand(
		newBibleShowCmd(app),
		newBibleSetCmd(app),
		newBibleGenerateCmd(app),
	)

	return cmd
}

func newBibleShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the story bible sections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.state.Current()
			if err != nil {
				return err
			}
			for _, section := range state.StoryBibleSections {
				content := p.StoryBible[section]
				if content == "" {
					content = "(empty)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n  %s\n", section, content)
			}
			return nil
		},
	}
}

func newBibleSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <section> <text>",
		Short: "Set a story bible section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := matchSection(args[0])
			if section == "" {
				return fmt.Errorf("unknown section %q (one of: %s)",
					args[0], strings.Join(state.StoryBibleSections, ", "))
			}

			p, err := app.state.Current()
			if err != nil {
				return err
			}
			if p.StoryBible == nil {
				p.StoryBible = map[string]string{}
			}
			p.StoryBible[section] = args[1]
			p.Touch()
			if err := app.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", section)
			return nil
		},
	}
}

func newBibleGenerateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <section>",
		Short: "Have the collaborator draft a story bible section from the draft opening",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := matchSection(args[0])
			if section == "" {
				return fmt.Errorf("unknown section %q (one of: %s)",
					args[0], strings.Join(state.StoryBibleSections, ", "))
			}

			text, err := app.desk.GenerateSection(cmd.Context(), app.state, section)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s:\n%s\n", section, text)
			return nil
		},
	}
}

func matchSection(name string) string {
	for _, section := range state.StoryBibleSections {
		if strings.EqualFold(section, name) {
			return section
		}
	}
	return ""
}
