package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hack-pad/hackpadfs"
	"github.com/spf13/cobra"

	"github.com/superhappyfuntimellc/Olivetti/internal/export"
	"github.com/superhappyfuntimellc/Olivetti/internal/state"
	"github.com/superhappyfuntimellc/Olivetti/pkg/prose"
)

func newProjectCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects and their bays",
	}

	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectUseCmd(app),
		newProjectPromoteCmd(app),
		newProjectExportCmd(app),
	)

	return cmd
}

func newProjectCreateCmd(app *app) *cobra.Command {
	var bayName string
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a project and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bay, ok := state.ParseBay(bayName)
			if !ok {
				return fmt.Errorf("unknown bay %q", bayName)
			}
			p, err := app.state.CreateProject(args[0], bay)
			if err != nil {
				return err
			}
			if err := app.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.ID, p.Bay, p.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&bayName, "bay", string(state.BayNew), "bay to create the project in")
	return cmd
}

func newProjectListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects, active one marked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			projects := make([]*state.Project, 0, len(app.state.Projects))
			for _, p := range app.state.Projects {
				projects = append(projects, p)
			}
			sort.Slice(projects, func(i, j int) bool {
				return projects[i].CreatedAt < projects[j].CreatedAt
			})

			for _, p := range projects {
				marker := " "
				if p.ID == app.state.CurrentID {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%-6s\t%6d words\t%s\n",
					marker, p.ID, p.Bay, prose.WordCount(p.Draft), p.Title)
			}
			return nil
		},
	}
}

func newProjectUseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Make a project the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.state.Project(args[0])
			if err != nil {
				return err
			}
			app.state.CurrentID = p.ID
			app.state.CurrentBay = p.Bay
			if err := app.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "active: %s (%s)\n", p.Title, p.Bay)
			return nil
		},
	}
}

func newProjectPromoteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "promote [id]",
		Short: "Move a project to the next bay",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := app.state.CurrentID
			if len(args) > 0 {
				id = args[0]
			}
			bay, moved, err := app.state.Promote(id)
			if err != nil {
				return err
			}
			if !moved {
				fmt.Fprintf(cmd.OutOrStdout(), "already in %s\n", bay)
				return nil
			}
			if err := app.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "promoted to %s\n", bay)
			return nil
		},
	}
}

func newProjectExportCmd(app *app) *cobra.Command {
	var formatName, outPath string
	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a project as markdown, manuscript, or html",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := app.state.CurrentID
			if len(args) > 0 {
				id = args[0]
			}
			p, err := app.state.Project(id)
			if err != nil {
				return err
			}
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}
			out, err := export.Render(format, p)
			if err != nil {
				return err
			}

			if outPath == "" {
				title := strings.ReplaceAll(p.Title, " ", "_")
				outPath = fmt.Sprintf("%s_%s%s", title, time.Now().Format("20060102"), format.Extension())
			}
			fsPath, err := app.osPath(outPath)
			if err != nil {
				return err
			}
			if err := hackpadfs.WriteFullFile(app.fs, fsPath, []byte(out), 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&formatName, "format", string(export.FormatMarkdown), "export format: markdown, manuscript, or html")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default derived from the title)")
	return cmd
}
