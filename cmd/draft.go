package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newDraftCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Read and replace the active project's draft",
	}

	cmd.AddCommand(
		newDraftShowCmd(app),
		newDraftSetCmd(app),
	)

	return cmd
}

func newDraftShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active draft",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := app.state.Current()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.Draft)
			return nil
		},
	}
}

func newDraftSetCmd(app *app) *cobra.Command {
	var fromFile string
	cmd := &cobra.Command{
		Use:   "set [text]",
		Short: "Replace the active draft from an argument, a file, or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.state.Current()
			if err != nil {
				return err
			}

			var text string
			switch {
			case len(args) > 0:
				text = args[0]
			case fromFile != "":
				data, err := os.ReadFile(fromFile)
				if err != nil {
					return fmt.Errorf("read draft file: %w", err)
				}
				text = string(data)
			default:
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			p.Draft = text
			p.Touch()
			if err := app.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "draft updated (%d bytes)\n", len(text))
			return nil
		},
	}
	cmd.Flags().StringVarP(&fromFile, "file", "f", "", "read the draft from a file")
	return cmd
}
