package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/superhappyfuntimellc/Olivetti/internal/brief"
)

func newDeskCmd(app *app) *cobra.Command {
	actions := make([]string, 0, len(brief.Actions()))
	for _, a := range brief.Actions() {
		actions = append(actions, string(a))
	}

	return &cobra.Command{
		Use:   "desk <action>",
		Short: "Run a desk action against the active draft",
		Long:  "Runs one desk action (" + strings.Join(actions, ", ") + ") on the active project. The result is applied to the draft or, for the word tools, shown without touching the draft.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, ok := brief.ParseAction(args[0])
			if !ok {
				return fmt.Errorf("unknown action %q (one of: %s)", args[0], strings.Join(actions, ", "))
			}

			res, err := app.desk.Execute(cmd.Context(), app.state, action)
			if err != nil {
				return err
			}

			if res.ToolOutput {
				fmt.Fprintln(cmd.OutOrStdout(), res.Text)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] applied %s to the draft\n", res.Lane, res.Action)
			return nil
		},
	}
}
