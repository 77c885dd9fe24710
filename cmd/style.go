package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/superhappyfuntimellc/Olivetti/internal/archive"
	"github.com/superhappyfuntimellc/Olivetti/internal/state"
	"github.com/superhappyfuntimellc/Olivetti/pkg/lane"
)

func newStyleCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "style",
		Short: "Manage the style engine and its sample banks",
	}

	cmd.AddCommand(
		newStyleAddCmd(app),
		newStyleSetCmd(app),
		newStyleMatchCmd(app),
	)

	return cmd
}

func newStyleAddCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <lane> <text>",
		Short: "Add a sample to a lane's style bank",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, ok := lane.Parse(args[0])
			if !ok {
				return fmt.Errorf("unknown lane %q", args[0])
			}
			app.state.VoiceBible.AddStyleSample(l, args[1])
			if app.archive != nil {
				if err := app.archive.Add(&archive.Record{Lane: l, Source: "style", Text: args[1]}); err != nil {
					app.log.Warn("archive append failed", zap.Error(err))
				}
			}
			if err := app.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added to %s bank (%d samples)\n",
				l, len(app.state.VoiceBible.StyleBanks[l]))
			return nil
		},
	}
}

func newStyleSetCmd(app *app) *cobra.Command {
	var enabled bool
	var intensity float64
	cmd := &cobra.Command{
		Use:   "set [style]",
		Short: "Configure the style engine preset, toggle, and intensity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vb := &app.state.VoiceBible
			if len(args) > 0 {
				style, ok := matchStyle(args[0])
				if !ok {
					return fmt.Errorf("unknown style %q", args[0])
				}
				vb.Style.Style = style
			}
			if cmd.Flags().Changed("enabled") {
				vb.Style.Enabled = enabled
			}
			if cmd.Flags().Changed("intensity") {
				vb.Style.Intensity = clampFlag(intensity)
			}
			if err := app.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "style engine: %s enabled=%t intensity=%.2f\n",
				vb.Style.Style, vb.Style.Enabled, vb.Style.Intensity)
			return nil
		},
	}
	cmd.Flags().BoolVar(&enabled, "enabled", false, "enable or disable the style engine")
	cmd.Flags().Float64Var(&intensity, "intensity", 0.5, "style intensity between 0 and 1")
	return cmd
}

func newStyleMatchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "match <text>",
		Short: "Set the match-my-style exemplar (empty to clear)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.state.VoiceBible.MatchStyle = args[0]
			if err := app.save(); err != nil {
				return err
			}
			if args[0] == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "match-my-style cleared")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "match-my-style set")
			}
			return nil
		},
	}
}

func matchStyle(name string) (state.Style, bool) {
	for _, s := range state.Styles() {
		if string(s) == name {
			return s, true
		}
	}
	return state.StyleNeutral, false
}

func clampFlag(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// parseIntensity reads a 0..1 float argument.
func parseIntensity(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("intensity must be a number: %w", err)
	}
	return clampFlag(v), nil
}
