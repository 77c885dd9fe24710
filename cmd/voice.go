package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/superhappyfuntimellc/Olivetti/internal/archive"
	"github.com/superhappyfuntimellc/Olivetti/internal/state"
	"github.com/superhappyfuntimellc/Olivetti/pkg/lane"
)

func newVoiceCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voice",
		Short: "Manage the voice vault, trained voice, and voice bible settings",
	}

	cmd.AddCommand(
		newVoiceTrainCmd(app),
		newVoiceUseCmd(app),
		newVoiceListCmd(app),
		newVoiceLockCmd(app),
		newVoiceGenreCmd(app),
		newVoiceTechnicalCmd(app),
		newVoiceIntensityCmd(app),
	)

	return cmd
}

func newVoiceTrainCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "train <name> <lane> <text>",
		Short: "Add a sample to a named voice's vault",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if name == state.NoVoice {
				return fmt.Errorf("%q is reserved", state.NoVoice)
			}
			l, ok := lane.Parse(args[1])
			if !ok {
				return fmt.Errorf("unknown lane %q", args[1])
			}
			app.state.VoiceBible.AddVoiceSample(name, l, args[2])
			if app.archive != nil {
				if err := app.archive.Add(&archive.Record{Lane: l, Source: "voice", Text: args[2]}); err != nil {
					app.log.Warn("archive append failed", zap.Error(err))
				}
			}
			if err := app.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "trained %s on %s (%d samples)\n",
				name, l, len(app.state.VoiceBible.VoiceVault[name][l]))
			return nil
		},
	}
}

func newVoiceUseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Select the trained voice (use None to disable)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vb := &app.state.VoiceBible
			name := args[0]
			if name == state.NoVoice {
				vb.Voice = state.VoiceControl{Enabled: false, Voice: state.NoVoice}
			} else {
				if _, ok := vb.VoiceVault[name]; !ok {
					return fmt.Errorf("voice %q has no training samples", name)
				}
				vb.Voice = state.VoiceControl{Enabled: true, Voice: name}
			}
			if err := app.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "trained voice: %s\n", vb.Voice.Voice)
			return nil
		},
	}
}

func newVoiceListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trained voices and their sample counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			vault := app.state.VoiceBible.VoiceVault
			names := make([]string, 0, len(vault))
			for name := range vault {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				total := 0
				for _, samples := range vault[name] {
					total += len(samples)
				}
				marker := " "
				if app.state.VoiceBible.Voice.Enabled && app.state.VoiceBible.Voice.Voice == name {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%d samples\n", marker, name, total)
			}
			return nil
		},
	}
}

func newVoiceLockCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lock <rules>",
		Short: "Set the voice lock rules (empty to clear)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.state.VoiceBible.VoiceLock = args[0]
			if err := app.save(); err != nil {
				return err
			}
			if args[0] == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "voice lock cleared")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "voice lock set")
			}
			return nil
		},
	}
}

func newVoiceGenreCmd(app *app) *cobra.Command {
	var enabled bool
	var intensity float64
	cmd := &cobra.Command{
		Use:   "genre [name]",
		Short: "Configure genre intelligence",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vb := &app.state.VoiceBible
			if len(args) > 0 {
				genre, ok := matchGenre(args[0])
				if !ok {
					return fmt.Errorf("unknown genre %q", args[0])
				}
				vb.Genre.Genre = genre
			}
			if cmd.Flags().Changed("enabled") {
				vb.Genre.Enabled = enabled
			}
			if cmd.Flags().Changed("intensity") {
				vb.Genre.Intensity = clampFlag(intensity)
			}
			if err := app.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "genre intelligence: %s enabled=%t intensity=%.2f\n",
				vb.Genre.Genre, vb.Genre.Enabled, vb.Genre.Intensity)
			return nil
		},
	}
	cmd.Flags().BoolVar(&enabled, "enabled", false, "enable or disable genre intelligence")
	cmd.Flags().Float64Var(&intensity, "intensity", 0.5, "genre intensity between 0 and 1")
	return cmd
}

func newVoiceTechnicalCmd(app *app) *cobra.Command {
	var povName, tenseName string
	cmd := &cobra.Command{
		Use:   "technical",
		Short: "Set point of view and tense",
		RunE: func(cmd *cobra.Command, _ []string) error {
			vb := &app.state.VoiceBible
			if povName != "" {
				pov, ok := matchPOV(povName)
				if !ok {
					return fmt.Errorf("unknown POV %q", povName)
				}
				vb.Technical.POV = pov
			}
			if tenseName != "" {
				tense, ok := matchTense(tenseName)
				if !ok {
					return fmt.Errorf("unknown tense %q", tenseName)
				}
				vb.Technical.Tense = tense
			}
			if err := app.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "technical: %s POV, %s tense\n",
				vb.Technical.POV, vb.Technical.Tense)
			return nil
		},
	}
	cmd.Flags().StringVar(&povName, "pov", "", "point of view: First, Close Third, or Omniscient")
	cmd.Flags().StringVar(&tenseName, "tense", "", "tense: Past or Present")
	return cmd
}

func newVoiceIntensityCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "intensity <value>",
		Short: "Set the overall AI intensity (0 to 1)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseIntensity(args[0])
			if err != nil {
				return err
			}
			app.state.VoiceBible.Intensity = v
			if err := app.save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ai intensity: %.2f\n", v)
			return nil
		},
	}
}

func matchGenre(name string) (state.Genre, bool) {
	for _, g := range state.Genres() {
		if strings.EqualFold(string(g), name) {
			return g, true
		}
	}
	return state.GenreLiterary, false
}

func matchPOV(name string) (state.POV, bool) {
	for _, p := range state.POVs() {
		if strings.EqualFold(string(p), name) {
			return p, true
		}
	}
	return state.POVCloseThird, false
}

func matchTense(name string) (state.Tense, bool) {
	for _, t := range state.Tenses() {
		if strings.EqualFold(string(t), name) {
			return t, true
		}
	}
	return state.TensePast, false
}
