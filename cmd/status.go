package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/superhappyfuntimellc/Olivetti/internal/state"
	"github.com/superhappyfuntimellc/Olivetti/pkg/lane"
	"github.com/superhappyfuntimellc/Olivetti/pkg/prose"
)

func newStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the bays, the active draft's metrics, and the voice bible",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			st := app.state

			fmt.Fprintln(out, "BAYS")
			for _, bay := range state.Bays() {
				occupant := "(empty)"
				if id := st.BaySlots[bay]; id != "" {
					if p, err := st.Project(id); err == nil {
						occupant = p.Title
					}
				}
				fmt.Fprintf(out, "  %-6s %s\n", bay, occupant)
			}

			p, err := st.Current()
			switch {
			case errors.Is(err, state.ErrProjectNotFound):
				fmt.Fprintln(out, "\nno active project")
			case err != nil:
				return err
			default:
				m := prose.Measure(p.Draft)
				l := lane.Classify(p.Draft)
				fmt.Fprintf(out, "\nACTIVE: %s (%s)\n", p.Title, p.Bay)
				fmt.Fprintf(out, "  %d words, %d sentences, %d paragraphs, %.1f min read\n",
					m.WordCount, m.SentenceCount, m.ParagraphCount, m.ReadingTimeMin)
				fmt.Fprintf(out, "  current lane: %s\n", l)
			}

			vb := st.VoiceBible
			fmt.Fprintln(out, "\nVOICE BIBLE")
			fmt.Fprintf(out, "  intensity %.2f, %s POV, %s tense\n", vb.Intensity, vb.Technical.POV, vb.Technical.Tense)
			fmt.Fprintf(out, "  style: %s enabled=%t\n", vb.Style.Style, vb.Style.Enabled)
			fmt.Fprintf(out, "  genre: %s enabled=%t\n", vb.Genre.Genre, vb.Genre.Enabled)
			fmt.Fprintf(out, "  voice: %s\n", vb.Voice.Voice)
			for _, l := range lane.Lanes() {
				fmt.Fprintf(out, "  %s bank: %d samples\n", l, len(vb.StyleBanks[l]))
			}

			if app.archive != nil {
				if count, err := app.archive.Count(); err == nil {
					fmt.Fprintf(out, "\nARCHIVE: %d samples\n", count)
				}
			}
			return nil
		},
	}
}
