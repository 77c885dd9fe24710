package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "olivetti",
		Short:         "Olivetti: a persisted creative-state engine",
		Long:          "Olivetti moves a piece of writing through drafting bays, keeps a Voice Bible of style and voice samples, and composes grounded briefs for an AI writing collaborator.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}
	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.shutdown()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newProjectCmd(app),
		newDraftCmd(app),
		newDeskCmd(app),
		newBibleCmd(app),
		newVoiceCmd(app),
		newStyleCmd(app),
		newFindCmd(app),
		newStatusCmd(app),
	)

	return rootCmd
}
