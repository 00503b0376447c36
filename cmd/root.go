package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ck",
		Short:         "ContentKit CLI (ck): generate content with ContentKit tools",
		Long:          "ck (ContentKit CLI) runs ContentKit generation tools from the terminal, browses and bookmarks the tool catalog, and shows the credits left on your plan.",
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
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		_ = app.logger.Sync()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newCreditsCmd(app),
		newToolsCmd(app),
		newCatalogCmd(app),
		newGenerateCmd(app),
	)

	return rootCmd
}
