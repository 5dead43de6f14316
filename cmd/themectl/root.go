package main

import (
	"os"

	"github.com/spf13/cobra"

	applog "pureui/internal/log"
)

type rootFlags struct {
	configPath  string
	themeFile   string
	databaseURL string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "themectl",
		Short:         "Inspect and change the stored pureui theme preference",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.verbose {
				return applog.SetLevel("debug")
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", os.Getenv("PUREUI_CONFIG"), "Path to a TOML or YAML config file")
	cmd.PersistentFlags().StringVar(&flags.themeFile, "theme-file", "", "Theme preference file (overrides THEME_FILE)")
	cmd.PersistentFlags().StringVar(&flags.databaseURL, "database", "", "Database URL (overrides DATABASE_URL)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newGetCmd(flags))
	cmd.AddCommand(newSetCmd(flags))
	cmd.AddCommand(newFormatDateCmd())

	return cmd
}
