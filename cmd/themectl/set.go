package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pureui/internal/theme"
)

func newSetCmd(rootFlags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:       "set <theme>",
		Short:     "Store a new theme preference",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(theme.Light), string(theme.Dark), string(theme.System)},
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, err := openController(cmd.Context(), rootFlags)
			if err != nil {
				return err
			}

			selected, err := controller.SetThemeString(cmd.Context(), args[0])
			if errors.Is(err, theme.ErrInvalidTheme) {
				return newCommandError("set theme", args[0], err, "Use one of: light, dark, system.")
			}
			if err != nil {
				return newCommandError("set theme", "saving preference", err, "Check that the theme store is writable.")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", selected)
			return nil
		},
	}
}
