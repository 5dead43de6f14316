package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pureui/internal/theme"
)

type getOptions struct {
	jsonOutput bool
	hint       string
}

func newGetCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the stored theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, err := openController(cmd.Context(), rootFlags)
			if err != nil {
				return err
			}
			current := controller.Theme(cmd.Context())
			resolved := theme.ResolveSystem(current, opts.hint)

			if opts.jsonOutput {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"theme":    current.String(),
					"resolved": resolved.String(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), current)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&opts.hint, "prefers", "", "System color scheme used to resolve \"system\" (light or dark)")

	return cmd
}
