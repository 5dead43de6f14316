package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pureui/internal/datefmt"
)

type formatDateOptions struct {
	relative bool
	location string
}

func newFormatDateCmd() *cobra.Command {
	opts := &formatDateOptions{}

	cmd := &cobra.Command{
		Use:   "format-date <value>",
		Short: "Render a date the way pages display it",
		Long:  "Render a date the way pages display it. Digit-only values are read as Unix milliseconds.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormatDate(cmd, opts, args[0], time.Now())
		},
	}

	cmd.Flags().BoolVar(&opts.relative, "relative", false, "Also print the distance from now")
	cmd.Flags().StringVar(&opts.location, "tz", "", "IANA time zone used for the calendar day (default UTC)")

	return cmd
}

func runFormatDate(cmd *cobra.Command, opts *formatDateOptions, raw string, now time.Time) error {
	formatter := datefmt.Default
	if opts.location != "" {
		loc, err := time.LoadLocation(opts.location)
		if err != nil {
			return newCommandError("format date", "loading time zone", err, "Use an IANA name such as Europe/Paris.")
		}
		formatter.Location = loc
	}

	raw = strings.TrimSpace(raw)

	formatted, err := formatter.Format(raw)
	if err != nil {
		return newCommandError("format date", raw, err, "Pass an ISO 8601 date or Unix milliseconds.")
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatted)

	if opts.relative {
		rel, err := formatter.Relative(raw, now)
		if err != nil {
			return newCommandError("format date", raw, err, "Pass an ISO 8601 date or Unix milliseconds.")
		}
		fmt.Fprintln(cmd.OutOrStdout(), rel)
	}
	return nil
}
