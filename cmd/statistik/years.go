package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"statistik/internal/period"
)

func newYearsCmd(a *app) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "years",
		Short: "List the selectable years, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, y := range period.YearOptions(nowIn(a.location), count) {
				fmt.Fprintln(cmd.OutOrStdout(), y)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", period.DefaultYearOptions, "How many years to list")
	return cmd
}

func nowIn(loc *time.Location) time.Time {
	if loc == nil {
		return time.Now()
	}
	return time.Now().In(loc)
}
