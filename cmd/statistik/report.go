package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"statistik/internal/period"
	"statistik/internal/report"
)

type reportCmd struct {
	app      *app
	year     int
	month    string
	previous bool
	format   string
}

func newReportCmd(a *app) *cobra.Command {
	rc := &reportCmd{app: a}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the summary of one month",
		RunE:  rc.run,
	}
	cmd.Flags().IntVar(&rc.year, "year", 0, "Year (default: current year)")
	cmd.Flags().StringVar(&rc.month, "month", "", "Month as 1-12 or name (default: current month)")
	cmd.Flags().BoolVar(&rc.previous, "previous", false, "Step one month back from the selected month")
	cmd.Flags().StringVar(&rc.format, "format", report.FormatText, "Output format: text or json")
	return cmd
}

func (rc *reportCmd) selection() (period.Selection, error) {
	sel := period.Initial(nowIn(rc.app.location))
	if rc.year != 0 {
		if rc.year < 1 || rc.year > 9999 {
			return period.Selection{}, fmt.Errorf("invalid year %d", rc.year)
		}
		sel = sel.SelectYear(rc.year)
	}
	if rc.month != "" {
		m, err := period.ParseMonth(rc.month)
		if err != nil {
			return period.Selection{}, err
		}
		sel = sel.SelectMonth(m)
	}
	if rc.previous {
		sel = sel.PreviousMonth()
	}
	return sel, nil
}

func (rc *reportCmd) run(cmd *cobra.Command, _ []string) error {
	sel, err := rc.selection()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	b, err := rc.app.openBackend(ctx)
	if err != nil {
		return err
	}
	defer rc.app.cleanup(b)

	res, err := rc.app.newStatsService(b).Stats(ctx, sel)
	if err != nil {
		return err
	}
	return report.NewReporter(cmd.OutOrStdout()).Write(rc.format, sel, res)
}
