package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/domsift"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := domsift.ReportFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Source != "" {
		filter.Source = &c.Source
	}

	records, err := deps.Reports.FindReports(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No reports found. Use 'domsift reduce --save' to store one.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  %s  %6.2f%%  %4d  %s\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.ReductionPercent, r.ElementCount, r.Source)
	}
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	record, err := deps.Reports.FindReportByID(deps.Ctx, c.ID)
	if err != nil {
		return err
	}
	return printReport(deps.Stdout, record.Report, c.OutputFlags, deps.Renderer)
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Reports.DeleteReport(deps.Ctx, c.ID); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted report %s\n", c.ID)
	return nil
}
