package main

import (
	"fmt"

	"github.com/fwojciec/domsift"
)

// Run executes the reduce command. Nothing is printed to stdout unless the
// whole reduction succeeds.
func (c *ReduceCmd) Run(deps *Dependencies) error {
	input, err := deps.Loader.Load(deps.Ctx, c.Source)
	if err != nil {
		return err
	}

	report, err := deps.Reducer.Reduce(input)
	if err != nil {
		return err
	}

	if c.Tokens {
		if err := domsift.CountReportTokens(deps.Ctx, deps.Tokens, input, report); err != nil {
			return err
		}
	}

	if err := persist(deps, c.Source, input, report, c.SourceFlags); err != nil {
		return err
	}

	return printReport(deps.Stdout, report, c.OutputFlags, deps.Renderer)
}

// persist stores and writes the report as the flags request, noting each
// artifact on stderr.
func persist(deps *Dependencies, source, input string, report *domsift.Report, flags SourceFlags) error {
	if flags.Save {
		record := &domsift.ReportRecord{Source: source, Report: report}
		if err := deps.Reports.CreateReport(deps.Ctx, record, input); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stderr, "saved report %s\n", record.ID)
	}

	if flags.writes() {
		paths, err := deps.Writer.WriteReport(deps.Ctx, source, report)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(deps.Stderr, "wrote %s\n", p)
		}
	}

	return nil
}
