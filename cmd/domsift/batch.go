package main

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/fwojciec/domsift"
	"github.com/fwojciec/domsift/batch"
)

// Run executes the batch command, printing one tab-separated line per source
// in input order.
func (c *BatchCmd) Run(deps *Dependencies) error {
	sources, err := c.sources(deps)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return domsift.Errorf(domsift.EINVALID, "at least one source required")
	}

	// Saves and writes share one database connection and output directory.
	var mu sync.Mutex
	runner := &batch.Runner{
		Loader:      deps.Loader,
		Reducer:     deps.Reducer,
		Limiter:     deps.Limiter,
		Concurrency: c.Concurrency,
		AfterReduce: func(ctx context.Context, source, input string, report *domsift.Report) error {
			mu.Lock()
			defer mu.Unlock()
			return persist(deps, source, input, report, c.SourceFlags)
		},
	}

	results, err := runner.Run(deps.Ctx, sources, func(e batch.ProgressEvent) {
		if e.Type == batch.ProgressFailed {
			deps.Logger.Warn("source failed", "source", e.Source, "completed", e.Completed, "total", e.Total, "err", e.Error)
			return
		}
		deps.Logger.Debug("batch progress", "type", progressName(e.Type), "source", e.Source, "completed", e.Completed, "total", e.Total)
	})
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		switch {
		case r.Duplicate:
			fmt.Fprintf(deps.Stdout, "%s\tduplicate\n", r.Source)
		case r.Err != nil:
			failed++
			fmt.Fprintf(deps.Stdout, "%s\terror\t%s: %s\n", r.Source, domsift.ErrorCode(r.Err), errorText(r.Err))
		default:
			fmt.Fprintf(deps.Stdout, "%s\tok\t%d elements\t%.2f%%\n",
				r.Source, r.Report.Stats.TotalElementsFound, r.Report.ReductionPercent)
		}
	}

	if failed > 0 {
		return domsift.Errorf(domsift.EPROCESSING, "%d of %d sources failed", failed, len(results))
	}
	return nil
}

// sources returns the named sources followed by any sitemap pages.
func (c *BatchCmd) sources(deps *Dependencies) ([]string, error) {
	sources := slices.Clone(c.Sources)
	if c.Sitemap == "" {
		return sources, nil
	}

	var match *regexp.Regexp
	if c.Match != "" {
		var err error
		if match, err = regexp.Compile(c.Match); err != nil {
			return nil, domsift.Errorf(domsift.EINVALID, "invalid --match pattern: %v", err)
		}
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap, match)
	if err != nil {
		return nil, err
	}
	if c.MaxURLs > 0 && len(urls) > c.MaxURLs {
		urls = urls[:c.MaxURLs]
	}
	deps.Logger.Debug("sitemap", "target", c.Sitemap, "urls", len(urls))

	return append(sources, urls...), nil
}

func progressName(t batch.ProgressType) string {
	switch t {
	case batch.ProgressStarted:
		return "started"
	case batch.ProgressCompleted:
		return "completed"
	case batch.ProgressFailed:
		return "failed"
	case batch.ProgressDuplicate:
		return "duplicate"
	case batch.ProgressFinished:
		return "finished"
	}
	return "unknown"
}

// errorText is the application message for domsift errors and the raw text otherwise.
func errorText(err error) string {
	if domsift.ErrorCode(err) == domsift.EINTERNAL {
		return err.Error()
	}
	return domsift.ErrorMessage(err)
}
