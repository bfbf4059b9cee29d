// Package batch reduces many HTML sources concurrently.
package batch

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/domsift"
	"github.com/fwojciec/domsift/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of sources reduced at once.
const DefaultConcurrency = 4

// Runner loads and reduces a list of sources. Each source is reduced on its
// own tree, so workers share nothing but the Loader, Reducer and Limiter.
type Runner struct {
	Loader  domsift.Loader
	Reducer domsift.Reducer

	// Limiter, when set, paces URL sources per host.
	Limiter domsift.DomainLimiter

	// AfterReduce, when set, runs in the worker after a successful reduction.
	// An error marks the source as failed.
	AfterReduce func(ctx context.Context, source, input string, report *domsift.Report) error

	Concurrency       int
	RetryDelays       []time.Duration
	FalsePositiveRate float64
}

// Result is the outcome for one source.
type Result struct {
	Source    string
	Report    *domsift.Report
	Err       error
	Duplicate bool
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressDuplicate
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

type indexedResult struct {
	position int
	result   Result
}

// Run reduces sources and returns one Result per source in input order.
// A failing source never stops the others. The returned error is non-nil
// only when ctx ends before every source is handled.
func (r *Runner) Run(ctx context.Context, sources []string, progress ProgressFunc) ([]Result, error) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	fpRate := r.FalsePositiveRate
	if fpRate <= 0 {
		fpRate = bloom.DefaultFalsePositiveRate
	}

	total := len(sources)
	results := make([]Result, total)
	seen := bloom.NewFilter(uint(total), fpRate)

	emit := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}
	emit(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan indexedResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, source := range sources {
			// Dedup runs in input order so the first occurrence is the one reduced.
			if seen.Seen(source) {
				resultCh <- indexedResult{i, Result{Source: source, Duplicate: true}}
				continue
			}
			if err := gctx.Err(); err != nil {
				resultCh <- indexedResult{i, Result{Source: source, Err: err}}
				continue
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					resultCh <- indexedResult{i, Result{Source: source, Err: err}}
					return nil
				}
				resultCh <- indexedResult{i, r.process(gctx, source)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	completed := 0
	for ir := range resultCh {
		completed++
		results[ir.position] = ir.result

		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			Source:    ir.result.Source,
		}
		switch {
		case ir.result.Duplicate:
			event.Type = ProgressDuplicate
		case ir.result.Err != nil:
			event.Type = ProgressFailed
			event.Error = ir.result.Err
		}
		emit(event)
	}

	emit(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return results, ctx.Err()
}

// process loads and reduces a single source.
func (r *Runner) process(ctx context.Context, source string) Result {
	result := Result{Source: source}

	input, err := r.load(ctx, source)
	if err != nil {
		result.Err = err
		return result
	}

	report, err := r.Reducer.Reduce(input)
	if err != nil {
		result.Err = err
		return result
	}

	if r.AfterReduce != nil {
		if err := r.AfterReduce(ctx, source, input, report); err != nil {
			result.Err = err
			return result
		}
	}

	result.Report = report
	return result
}

// load reads the source, pacing and retrying URL sources.
func (r *Runner) load(ctx context.Context, source string) (string, error) {
	domain, ok := domainOf(source)
	if !ok {
		return r.Loader.Load(ctx, source)
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return loadWithRetry(ctx, delays, func(ctx context.Context) (string, error) {
		if r.Limiter != nil {
			if err := r.Limiter.Wait(ctx, domain); err != nil {
				return "", err
			}
		}
		return r.Loader.Load(ctx, source)
	})
}

// domainOf returns the host of an http(s) source.
func domainOf(source string) (string, bool) {
	lower := strings.ToLower(source)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "", false
	}
	u, err := url.Parse(source)
	if err != nil || u.Host == "" {
		return "", false
	}
	return strings.ToLower(u.Hostname()), true
}
