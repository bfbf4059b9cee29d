package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/domsift"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Loader   domsift.Loader
	Reducer  domsift.Reducer
	Renderer domsift.Renderer
	Tokens   domsift.TokenCounter
	Writer   domsift.ReportWriter
	Reports  domsift.ReportService
	Limiter  domsift.DomainLimiter
	Sitemaps domsift.SitemapService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log debug output to stderr"`

	Reduce  ReduceCmd  `cmd:"" help:"Reduce one HTML document to its selector-relevant structure"`
	Batch   BatchCmd   `cmd:"" help:"Reduce many HTML documents concurrently"`
	History HistoryCmd `cmd:"" help:"List stored reports"`
	Show    ShowCmd    `cmd:"" help:"Print a stored report"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored report"`
}

// SourceFlags configures how sources are loaded and reduced.
type SourceFlags struct {
	Render      bool          `short:"r" help:"Render URLs in headless Chrome before reducing"`
	Timeout     time.Duration `default:"10s" env:"DOMSIFT_TIMEOUT" help:"Per-URL fetch timeout"`
	MaxElements int           `default:"200" env:"DOMSIFT_MAX_ELEMENTS" help:"Maximum preserved elements in the output"`
	SampleSize  int           `default:"50" env:"DOMSIFT_SAMPLE_SIZE" help:"Elements drawn into the sample fragment"`
	Out         string        `short:"o" type:"path" help:"Write report and sample files into this directory"`
	Write       bool          `short:"w" help:"Write report and sample files next to the input"`
	Save        bool          `short:"s" help:"Store the report in the history database"`
}

// writes reports whether artifacts should be written to disk.
func (f SourceFlags) writes() bool {
	return f.Write || f.Out != ""
}

// OutputFlags configures how a report is printed.
type OutputFlags struct {
	Format string `short:"f" enum:"json,markdown" default:"json" help:"Output format (json, markdown)"`
	Pretty bool   `short:"p" help:"Indent JSON output"`
}

// ReduceCmd is the "reduce" subcommand.
type ReduceCmd struct {
	Source string `arg:"" optional:"" default:"-" help:"HTML file, URL, or - for stdin"`
	Tokens bool   `short:"t" help:"Add Gemini token counts for the input and the preserved output"`

	SourceFlags `embed:""`
	OutputFlags `embed:""`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Sources     []string `arg:"" optional:"" help:"HTML files or URLs"`
	Sitemap     string   `help:"Also reduce the pages listed by this sitemap or site"`
	Match       string   `short:"m" help:"Only sitemap URLs matching this regex"`
	MaxURLs     int      `name:"max-urls" default:"100" help:"Maximum sitemap URLs to reduce (0 for all)"`
	Concurrency int      `short:"c" default:"4" help:"Sources reduced at once"`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per domain for URL sources"`

	SourceFlags `embed:""`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Source string `help:"Only reports for this source"`
	Limit  int    `short:"n" default:"20" help:"Maximum reports to list"`
	Offset int    `help:"Reports to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Report ID"`

	OutputFlags `embed:""`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Report ID"`
}
