// Command domsift reduces noisy HTML documents to the elements and attributes
// needed to build automation selectors.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/domsift"
	"github.com/fwojciec/domsift/batch"
	"github.com/fwojciec/domsift/fs"
	"github.com/fwojciec/domsift/gemini"
	"github.com/fwojciec/domsift/goquery"
	"github.com/fwojciec/domsift/htmltomarkdown"
	sifthttp "github.com/fwojciec/domsift/http"
	"github.com/fwojciec/domsift/rod"
	siftslog "github.com/fwojciec/domsift/slog"
	"github.com/fwojciec/domsift/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	// Run already reported the error on stderr.
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Input for the "-" source. Set before calling Run().
	Stdin io.Reader

	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the history commands.
	DB *sqlite.DB

	// Fetcher, when set, replaces the HTTP and browser fetchers.
	Fetcher domsift.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:  os.Stdin,
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments. Any failure is reported on
// stderr as one JSON object and returned.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("domsift"),
		kong.Description("Reduce HTML documents to selector-relevant structure."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		err := domsift.Errorf(domsift.EINVALID, "no command specified. Run 'domsift --help' to see available commands")
		writeError(stderr, err)
		return err
	}
	if args[0] == "help" || slices.Contains(args, "--help") || slices.Contains(args, "-h") {
		helpArgs := args
		if args[0] == "help" {
			helpArgs = append(slices.Clone(args[1:]), "--help")
		}
		_, _ = parser.Parse(helpArgs)
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		err = domsift.Errorf(domsift.EINVALID, "%s", err.Error())
		writeError(stderr, err)
		return err
	}

	if err := m.run(kongCtx, cli, deps); err != nil {
		writeError(stderr, err)
		return err
	}
	return nil
}

// run wires the services the selected command needs and executes it.
func (m *Main) run(kongCtx *kong.Context, cli *CLI, deps *Dependencies) error {
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(deps.Stderr, cli.Verbose)
	deps.Renderer = htmltomarkdown.NewRenderer()

	var flags *SourceFlags
	switch cmd {
	case "reduce":
		flags = &cli.Reduce.SourceFlags
		if cli.Reduce.Tokens {
			counter, err := gemini.NewTokenCounter(gemini.DefaultModel)
			if err != nil {
				return err
			}
			deps.Tokens = counter
		}
		if cli.Reduce.Format == "markdown" && cli.Reduce.Source != fs.StdinSource {
			deps.Renderer = htmltomarkdown.NewRenderer(htmltomarkdown.WithTitle(cli.Reduce.Source))
		}
	case "batch":
		flags = &cli.Batch.SourceFlags
		deps.Limiter = batch.NewDomainLimiter(cli.Batch.RPS)
		deps.Sitemaps = sifthttp.NewSitemapService(nil)
	}

	if flags != nil {
		closeSources, err := m.wireSources(deps, *flags)
		if err != nil {
			return err
		}
		defer closeSources()
	}

	if flags == nil || flags.Save {
		if err := m.openHistory(deps); err != nil {
			return err
		}
		defer m.Close()
	}

	return kongCtx.Run(deps)
}

// wireSources sets up loading, reduction and artifact writing.
func (m *Main) wireSources(deps *Dependencies, flags SourceFlags) (func(), error) {
	if flags.MaxElements < 1 {
		return nil, domsift.Errorf(domsift.EINVALID, "--max-elements must be at least 1")
	}
	if flags.SampleSize < 0 {
		return nil, domsift.Errorf(domsift.EINVALID, "--sample-size must not be negative")
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		var err error
		fetcher, err = newFetcher(flags)
		if err != nil {
			return nil, err
		}
	}
	fetcher = siftslog.NewLoggingFetcher(fetcher, deps.Logger)

	deps.Loader = siftslog.NewLoggingLoader(fs.NewLoader(m.Stdin, fetcher), deps.Logger)
	deps.Reducer = siftslog.NewLoggingReducer(goquery.NewReducer(
		goquery.WithMaxElements(flags.MaxElements),
		goquery.WithSampleSize(flags.SampleSize),
	), deps.Logger)
	if flags.writes() {
		deps.Writer = fs.NewWriter(flags.Out)
	}

	return func() { _ = fetcher.Close() }, nil
}

func newFetcher(flags SourceFlags) (domsift.Fetcher, error) {
	if !flags.Render {
		return sifthttp.NewFetcher(sifthttp.WithTimeout(flags.Timeout)), nil
	}
	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(flags.Timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
	}
	return fetcher, nil
}

// openHistory opens the report database.
func (m *Main) openHistory(deps *Dependencies) error {
	if m.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(m.DBPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q (set DOMSIFT_DB to use a different path): %w", m.DBPath, err)
	}

	deps.Reports = siftslog.NewLoggingReportService(sqlite.NewReportService(m.DB), deps.Logger)
	return nil
}

// newLogger logs warnings to stderr, or everything when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("DOMSIFT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "domsift.db"
	}
	return filepath.Join(home, ".domsift", "domsift.db")
}
