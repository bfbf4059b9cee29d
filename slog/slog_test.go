package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/domsift"
	"github.com/fwojciec/domsift/mock"
	siftslog "github.com/fwojciec/domsift/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "<div>feed</div>", nil
			},
		}

		html, err := siftslog.NewLoggingFetcher(inner, newLogger(&buf)).Fetch(context.Background(), "https://example.com/feed")

		require.NoError(t, err)
		assert.Equal(t, "<div>feed</div>", html)
		assert.Contains(t, buf.String(), "msg=fetch")
		assert.Contains(t, buf.String(), "url=https://example.com/feed")
		assert.Contains(t, buf.String(), "bytes=15")
		assert.Contains(t, buf.String(), "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("network error")
			},
		}

		_, err := siftslog.NewLoggingFetcher(inner, newLogger(&buf)).Fetch(context.Background(), "https://example.com")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="network error"`)
	})

	t.Run("close delegates", func(t *testing.T) {
		t.Parallel()

		closed := false
		inner := &mock.Fetcher{CloseFn: func() error { closed = true; return nil }}

		require.NoError(t, siftslog.NewLoggingFetcher(inner, slog.New(slog.DiscardHandler)).Close())
		assert.True(t, closed)
	})
}

func TestLoggingReducer_Reduce(t *testing.T) {
	t.Parallel()

	t.Run("logs element count and reduction", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Reducer{
			ReduceFn: func(string) (*domsift.Report, error) {
				return &domsift.Report{ReductionPercent: 42.5, Stats: domsift.Stats{TotalElementsFound: 3}}, nil
			},
		}

		report, err := siftslog.NewLoggingReducer(inner, newLogger(&buf)).Reduce("<div></div>")

		require.NoError(t, err)
		assert.Equal(t, 42.5, report.ReductionPercent)
		assert.Contains(t, buf.String(), "msg=reduce")
		assert.Contains(t, buf.String(), "input_bytes=11")
		assert.Contains(t, buf.String(), "elements=3")
		assert.Contains(t, buf.String(), "reduction_percent=42.5")
	})

	t.Run("logs the error code on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Reducer{
			ReduceFn: func(string) (*domsift.Report, error) {
				return nil, domsift.Errorf(domsift.EEMPTY, "no HTML input received")
			},
		}

		_, err := siftslog.NewLoggingReducer(inner, newLogger(&buf)).Reduce("")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "code=empty_input")
		assert.NotContains(t, buf.String(), "elements=")
	})
}

func TestLoggingLoader_Load(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.Loader{
		LoadFn: func(context.Context, string) (string, error) {
			return "<p>x</p>", nil
		},
	}

	html, err := siftslog.NewLoggingLoader(inner, newLogger(&buf)).Load(context.Background(), "page.html")

	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", html)
	assert.Contains(t, buf.String(), "source=page.html")
	assert.Contains(t, buf.String(), "bytes=8")
}

func TestLoggingReportService(t *testing.T) {
	t.Parallel()

	t.Run("create logs the assigned ID", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ReportService{
			CreateReportFn: func(_ context.Context, record *domsift.ReportRecord, _ string) error {
				record.ID = "abc"
				return nil
			},
		}
		record := &domsift.ReportRecord{Source: "feed.html", Report: &domsift.Report{}}

		err := siftslog.NewLoggingReportService(inner, newLogger(&buf)).CreateReport(context.Background(), record, "")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "id=abc")
		assert.Contains(t, buf.String(), "source=feed.html")
	})

	t.Run("find logs not found errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ReportService{
			FindReportByIDFn: func(context.Context, string) (*domsift.ReportRecord, error) {
				return nil, domsift.Errorf(domsift.ENOTFOUND, "report not found")
			},
		}

		_, err := siftslog.NewLoggingReportService(inner, newLogger(&buf)).FindReportByID(context.Background(), "x")

		assert.Equal(t, domsift.ENOTFOUND, domsift.ErrorCode(err))
		assert.Contains(t, buf.String(), "report not found")
	})

	t.Run("list logs result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ReportService{
			FindReportsFn: func(context.Context, domsift.ReportFilter) ([]*domsift.ReportRecord, error) {
				return []*domsift.ReportRecord{{}, {}}, nil
			},
		}

		records, err := siftslog.NewLoggingReportService(inner, newLogger(&buf)).FindReports(context.Background(), domsift.ReportFilter{Limit: 5})

		require.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Contains(t, buf.String(), "n=2")
		assert.Contains(t, buf.String(), "limit=5")
	})

	t.Run("delete delegates", func(t *testing.T) {
		t.Parallel()

		var gotID string
		inner := &mock.ReportService{
			DeleteReportFn: func(_ context.Context, id string) error {
				gotID = id
				return nil
			},
		}

		require.NoError(t, siftslog.NewLoggingReportService(inner, slog.New(slog.DiscardHandler)).DeleteReport(context.Background(), "abc"))
		assert.Equal(t, "abc", gotID)
	})
}
