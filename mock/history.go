package mock

import (
	"context"

	"github.com/fwojciec/domsift"
)

var _ domsift.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of domsift.ReportService.
type ReportService struct {
	CreateReportFn   func(ctx context.Context, record *domsift.ReportRecord, input string) error
	FindReportByIDFn func(ctx context.Context, id string) (*domsift.ReportRecord, error)
	FindReportsFn    func(ctx context.Context, filter domsift.ReportFilter) ([]*domsift.ReportRecord, error)
	DeleteReportFn   func(ctx context.Context, id string) error
}

func (s *ReportService) CreateReport(ctx context.Context, record *domsift.ReportRecord, input string) error {
	return s.CreateReportFn(ctx, record, input)
}

func (s *ReportService) FindReportByID(ctx context.Context, id string) (*domsift.ReportRecord, error) {
	return s.FindReportByIDFn(ctx, id)
}

func (s *ReportService) FindReports(ctx context.Context, filter domsift.ReportFilter) ([]*domsift.ReportRecord, error) {
	return s.FindReportsFn(ctx, filter)
}

func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	return s.DeleteReportFn(ctx, id)
}

var _ domsift.ReportWriter = (*ReportWriter)(nil)

// ReportWriter is a mock implementation of domsift.ReportWriter.
type ReportWriter struct {
	WriteReportFn func(ctx context.Context, source string, report *domsift.Report) ([]string, error)
}

func (w *ReportWriter) WriteReport(ctx context.Context, source string, report *domsift.Report) ([]string, error) {
	return w.WriteReportFn(ctx, source, report)
}
