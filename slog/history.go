package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/domsift"
)

// Ensure LoggingReportService implements domsift.ReportService.
var _ domsift.ReportService = (*LoggingReportService)(nil)

// LoggingReportService wraps a ReportService and logs history access.
type LoggingReportService struct {
	next   domsift.ReportService
	logger *slog.Logger
}

// NewLoggingReportService creates a new LoggingReportService.
func NewLoggingReportService(next domsift.ReportService, logger *slog.Logger) *LoggingReportService {
	return &LoggingReportService{next: next, logger: logger}
}

func (s *LoggingReportService) CreateReport(ctx context.Context, record *domsift.ReportRecord, input string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create report",
			"source", record.Source,
			"id", record.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateReport(ctx, record, input)
}

func (s *LoggingReportService) FindReportByID(ctx context.Context, id string) (record *domsift.ReportRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find report",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindReportByID(ctx, id)
}

func (s *LoggingReportService) FindReports(ctx context.Context, filter domsift.ReportFilter) (records []*domsift.ReportRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find reports",
			"limit", filter.Limit,
			"offset", filter.Offset,
			"n", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindReports(ctx, filter)
}

func (s *LoggingReportService) DeleteReport(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete report",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteReport(ctx, id)
}
