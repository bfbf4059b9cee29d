package domsift

import (
	"context"
	"time"
)

// ReportRecord is a stored reduction run.
type ReportRecord struct {
	ID               string    `json:"id"`
	Source           string    `json:"source"`
	InputHash        string    `json:"inputHash"`
	OriginalSize     int       `json:"originalSize"`
	PreservedSize    int       `json:"preservedSize"`
	ReductionPercent float64   `json:"reductionPercent"`
	ElementCount     int       `json:"elementCount"`
	Report           *Report   `json:"report"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *ReportRecord) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "report source required")
	}
	if r.Report == nil {
		return Errorf(EINVALID, "report required")
	}
	return nil
}

// ReportService represents a service for managing stored reports.
type ReportService interface {
	// CreateReport stores a report. ID, InputHash and CreatedAt are set by
	// the implementation; summary fields are copied from the report.
	CreateReport(ctx context.Context, record *ReportRecord, input string) error

	// FindReportByID retrieves a stored report by ID.
	// Returns ENOTFOUND if the report does not exist.
	FindReportByID(ctx context.Context, id string) (*ReportRecord, error)

	// FindReports retrieves reports matching the filter, newest first.
	FindReports(ctx context.Context, filter ReportFilter) ([]*ReportRecord, error)

	// DeleteReport permanently removes a stored report.
	// Returns ENOTFOUND if the report does not exist.
	DeleteReport(ctx context.Context, id string) error
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	Source    *string `json:"source"`
	InputHash *string `json:"inputHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ReportWriter persists a report as files.
type ReportWriter interface {
	// WriteReport writes the report for the given source and returns the
	// paths written.
	WriteReport(ctx context.Context, source string, report *Report) ([]string, error)
}
