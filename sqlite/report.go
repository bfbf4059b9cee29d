package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/domsift"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ domsift.ReportService = (*ReportService)(nil)

// ReportService implements domsift.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// HashInput returns the hex xxHash64 of raw input, used to spot repeated runs
// over the same document.
func HashInput(input string) string {
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, xxhash.Sum64String(input)))
}

const reportColumns = `id, source, input_hash, original_size, preserved_size, reduction_percent, element_count, report_json, created_at`

// CreateReport stores a report run.
func (s *ReportService) CreateReport(ctx context.Context, record *domsift.ReportRecord, input string) error {
	if err := record.Validate(); err != nil {
		return err
	}

	data, err := domsift.CompactJSON(record.Report)
	if err != nil {
		return err
	}

	record.ID = uuid.New().String()
	record.InputHash = HashInput(input)
	record.CreatedAt = time.Now().UTC().Truncate(time.Second)
	record.OriginalSize = record.Report.OriginalSize
	record.PreservedSize = record.Report.PreservedSize
	record.ReductionPercent = record.Report.ReductionPercent
	record.ElementCount = record.Report.Stats.TotalElementsFound

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Source, record.InputHash, record.OriginalSize, record.PreservedSize,
		record.ReductionPercent, record.ElementCount, string(data), record.CreatedAt.Format(time.RFC3339))

	return err
}

// FindReportByID retrieves a stored report by ID.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*domsift.ReportRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = ?`, id)

	record, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domsift.Errorf(domsift.ENOTFOUND, "report not found")
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// FindReports retrieves reports matching the filter, newest first.
func (s *ReportService) FindReports(ctx context.Context, filter domsift.ReportFilter) ([]*domsift.ReportRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + reportColumns + " FROM reports WHERE 1=1")

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.InputHash != nil {
		query.WriteString(" AND input_hash = ?")
		args = append(args, *filter.InputHash)
	}

	// rowid breaks ties between runs stored within the same second.
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domsift.ReportRecord, 0)
	for rows.Next() {
		record, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// DeleteReport permanently removes a stored report.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domsift.Errorf(domsift.ENOTFOUND, "report not found")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*domsift.ReportRecord, error) {
	var record domsift.ReportRecord
	var reportJSON, createdAt string

	if err := row.Scan(&record.ID, &record.Source, &record.InputHash, &record.OriginalSize,
		&record.PreservedSize, &record.ReductionPercent, &record.ElementCount, &reportJSON, &createdAt); err != nil {
		return nil, err
	}

	var report domsift.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, domsift.Errorf(domsift.EINTERNAL, "corrupt report %s: %v", record.ID, err)
	}
	record.Report = &report

	var err error
	record.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &record, nil
}
