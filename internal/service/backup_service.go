package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/poeconomics/fundbank-backend/internal/apperrors"
	"github.com/poeconomics/fundbank-backend/internal/model"
)

// Record-file column headers. These match the flat persisted layout the
// system has always exported, so old backups stay restorable.
var (
	transactionColumns = []string{"Date", "User", "Type", "Amount"}
	navColumns         = []string{"Date", "NAV"}
	auditColumns       = []string{"Timestamp", "Action", "Details", "Admin"}
)

// BackupService exports the three persisted record sets as CSV files and
// restores the transaction history from an uploaded one.
type BackupService struct {
	transactionService *TransactionService
	navService         *NavService
	auditService       *AuditService
}

// NewBackupService creates a new BackupService with the provided service dependencies.
func NewBackupService(
	transactionService *TransactionService,
	navService *NavService,
	auditService *AuditService,
) *BackupService {
	return &BackupService{
		transactionService: transactionService,
		navService:         navService,
		auditService:       auditService,
	}
}

// ExportTransactions writes the transaction history as CSV.
func (s *BackupService) ExportTransactions(w io.Writer) error {
	transactions, err := s.transactionService.GetAll()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(transactionColumns); err != nil {
		return fmt.Errorf("failed to write transactions header: %w", err)
	}
	for _, t := range transactions {
		record := []string{
			t.Date.Format(model.DateOnly),
			t.User,
			t.Type,
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write transaction record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportNav writes the recorded NAV points as CSV.
func (s *BackupService) ExportNav(w io.Writer) error {
	points, err := s.navService.GetPoints()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(navColumns); err != nil {
		return fmt.Errorf("failed to write nav header: %w", err)
	}
	for _, p := range points {
		record := []string{
			p.Date.Format(model.DateOnly),
			strconv.FormatFloat(p.NAV, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write nav record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportAudit writes the audit trail as CSV, oldest first.
func (s *BackupService) ExportAudit(w io.Writer) error {
	events, err := s.auditService.Export()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(auditColumns); err != nil {
		return fmt.Errorf("failed to write audit header: %w", err)
	}
	for _, e := range events {
		record := []string{
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Action,
			e.Details,
			e.Admin,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RestoreTransactions parses an uploaded transaction record file and
// replaces the history wholesale. Any malformed header or row rejects the
// whole upload with no mutation. Returns the number of restored records.
func (s *BackupService) RestoreTransactions(ctx context.Context, r io.Reader, admin string) (int, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("%w: missing header", apperrors.ErrMalformedRecordFile)
	}
	if len(header) != len(transactionColumns) {
		return 0, fmt.Errorf("%w: expected columns %v", apperrors.ErrMalformedRecordFile, transactionColumns)
	}
	for i, col := range transactionColumns {
		if header[i] != col {
			return 0, fmt.Errorf("%w: expected columns %v", apperrors.ErrMalformedRecordFile, transactionColumns)
		}
	}

	now := time.Now().UTC()
	transactions := []model.Transaction{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %v", apperrors.ErrMalformedRecordFile, err)
		}

		date, err := time.Parse(model.DateOnly, record[0])
		if err != nil {
			return 0, fmt.Errorf("%w: bad date %q", apperrors.ErrMalformedRecordFile, record[0])
		}
		amount, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bad amount %q", apperrors.ErrMalformedRecordFile, record[3])
		}

		transactions = append(transactions, model.Transaction{
			ID:        uuid.New().String(),
			Date:      date,
			User:      record[1],
			Type:      record[2],
			Amount:    amount,
			CreatedAt: now,
		})
	}

	if err := s.transactionService.Restore(ctx, transactions, admin); err != nil {
		return 0, err
	}

	return len(transactions), nil
}
