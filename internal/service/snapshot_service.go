package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/poeconomics/fundbank-backend/internal/model"
	"github.com/poeconomics/fundbank-backend/internal/repository"
)

// SnapshotService materializes per-user valuations into the
// valuation_snapshot table. The cron scheduler runs Refresh daily; the
// admin refresh endpoint shares the same code path.
type SnapshotService struct {
	fundService  *FundService
	snapshotRepo *repository.SnapshotRepository
	auditService *AuditService
}

// NewSnapshotService creates a new SnapshotService with the provided dependencies.
func NewSnapshotService(
	fundService *FundService,
	snapshotRepo *repository.SnapshotRepository,
	auditService *AuditService,
) *SnapshotService {
	return &SnapshotService{
		fundService:  fundService,
		snapshotRepo: snapshotRepo,
		auditService: auditService,
	}
}

// Refresh recomputes the fund and upserts one snapshot row per user for
// the given date. Users whose valuation is NaN (NAV missing for the
// current date) are skipped rather than persisted as nulls. When admin is
// non-empty the refresh is audited; scheduler runs pass an empty admin.
// Returns the number of rows written.
func (s *SnapshotService) Refresh(ctx context.Context, date time.Time, admin string) (int, error) {
	summaries, err := s.fundService.Summaries("")
	if err != nil {
		return 0, fmt.Errorf("failed to compute valuations: %w", err)
	}

	written := 0
	now := time.Now().UTC()
	for _, row := range summaries {
		if math.IsNaN(float64(row.Value)) {
			continue
		}

		snapshot := &model.ValuationSnapshot{
			ID:           uuid.New().String(),
			Date:         date,
			User:         row.User,
			Shares:       float64(row.Shares),
			Value:        float64(row.Value),
			AfterFees:    float64(row.AfterFees),
			Profit:       float64(row.Profit),
			CalculatedAt: now,
		}
		if err := s.snapshotRepo.Upsert(ctx, snapshot); err != nil {
			return written, err
		}
		written++
	}

	if admin != "" {
		details := fmt.Sprintf("Valuation snapshots refreshed for %s (%d users)", date.Format(model.DateOnly), written)
		if err := s.auditService.Record(ctx, model.ActionRefreshSnapshots, details, admin); err != nil {
			return written, err
		}
	}

	return written, nil
}

// RunScheduled is the cron entry point: refreshes today's snapshots and
// logs the outcome instead of returning it.
func (s *SnapshotService) RunScheduled() {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	written, err := s.Refresh(context.Background(), today, "")
	if err != nil {
		log.Printf("Scheduled snapshot refresh failed: %v", err)
		return
	}
	log.Printf("Scheduled snapshot refresh wrote %d rows for %s", written, today.Format(model.DateOnly))
}

// Get retrieves snapshots filtered by optional user and date range.
func (s *SnapshotService) Get(user string, startDate, endDate time.Time) ([]model.ValuationSnapshot, error) {
	return s.snapshotRepo.Get(user, startDate, endDate)
}
