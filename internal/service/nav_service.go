package service

import (
	"context"
	"fmt"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/apperrors"
	"github.com/poeconomics/fundbank-backend/internal/model"
	"github.com/poeconomics/fundbank-backend/internal/repository"
)

// NavService manages the daily NAV series: the sparse recorded points and
// the dense editing range the bulk editor works against.
type NavService struct {
	navRepo      *repository.NavRepository
	auditService *AuditService
	lock         *WriteLock
	startDate    time.Time
}

// NewNavService creates a new NavService with the provided dependencies.
func NewNavService(
	navRepo *repository.NavRepository,
	auditService *AuditService,
	lock *WriteLock,
	startDate time.Time,
) *NavService {
	return &NavService{
		navRepo:      navRepo,
		auditService: auditService,
		lock:         lock,
		startDate:    startDate,
	}
}

// StartDate returns the first date NAV can be recorded for.
func (s *NavService) StartDate() time.Time {
	return s.startDate
}

// GetPoints returns every recorded NAV point ascending.
func (s *NavService) GetPoints() ([]model.NavPoint, error) {
	return s.navRepo.GetAll()
}

// GetHistory returns the NAV series as a date-keyed map, the shape the
// ledger engine consumes.
func (s *NavService) GetHistory() (map[string]float64, error) {
	return s.navRepo.GetHistory()
}

// GetRange returns one row per day from the fund start date through today,
// filling 0 for days with no recorded NAV. This is the dense series the
// bulk editor renders.
func (s *NavService) GetRange() ([]model.NavPoint, error) {
	history, err := s.navRepo.GetHistory()
	if err != nil {
		return nil, err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	points := []model.NavPoint{}
	for d := s.startDate; !d.After(today); d = d.AddDate(0, 0, 1) {
		points = append(points, model.NavPoint{
			Date: d,
			NAV:  history[d.Format(model.DateOnly)],
		})
	}

	return points, nil
}

// Save upserts a batch of NAV points atomically and audits it as SaveNAV.
// NAV values must be non-negative and dates may not precede the fund start
// date; any bad row rejects the whole batch with no mutation.
func (s *NavService) Save(ctx context.Context, points []model.NavPoint, admin string) error {
	for _, p := range points {
		if p.NAV < 0 {
			return fmt.Errorf("%w: %s", apperrors.ErrNegativeNav, p.Date.Format(model.DateOnly))
		}
		if p.Date.Before(s.startDate) {
			return fmt.Errorf("%w: %s", apperrors.ErrDateBeforeStart, p.Date.Format(model.DateOnly))
		}
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.navRepo.UpsertMany(ctx, points); err != nil {
		return fmt.Errorf("failed to save NAV points: %w", err)
	}

	details := fmt.Sprintf("NAVs saved (%d days)", len(points))
	return s.auditService.Record(ctx, model.ActionSaveNAV, details, admin)
}
