package service

import (
	"context"
	"fmt"
	"math"

	"github.com/poeconomics/fundbank-backend/internal/apperrors"
	"github.com/poeconomics/fundbank-backend/internal/model"
	"github.com/poeconomics/fundbank-backend/internal/repository"
)

// SettingsService manages the two global fee rates. Rates are persisted as
// fractions; the API speaks percentages in [0, 20] at two-decimal
// precision.
type SettingsService struct {
	settingRepo  *repository.SettingRepository
	auditService *AuditService
	lock         *WriteLock

	defaultWithdrawFee float64
	defaultProfitFee   float64
}

// NewSettingsService creates a new SettingsService with the provided dependencies.
func NewSettingsService(
	settingRepo *repository.SettingRepository,
	auditService *AuditService,
	lock *WriteLock,
	defaultWithdrawFee, defaultProfitFee float64,
) *SettingsService {
	return &SettingsService{
		settingRepo:        settingRepo,
		auditService:       auditService,
		lock:               lock,
		defaultWithdrawFee: defaultWithdrawFee,
		defaultProfitFee:   defaultProfitFee,
	}
}

// GetFees returns the current fee fractions, falling back to the
// configured defaults for keys never written.
func (s *SettingsService) GetFees() (model.FeeSettings, error) {
	withdrawFee, err := s.settingRepo.GetFloat(repository.SettingWithdrawFee, s.defaultWithdrawFee)
	if err != nil {
		return model.FeeSettings{}, err
	}

	profitFee, err := s.settingRepo.GetFloat(repository.SettingProfitFee, s.defaultProfitFee)
	if err != nil {
		return model.FeeSettings{}, err
	}

	return model.FeeSettings{WithdrawFee: withdrawFee, ProfitFee: profitFee}, nil
}

// SetFees persists new fee rates from percentage inputs. Percentages must
// lie in [0, 20] and are rounded to two decimals before conversion.
func (s *SettingsService) SetFees(ctx context.Context, withdrawPct, profitPct float64, admin string) (model.FeeSettings, error) {
	for _, pct := range []float64{withdrawPct, profitPct} {
		if pct < 0 || pct > 20 {
			return model.FeeSettings{}, fmt.Errorf("%w: %.2f", apperrors.ErrFeeOutOfRange, pct)
		}
	}

	withdrawFee := roundPct(withdrawPct) / 100
	profitFee := roundPct(profitPct) / 100

	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.settingRepo.SetFloat(ctx, repository.SettingWithdrawFee, withdrawFee); err != nil {
		return model.FeeSettings{}, err
	}
	if err := s.settingRepo.SetFloat(ctx, repository.SettingProfitFee, profitFee); err != nil {
		return model.FeeSettings{}, err
	}

	details := fmt.Sprintf("Withdrawal fee %.2f%%, profit fee %.2f%%", roundPct(withdrawPct), roundPct(profitPct))
	if err := s.auditService.Record(ctx, model.ActionSetFees, details, admin); err != nil {
		return model.FeeSettings{}, err
	}

	return model.FeeSettings{WithdrawFee: withdrawFee, ProfitFee: profitFee}, nil
}

func roundPct(pct float64) float64 {
	return math.Round(pct*100) / 100
}
