package validation

import (
	"fmt"

	"github.com/poeconomics/fundbank-backend/internal/api/request"
)

// ValidateUpdateFees validates the fee settings request: both percentages
// must lie within [0, 20].
func ValidateUpdateFees(req request.UpdateFeesRequest) error {
	errors := make(map[string]string)

	if req.WithdrawFeePct < 0 || req.WithdrawFeePct > 20 {
		errors["withdrawFeePct"] = fmt.Sprintf("must be between 0 and 20, got %.2f", req.WithdrawFeePct)
	}
	if req.ProfitFeePct < 0 || req.ProfitFeePct > 20 {
		errors["profitFeePct"] = fmt.Sprintf("must be between 0 and 20, got %.2f", req.ProfitFeePct)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
