package validation

import (
	"fmt"
	"time"

	"github.com/poeconomics/fundbank-backend/internal/api/request"
	"github.com/poeconomics/fundbank-backend/internal/model"
)

// ValidateSaveNav validates a bulk NAV save request: every row needs a
// parseable date on or after the fund start date and a non-negative value.
func ValidateSaveNav(points []request.NavPointRequest, startDate time.Time) error {
	errors := make(map[string]string)

	if len(points) == 0 {
		errors["points"] = "at least one NAV point is required"
	}

	for i, p := range points {
		field := fmt.Sprintf("points[%d]", i)

		date, err := ParseDate(p.Date)
		if err != nil {
			errors[field] = err.Error()
			continue
		}
		if date.Before(startDate) {
			errors[field] = fmt.Sprintf("date precedes fund start date %s", startDate.Format(model.DateOnly))
		}
		if p.NAV < 0 {
			errors[field] = "nav cannot be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
