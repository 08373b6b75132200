package request

// UpdateFeesRequest carries the two global fee rates as percentages
// (3.00 == 3%), matching how admins enter them.
type UpdateFeesRequest struct {
	WithdrawFeePct float64 `json:"withdrawFeePct"`
	ProfitFeePct   float64 `json:"profitFeePct"`
}
