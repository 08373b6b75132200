package model

// FeeSettings holds the two global fee rates as fractions (0.03 == 3%).
type FeeSettings struct {
	WithdrawFee float64 `json:"withdrawFee"`
	ProfitFee   float64 `json:"profitFee"`
}
