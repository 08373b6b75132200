package request

type CreateTransactionRequest struct {
	Date   string  `json:"date"`
	User   string  `json:"user"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// DeleteWalletRequest carries the confirmation text an admin must type to
// enable the bulk delete: the exact username.
type DeleteWalletRequest struct {
	Confirm string `json:"confirm"`
}
