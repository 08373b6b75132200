package request

type NavPointRequest struct {
	Date string  `json:"date"`
	NAV  float64 `json:"nav"`
}

type SaveNavRequest struct {
	Points []NavPointRequest `json:"points"`
}
