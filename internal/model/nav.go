package model

import "time"

// NavPoint is the total fund value recorded for one calendar day.
// At most one point exists per date; later writes overwrite.
type NavPoint struct {
	Date time.Time `json:"date"`
	NAV  float64   `json:"nav"`
}

// NavSharePoint is the end-of-day NAV-per-share for one date, as produced
// by the ledger engine. Null when the NAV for the date was never recorded.
type NavSharePoint struct {
	Date        time.Time `json:"date"`
	NavPerShare Float     `json:"navPerShare"`
}
