package model

import "time"

// Audit actions written by the admin write path.
const (
	ActionAdminLogin       = "AdminLogin"
	ActionAdminLogout      = "AdminLogout"
	ActionAddTx            = "AddTx"
	ActionDeleteWallet     = "DeleteWallet"
	ActionSaveNAV          = "SaveNAV"
	ActionRestoreTx        = "RestoreTx"
	ActionSetFees          = "SetFees"
	ActionRefreshSnapshots = "RefreshSnapshots"
)

// AuditEvent is one admin action in the append-only audit trail.
// Events are never deleted.
type AuditEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Admin     string    `json:"admin"`
}
