package apperrors

import "errors"

// Boundary errors for the admin gate. Validation failures reject at the
// boundary with no mutation applied and no audit entry written.
var (
	// ErrInvalidCredentials indicates a failed admin login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionInvalid indicates a missing, expired, or tampered session token.
	ErrSessionInvalid = errors.New("invalid or expired admin session")

	// ErrConfirmationMismatch indicates the typed confirmation did not match
	// the username targeted for wallet deletion.
	ErrConfirmationMismatch = errors.New("confirmation does not match username")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrEmptyUser indicates a required user identifier is empty or missing.
	ErrEmptyUser = errors.New("user cannot be empty")

	// ErrUserNotFound indicates that no transactions exist for the given user.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidTransactionType indicates a type outside {Deposit, Withdrawal}.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrNonPositiveAmount indicates an amount field that is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")

	// ErrNegativeNav indicates a NAV value below zero.
	ErrNegativeNav = errors.New("nav cannot be negative")

	// ErrDateBeforeStart indicates a date earlier than the fund start date.
	ErrDateBeforeStart = errors.New("date precedes fund start date")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrFeeOutOfRange indicates a fee percentage outside the 0-20% window.
	ErrFeeOutOfRange = errors.New("fee percentage out of range")
)

// Data errors.
var (
	// ErrMalformedRecordFile indicates an uploaded record file whose header
	// or rows do not match the expected columns.
	ErrMalformedRecordFile = errors.New("malformed record file")
)
