// Package book implements the in-memory contact directory: validated field
// values, per-contact records, and the upcoming-birthday query.
//
// The package is not safe for concurrent mutation. The command loop is the
// single writer; concurrent readers must work on snapshots (see the feed
// server, which only ever reads immutable rendered bytes).
package book

import "errors"

// Sentinel errors returned by constructors and record mutations.
// All of them are recoverable: the caller retries with corrected input.
var (
	ErrEmptyName     = errors.New("contact name must not be empty")
	ErrInvalidPhone  = errors.New("phone number must be a 10-digit string of numbers")
	ErrInvalidDate   = errors.New("invalid date format, use DD.MM.YYYY")
	ErrPhoneNotFound = errors.New("phone number not found")
)
