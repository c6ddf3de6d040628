package models

import "errors"

var (
	// ErrNotFound is returned when a referenced booking does not exist.
	ErrNotFound = errors.New("booking not found")

	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrStorageUnavailable is returned when the underlying store is
	// unreachable or a transaction aborted. Callers may retry.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidInput is returned for malformed requests, before any
	// store access happens.
	ErrInvalidInput = errors.New("invalid input")

	ErrDuplicateUser      = errors.New("email or username is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrOTPInvalid = errors.New("invalid OTP")
	ErrOTPNotSent = errors.New("OTP has expired or was never sent")
)

// SlotConflictError reports that a reservation was rejected because the
// requested day format cannot share the venue+date slot with an existing
// booking. It carries the human-readable reason from the slot policy.
type SlotConflictError struct {
	Reason string
}

func (e *SlotConflictError) Error() string {
	return e.Reason
}

// AsSlotConflict unwraps err into a SlotConflictError if it is one.
func AsSlotConflict(err error) (*SlotConflictError, bool) {
	var conflict *SlotConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
