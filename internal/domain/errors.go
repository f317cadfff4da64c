package domain

import "errors"

// NotFound
var (
	ErrTutorNotFound   = errors.New("tutor not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrPaymentNotFound = errors.New("payment not found")
)

// AlreadyFinalized: the booking left PendingPayment before this request could pay for it.
var (
	ErrAlreadyFinalized = errors.New("booking is already finalized")
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrValidationFailed = errors.New("validation failed")
)

// ErrTransientStore marks a timeout or an unavailable backend. Callers may retry.
var ErrTransientStore = errors.New("store temporarily unavailable")

// ErrConditionFailed is returned by guarded store writes whose expected state no longer holds.
var ErrConditionFailed = errors.New("conditional write failed")

// IsNotFound reports whether err is one of the NotFound errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTutorNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrPaymentNotFound)
}
