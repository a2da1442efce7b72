package domain

import "errors"

// Domain errors as sentinel values
var (
	// Discount errors
	ErrDiscountNotFound = errors.New("discount not found")
	ErrEmptyName        = errors.New("discount name cannot be empty")
	ErrEmptyDescription = errors.New("discount description cannot be empty")
	ErrNoProducts       = errors.New("discount must apply to at least one product")
	ErrInvalidKind      = errors.New("discount kind must be percentage or fixed")

	// Window errors
	ErrInvalidWindow   = errors.New("valid-to date must be after valid-from date")
	ErrWindowNotFuture = errors.New("valid-from date must be after today")

	// Magnitude errors
	ErrInvalidMagnitude = errors.New("discount value out of bounds")

	// Edit lock errors
	ErrDiscountExpired      = errors.New("expired discount is read-only")
	ErrLockedFieldViolation = errors.New("field is locked and cannot be changed")

	// Exclusivity errors
	ErrProductReserved = errors.New("product is already reserved by another discount")

	// Status errors
	ErrAlreadyActive   = errors.New("discount is already active")
	ErrAlreadyInactive = errors.New("discount is already inactive")
)
