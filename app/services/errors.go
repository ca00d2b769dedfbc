package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map them to
// HTTP status codes at the boundary.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("resource belongs to another user")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmptyOrder         = errors.New("no orderable items remain")
	ErrAlreadyInCart      = errors.New("Already in cart")
	ErrNoValidItems       = errors.New("no valid items in request")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidSignature   = errors.New("Invalid Payment Signature")
	ErrCannotCancel       = errors.New("Item cannot be cancelled at this stage")
	ErrMissingPaymentID   = errors.New("Missing Razorpay payment ID")
	ErrInvalidTransition  = errors.New("invalid status transition")
)
