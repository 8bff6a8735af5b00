package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Checkout errors
	ErrValidationFailed = errors.New("request validation failed")
	ErrInvalidVoucher   = errors.New("invalid voucher")

	// Order errors
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
