package model

import "errors"

// ValidationError is a user-facing input error. The operation that returned it
// was aborted without touching stored state.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation errors surfaced to the user.
var (
	ErrBlankForm         = &ValidationError{Message: "Form Cannot Be Blank."}
	ErrNotNumeric        = &ValidationError{Message: "Price and Quantity must be numbers"}
	ErrNegative          = &ValidationError{Message: "Price and Quantity must be >= 0"}
	ErrRequired          = &ValidationError{Message: "Description and Email are required."}
	ErrInsufficientStock = &ValidationError{Message: "Cannot sell more than the quantity in stock."}
	ErrQuantityTooLarge  = &ValidationError{Message: "Quantity is too large."}
)

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UserMessage returns the user-facing message of a validation error, or "" for other errors.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return ""
}
