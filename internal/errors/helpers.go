package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of the outermost *Error in the chain. Plain errors
// are Internal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of the outermost *Error in the chain
func GetMeta(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

func hasCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsNotFound reports a missing card, draft or book
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsInvalidArgument reports a rejected input value
func IsInvalidArgument(err error) bool { return hasCode(err, CodeInvalidArgument) }

// IsFailedPrecondition reports an edit that does not apply to the card's current state
func IsFailedPrecondition(err error) bool { return hasCode(err, CodeFailedPrecondition) }

// IsOutOfRange checks if an error is an out of range error
func IsOutOfRange(err error) bool { return hasCode(err, CodeOutOfRange) }

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool { return hasCode(err, CodeInternal) }

