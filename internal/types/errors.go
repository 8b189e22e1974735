package types

import "fmt"

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Command errors
	ErrInvalidCommand  ErrorCode = "INVALID_COMMAND"
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	ErrDivisionByZero  ErrorCode = "DIVISION_BY_ZERO"

	// Slot errors
	ErrSpinInProgress ErrorCode = "SPIN_IN_PROGRESS"
	ErrSpinFinished   ErrorCode = "SPIN_FINISHED"
	ErrSessionExpired ErrorCode = "SESSION_EXPIRED"

	// Lookup errors
	ErrUserNotFound ErrorCode = "USER_NOT_FOUND"

	// System errors
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
	ErrNetworkError  ErrorCode = "NETWORK_ERROR"
	ErrStorageError  ErrorCode = "STORAGE_ERROR"
	ErrRateLimited   ErrorCode = "RATE_LIMITED"
)

// BotError is an error carrying a code and a user-facing message
type BotError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewBotError creates a new BotError
func NewBotError(code ErrorCode, message string) *BotError {
	return &BotError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a BotError
func WrapError(code ErrorCode, message string, err error) *BotError {
	return &BotError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsBotError checks if an error is a BotError with a specific code
func IsBotError(err error, code ErrorCode) bool {
	var botErr *BotError
	if err == nil {
		return false
	}
	if ok := As(err, &botErr); !ok {
		return false
	}
	return botErr.Code == code
}

// As walks the wrap chain of err looking for a BotError
func As(err error, target **BotError) bool {
	if target == nil {
		return false
	}
	for err != nil {
		if botErr, ok := err.(*BotError); ok {
			*target = botErr
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
