package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (s *ErrorTestSuite) TestNewBotError() {
	// Setup
	code := ErrDivisionByZero
	message := "cannot divide by zero"

	// Execute
	err := NewBotError(code, message)

	// Assert
	s.Equal(code, err.Code, "Error code should match")
	s.Equal(message, err.Message, "Error message should match")
	s.Nil(err.Err, "Underlying error should be nil")
}

func (s *ErrorTestSuite) TestWrapError() {
	// Setup
	underlying := errors.New("disk full")

	// Execute
	err := WrapError(ErrStorageError, "failed to save stats", underlying)

	// Assert
	s.Equal(ErrStorageError, err.Code)
	s.Equal("failed to save stats", err.Message)
	s.Equal(underlying, err.Err)
	s.ErrorIs(err, underlying, "Unwrap should expose the cause")
}

func (s *ErrorTestSuite) TestErrorString() {
	testCases := []struct {
		name     string
		err      *BotError
		expected string
	}{
		{
			name:     "Simple error",
			err:      NewBotError(ErrSpinInProgress, "already spinning"),
			expected: "SPIN_IN_PROGRESS: already spinning",
		},
		{
			name:     "Wrapped error",
			err:      WrapError(ErrStorageError, "save failed", errors.New("permission denied")),
			expected: "STORAGE_ERROR: save failed (permission denied)",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.err.Error())
		})
	}
}

func (s *ErrorTestSuite) TestIsBotError() {
	botErr := NewBotError(ErrUserNotFound, "user not found")

	testCases := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{name: "Matching bot error", err: botErr, code: ErrUserNotFound, expected: true},
		{name: "Non-matching bot error", err: botErr, code: ErrInternalError, expected: false},
		{name: "Wrapped with fmt", err: fmt.Errorf("lookup: %w", botErr), code: ErrUserNotFound, expected: true},
		{name: "Regular error", err: errors.New("regular error"), code: ErrUserNotFound, expected: false},
		{name: "Nil error", err: nil, code: ErrUserNotFound, expected: false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, IsBotError(tc.err, tc.code))
		})
	}
}

func (s *ErrorTestSuite) TestAs() {
	botErr := NewBotError(ErrInvalidArgument, "bad hand")

	var target *BotError
	s.True(As(fmt.Errorf("outer: %w", botErr), &target))
	s.Equal(botErr, target)

	target = nil
	s.False(As(errors.New("plain"), &target))
	s.Nil(target)

	s.False(As(botErr, nil))
}
